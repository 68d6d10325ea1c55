// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package renderer drives the rendering of a [scene.Scene] to a
// [gpu.Surface], one frame at a time.
//
// Each frame runs the same passes in order: acquire the surface texture,
// clear it to the background color of the scene, sync the scene (which
// uploads pending geometry into the pipelines), update and draw every
// registered pipeline, then submit the commands and present.
package renderer

import (
	"fmt"
	"image"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/scene3d/camera"
	"cogentcore.org/scene3d/gpu"
	"cogentcore.org/scene3d/pipeline"
	"cogentcore.org/scene3d/scene"
)

// BackgroundPassLabel is the label of the render pass that clears the target.
const BackgroundPassLabel = "background.pass"

// Renderer renders scenes to a surface. It owns the pipeline [pipeline.Storage]
// and the surface, but not the device. A Renderer must only be used from
// one goroutine, typically the one running the window event loop.
type Renderer struct {

	// Frame is the number of frames rendered so far.
	Frame uint64

	device  gpu.Device
	surface gpu.Surface
	storage *pipeline.Storage

	// size is the current size of the surface; a zero area skips frames.
	size image.Point

	// needsConfigure is set when the surface must be configured
	// before the next acquire.
	needsConfigure bool
}

// New returns a new renderer for the surface of the device, at the given
// size, with the [pipeline.MeshPipeline] registered.
func New(dev gpu.Device, surface gpu.Surface, size image.Point) (*Renderer, error) {
	rd := &Renderer{device: dev, surface: surface, storage: pipeline.NewStorage(), size: size}
	if err := rd.configure(); err != nil {
		return nil, err
	}
	mp, err := pipeline.NewMeshPipeline(dev, surface.Format())
	if err != nil {
		return nil, err
	}
	pipeline.Store(rd.storage, mp)
	return rd, nil
}

// Storage returns the pipeline storage, for registering more pipelines.
func (rd *Renderer) Storage() *pipeline.Storage {
	return rd.storage
}

// Size returns the current size of the surface.
func (rd *Renderer) Size() image.Point {
	return rd.size
}

// hasArea returns whether the current size can be rendered to.
func (rd *Renderer) hasArea() bool {
	return rd.size.X > 0 && rd.size.Y > 0
}

// configure configures the surface at the current size if it has an
// area, and otherwise defers that until it does.
func (rd *Renderer) configure() error {
	if !rd.hasArea() {
		rd.needsConfigure = true
		return nil
	}
	if err := rd.surface.Configure(rd.size); err != nil {
		rd.needsConfigure = true
		return err
	}
	rd.needsConfigure = false
	return nil
}

// Resize records the new size of the surface, which is reconfigured
// before the next frame. A zero area is allowed, for a minimized
// window, and skips frames until a size with an area is set.
func (rd *Renderer) Resize(size image.Point) {
	if size == rd.size && !rd.needsConfigure {
		return
	}
	rd.size = size
	rd.needsConfigure = true
}

// IsRecoverable returns whether a render error only affects the frame
// it was returned for, so that rendering can continue with the next one.
func IsRecoverable(err error) bool {
	return gpu.IsSurfaceError(err)
}

// Render renders one frame of the scene as seen by the camera. It holds
// the lock of the scene for the whole frame. The subtrees removed from
// the scene since the last frame are released after synchronizing. Nothing is rendered while
// the size has no area. If the surface texture cannot be acquired, the
// error is returned and satisfies [IsRecoverable], and the surface is
// reconfigured at the start of the next frame.
func (rd *Renderer) Render(sc *scene.Scene, cam camera.Camera) error {
	sc.Lock()
	defer sc.Unlock()

	if !rd.hasArea() {
		slog.Debug("renderer.Renderer Render: skipping frame with no area", "size", rd.size)
		return nil
	}
	if rd.needsConfigure {
		if err := rd.configure(); err != nil {
			return err
		}
	}
	view, err := rd.surface.Acquire()
	if err != nil {
		if gpu.IsSurfaceError(err) {
			rd.needsConfigure = true
		}
		return err
	}
	enc, err := rd.device.CreateCommandEncoder("scene3d frame")
	if errors.Log(err) != nil {
		rd.surface.Present()
		return err
	}
	defer enc.Release()

	bg := enc.BeginRenderPass(gpu.ClearRenderPass(BackgroundPassLabel, view, sc.Background()))
	err = bg.End()
	bg.Release()
	if err != nil {
		rd.surface.Present()
		return err
	}

	ctx := &pipeline.RenderContext{Storage: rd.storage, Target: view, Camera: cam}
	syncErr := sc.Sync(ctx)
	if syncErr != nil {
		slog.Error("renderer.Renderer Render: scene sync", "frame", rd.Frame, "err", syncErr)
	}
	if n := sc.ReleaseDetached(ctx); n > 0 {
		slog.Debug("renderer.Renderer Render: released detached nodes", "frame", rd.Frame, "nodes", n)
	}
	var errs []error
	for p := range rd.storage.All() {
		if err := p.Update(cam); err != nil {
			errs = append(errs, fmt.Errorf("renderer.Renderer Render: update %T: %w", p, err))
			continue
		}
		if err := p.Draw(view, enc); err != nil {
			errs = append(errs, fmt.Errorf("renderer.Renderer Render: draw %T: %w", p, err))
		}
	}

	cmd, err := enc.Finish()
	if err != nil {
		rd.surface.Present()
		return err
	}
	rd.device.Submit(cmd)
	cmd.Release()
	rd.surface.Present()
	rd.Frame++
	slog.Debug("renderer.Renderer Render", "frame", rd.Frame, "size", rd.size)
	return errors.Join(append([]error{syncErr}, errs...)...)
}

// Destroy destroys the primitives of every node of the scene, all of
// the pipelines, and the surface. The renderer cannot be used afterward.
// The device is not released.
func (rd *Renderer) Destroy(sc *scene.Scene) {
	if sc != nil {
		sc.Lock()
		sc.DestroyAll(&pipeline.RenderContext{Storage: rd.storage})
		sc.Unlock()
	}
	rd.storage.Destroy()
	rd.surface.Release()
}
