// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"strings"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// WindowSurface is the WebGPU implementation of [Surface],
// presenting to a window.
type WindowSurface struct {

	// PresentMode is the present mode used when configuring.
	PresentMode wgpu.PresentMode

	// size is the last configured size.
	size image.Point

	gpu     *GPU
	surface *wgpu.Surface
	format  wgpu.TextureFormat

	// current texture and view between Acquire and Present.
	texture *wgpu.Texture
	view    *textureView
}

var _ Surface = (*WindowSurface)(nil)

func newWindowSurface(gp *GPU, sf *wgpu.Surface, mode wgpu.PresentMode) *WindowSurface {
	ws := &WindowSurface{gpu: gp, surface: sf, PresentMode: mode}
	caps := sf.GetCapabilities(gp.Adapter)
	if len(caps.Formats) > 0 {
		ws.format = caps.Formats[0]
	} else {
		ws.format = wgpu.TextureFormatBGRA8Unorm
	}
	return ws
}

// Format returns the preferred texture format of the surface.
func (ws *WindowSurface) Format() wgpu.TextureFormat {
	return ws.format
}

// Size returns the last configured size.
func (ws *WindowSurface) Size() image.Point {
	return ws.size
}

// Configure configures the surface at the given size,
// which must be positive in both dimensions.
func (ws *WindowSurface) Configure(size image.Point) error {
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("gpu.WindowSurface Configure: invalid size %v", size)
	}
	caps := ws.surface.GetCapabilities(ws.gpu.Adapter)
	alpha := wgpu.CompositeAlphaModeAuto
	if len(caps.AlphaModes) > 0 {
		alpha = caps.AlphaModes[0]
	}
	ws.surface.Configure(ws.gpu.Adapter, ws.gpu.Device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      ws.format,
		Width:       uint32(size.X),
		Height:      uint32(size.Y),
		PresentMode: ws.PresentMode,
		AlphaMode:   alpha,
	})
	ws.size = size
	return nil
}

// Acquire gets the next surface texture and returns a view onto it.
func (ws *WindowSurface) Acquire() (TextureView, error) {
	if ws.texture != nil {
		return nil, errors.New("gpu.WindowSurface Acquire: previous texture not yet presented")
	}
	tex, err := ws.surface.GetCurrentTexture()
	if err != nil {
		return nil, SurfaceError(err)
	}
	view, err := tex.CreateView(nil)
	if errors.Log(err) != nil {
		tex.Release()
		return nil, err
	}
	ws.texture = tex
	ws.view = &textureView{view: view}
	return ws.view, nil
}

// Present presents the acquired texture, if any, and releases it.
func (ws *WindowSurface) Present() {
	if ws.texture == nil {
		return
	}
	ws.surface.Present()
	ws.view.Release()
	ws.texture.Release()
	ws.view = nil
	ws.texture = nil
}

// Release releases the surface.
func (ws *WindowSurface) Release() {
	if ws.surface == nil {
		return
	}
	if ws.texture != nil {
		ws.view.Release()
		ws.texture.Release()
		ws.view = nil
		ws.texture = nil
	}
	ws.surface.Release()
	ws.surface = nil
}

// SurfaceError maps an error from getting the current surface texture
// onto [ErrSurfaceOutdated], [ErrSurfaceLost] or [ErrSurfaceTimeout].
// Unknown errors are treated as outdated, which triggers a reconfigure.
func SurfaceError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"):
		return fmt.Errorf("%w: %v", ErrSurfaceTimeout, err)
	case strings.Contains(msg, "lost"):
		return fmt.Errorf("%w: %v", ErrSurfaceLost, err)
	default:
		return fmt.Errorf("%w: %v", ErrSurfaceOutdated, err)
	}
}

// textureView is the WebGPU [TextureView].
type textureView struct {
	view *wgpu.TextureView
}

func (tv *textureView) Release() {
	if tv.view != nil {
		tv.view.Release()
		tv.view = nil
	}
}
