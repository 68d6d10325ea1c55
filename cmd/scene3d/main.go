// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command scene3d opens a window and renders a small demo scene:
// a thick line and a red box. Settings come from an optional TOML or
// YAML config file, which is watched and reloaded while running, the
// environment and the command line flags.
package main

import (
	"context"
	"image"
	"log/slog"
	"os"
	"runtime"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/cli"
	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/scene3d/camera"
	"cogentcore.org/scene3d/config"
	"cogentcore.org/scene3d/gpu"
	"cogentcore.org/scene3d/logx"
	"cogentcore.org/scene3d/material"
	"cogentcore.org/scene3d/renderer"
	"cogentcore.org/scene3d/scene"
	"cogentcore.org/scene3d/shape"
	"cogentcore.org/scene3d/tree"
)

func init() {
	// glfw must run on the main thread
	runtime.LockOSThread()
}

func main() {
	cli.Run(config.Options(), config.New(), run)
}

// run renders the scene until the window is closed.
func run(cfg *config.Config) error {
	level, err := logx.ParseLevel(cfg.LogLevel)
	errors.Log(err)
	logx.Init(os.Stderr, level)

	mode, err := gpu.ParsePresentMode(cfg.PresentMode)
	if err != nil {
		return err
	}
	if err := gpu.Init(); err != nil {
		return err
	}
	defer gpu.Terminate()

	win, err := gpu.GLFWCreateWindow(image.Point{cfg.Window.Width, cfg.Window.Height}, cfg.Window.Title)
	if err != nil {
		return err
	}
	defer win.Destroy()

	gp, err := gpu.NewGPU(win.SurfaceDescriptor(), mode)
	if err != nil {
		return err
	}
	defer gp.Release()

	size := win.Size()
	rd, err := renderer.New(gp, gp.Surface(), size)
	if err != nil {
		return err
	}
	cam := newCamera(&cfg.Camera)
	cam.SetViewport(size)
	win.OnResize = func(size image.Point) {
		rd.Resize(size)
		cam.SetViewport(size)
	}

	sc := scene.New(tree.NewIDAllocator())
	defer rd.Destroy(sc)
	go buildScene(sc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if fn := cfg.File(); fn != "" {
		errors.Log(config.Watch(ctx, fn, func(ncfg *config.Config) {
			sc.Update(func(sc *scene.Scene) {
				sc.SetBackground(ncfg.BackgroundColor())
			})
		}))
	}

	for win.PollEvents() {
		err := rd.Render(sc, cam)
		switch {
		case err == nil:
		case renderer.IsRecoverable(err):
			slog.Debug("scene3d: frame skipped", "frame", rd.Frame, "err", err)
		default:
			slog.Error("scene3d: render failed", "frame", rd.Frame, "err", err)
		}
	}
	return nil
}

// newCamera returns the camera described by the config, placed on the
// positive z axis looking at the origin.
func newCamera(cc *config.Camera) camera.Camera {
	eye := math32.Vec3(0, 0, cc.Distance)
	up := math32.Vec3(0, 1, 0)
	if cc.Kind == "perspective" {
		return camera.NewPerspective(eye, math32.Vector3{}, up, cc.FOV, cc.Near, cc.Far)
	}
	return camera.NewOrthographic(eye, math32.Vector3{}, up, cc.Near, cc.Far, cc.Height)
}

// buildScene fills the scene with the demo content. It runs concurrently
// with the render loop, holding the scene lock while it edits.
func buildScene(sc *scene.Scene, cfg *config.Config) {
	sc.Update(func(sc *scene.Scene) {
		sc.SetBackground(cfg.BackgroundColor())
		points := []math32.Vector3{math32.Vec3(0, 0, 0), math32.Vec3(1, 1, 0), math32.Vec3(0, 2, 0)}
		sc.Add(scene.NewLine(sc.IDs(), points, material.NewLine(colors.White).SetWidth(cfg.LineWidth)))
		sc.Add(scene.NewMesh(sc.IDs(), shape.NewBox(10, 10, 10), material.NewBasic(colors.Red)))
	})
	slog.Info("scene3d: scene ready")
}
