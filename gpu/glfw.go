// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build (darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd

package gpu

import (
	"image"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// note: this file contains the glfw dependencies, for desktop platform builds.

// Init initializes glfw. It must be called on the main initial thread,
// before any window is created.
func Init() error {
	return errors.Log(glfw.Init())
}

// Terminate shuts down glfw. It must be called on the main initial thread.
func Terminate() {
	glfw.Terminate()
}

// Window is a glfw window with a WebGPU surface descriptor.
type Window struct {
	*glfw.Window

	// OnResize is called with the new framebuffer size when the window is resized.
	OnResize func(size image.Point)
}

// GLFWCreateWindow makes a new glfw window without a client API, ready
// for a WebGPU surface. [Init] must have been called.
func GLFWCreateWindow(size image.Point, title string) (*Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	gw, err := glfw.CreateWindow(size.X, size.Y, title, nil, nil)
	if errors.Log(err) != nil {
		return nil, err
	}
	w := &Window{Window: gw}
	gw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.OnResize != nil {
			w.OnResize(image.Point{width, height})
		}
	})
	return w, nil
}

// SurfaceDescriptor returns the descriptor for a WebGPU surface on the window.
func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.Window)
}

// Size returns the current framebuffer size of the window.
func (w *Window) Size() image.Point {
	width, height := w.GetFramebufferSize()
	return image.Point{width, height}
}

// PollEvents processes pending window events, and returns false
// once the window should close.
func (w *Window) PollEvents() bool {
	if w.ShouldClose() {
		return false
	}
	glfw.PollEvents()
	return true
}
