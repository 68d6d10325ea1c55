// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline provides the draw pipelines of the renderer, the
// [Storage] registry that holds one pipeline per concrete type, and the
// [Primitive] that synchronizes the geometry of one scene node into
// the resource table of its pipeline.
package pipeline

import (
	"embed"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/scene3d/camera"
	"cogentcore.org/scene3d/gpu"
)

//go:embed shaders/*.wgsl
var shaders embed.FS

var (
	// ErrNoPipeline is returned when the pipeline that a [Primitive]
	// uploads into is not registered in the [Storage].
	ErrNoPipeline = errors.New("pipeline: no pipeline registered for primitive")

	// ErrEmptyMesh is returned when uploading mesh data without
	// any vertices or indices.
	ErrEmptyMesh = errors.New("pipeline: empty mesh data")
)

// Pipeline is a draw pipeline: a GPU draw configuration plus the
// buffers of every object rendered through it.
type Pipeline interface {

	// Update pushes the per-frame uniform data, recomputed from the camera.
	Update(cam camera.Camera) error

	// Draw records the draw commands for every object in the pipeline
	// into one render pass on the target. It does nothing if the pipeline
	// has no objects.
	Draw(target gpu.TextureView, enc gpu.Encoder) error

	// Destroy releases every GPU resource held by the pipeline.
	Destroy()
}

// RenderContext is what a [Primitive] needs to synchronize itself
// during the scene sync pass of a frame.
type RenderContext struct {
	Storage *Storage
	Target  gpu.TextureView
	Camera  camera.Camera
}
