// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu is the render backend used by the scene renderer.
// It defines a small set of interfaces over the GPU objects that the
// renderer needs ([Device], [Surface], [Encoder], [RenderPass], [Buffer]
// and friends), and implements them on top of WebGPU through
// github.com/cogentcore/webgpu. A recording fake for tests is in
// the gputest package.
package gpu

import (
	"image"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrSurfaceOutdated is returned by [Surface.Acquire] when the surface
	// no longer matches its configuration and must be reconfigured.
	ErrSurfaceOutdated = errors.New("gpu: surface outdated")

	// ErrSurfaceLost is returned by [Surface.Acquire] when the surface
	// was lost and must be reconfigured.
	ErrSurfaceLost = errors.New("gpu: surface lost")

	// ErrSurfaceTimeout is returned by [Surface.Acquire] when no surface
	// texture became available in time.
	ErrSurfaceTimeout = errors.New("gpu: surface timeout")
)

// IsSurfaceError returns whether the error is one of the recoverable
// surface errors, after which the surface should be reconfigured.
func IsSurfaceError(err error) bool {
	return errors.Is(err, ErrSurfaceOutdated) || errors.Is(err, ErrSurfaceLost) || errors.Is(err, ErrSurfaceTimeout)
}

// Releaser is any GPU object that holds device memory or a native handle.
type Releaser interface {
	Release()
}

// Buffer is a block of device memory.
type Buffer interface {
	Releaser

	// Size returns the allocated size in bytes.
	Size() uint64
}

// Shader is a compiled shader module.
type Shader interface{ Releaser }

// RenderPipeline is a compiled render pipeline together with the layout
// of its uniform bind group.
type RenderPipeline interface{ Releaser }

// BindGroup binds buffers to a [RenderPipeline].
type BindGroup interface{ Releaser }

// TextureView is a view onto a render target texture.
type TextureView interface{ Releaser }

// CommandBuffer is a finished command sequence, ready to submit.
type CommandBuffer interface{ Releaser }

// Device creates GPU resources and submits command buffers to its queue.
type Device interface {
	Releaser

	// CreateBuffer allocates a buffer. If the descriptor has Contents,
	// the buffer is initialized with them and sized to fit.
	CreateBuffer(desc *BufferDesc) (Buffer, error)

	// WriteBuffer queues a write of data into the buffer at the offset.
	WriteBuffer(buf Buffer, offset uint64, data []byte) error

	// CreateShader compiles WGSL source code.
	CreateShader(label, code string) (Shader, error)

	// CreateRenderPipeline compiles a render pipeline.
	CreateRenderPipeline(desc *PipelineDesc) (RenderPipeline, error)

	// CreateBindGroup binds the uniform buffer at binding 0 of group 0
	// of the pipeline.
	CreateBindGroup(label string, pl RenderPipeline, uniform Buffer) (BindGroup, error)

	// CreateCommandEncoder starts a new command sequence.
	CreateCommandEncoder(label string) (Encoder, error)

	// Submit submits finished command buffers to the queue, in order.
	Submit(cmds ...CommandBuffer)
}

// Encoder records render passes into a command sequence.
type Encoder interface {
	Releaser

	// BeginRenderPass starts a render pass described by desc.
	BeginRenderPass(desc *PassDesc) RenderPass

	// Finish ends recording and returns the command buffer.
	Finish() (CommandBuffer, error)
}

// RenderPass records draw commands for one pass.
type RenderPass interface {
	Releaser

	SetPipeline(pl RenderPipeline)
	SetBindGroup(index uint32, bg BindGroup)
	SetVertexBuffer(slot uint32, buf Buffer)

	// SetIndexBuffer sets the index buffer, with uint32 indices.
	SetIndexBuffer(buf Buffer)

	// DrawIndexed draws one instance with the given number of indices.
	DrawIndexed(indexCount uint32)

	// End ends the pass. No further commands can be recorded on it.
	End() error
}

// Surface is the presentable render target of a window.
type Surface interface {
	Releaser

	// Configure (re)configures the surface at the given size.
	Configure(size image.Point) error

	// Format returns the texture format of the surface.
	Format() wgpu.TextureFormat

	// Acquire returns a view of the next surface texture. The errors
	// [ErrSurfaceOutdated], [ErrSurfaceLost] and [ErrSurfaceTimeout]
	// mean that the surface must be reconfigured before the next frame.
	Acquire() (TextureView, error)

	// Present shows the acquired texture and releases it.
	Present()
}
