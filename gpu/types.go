// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image/color"

	"github.com/cogentcore/webgpu/wgpu"
)

// BufferDesc describes a [Buffer] to create.
type BufferDesc struct {
	Label string

	// Usage is the set of ways the buffer will be used.
	Usage wgpu.BufferUsage

	// Size is the size in bytes, ignored if Contents is set.
	Size uint64

	// Contents are the initial contents of the buffer, if any.
	Contents []byte
}

// AllocSize returns the number of bytes that the buffer will occupy.
func (bd *BufferDesc) AllocSize() uint64 {
	if bd.Contents != nil {
		return uint64(len(bd.Contents))
	}
	return bd.Size
}

// PipelineDesc describes a [RenderPipeline] with one vertex buffer and
// one uniform buffer, bound at binding 0 of group 0 and visible
// to the vertex stage.
type PipelineDesc struct {
	Label string

	Shader Shader

	// VertexEntry and FragmentEntry are the shader entry points.
	VertexEntry   string
	FragmentEntry string

	// Vertex is the layout of the vertex buffer.
	Vertex wgpu.VertexBufferLayout

	// UniformSize is the minimum size of the uniform binding in bytes.
	UniformSize uint64

	// Format is the color target format.
	Format wgpu.TextureFormat

	Topology  wgpu.PrimitiveTopology
	FrontFace wgpu.FrontFace
	CullMode  wgpu.CullMode

	// Blend is the color blend state, nil for none.
	Blend *wgpu.BlendState
}

// PassDesc describes a single color attachment render pass.
type PassDesc struct {
	Label string

	// View is the render target.
	View TextureView

	// Clear is whether to clear the target with ClearColor,
	// instead of loading its prior contents.
	Clear bool

	ClearColor color.RGBA
}

// VertexAttr returns a vertex attribute of the given format at the
// byte offset, bound to the shader location.
func VertexAttr(format wgpu.VertexFormat, offset uint64, location uint32) wgpu.VertexAttribute {
	return wgpu.VertexAttribute{Format: format, Offset: offset, ShaderLocation: location}
}

// ParsePresentMode returns the present mode with the given name:
// fifo, mailbox or immediate.
func ParsePresentMode(name string) (wgpu.PresentMode, error) {
	switch name {
	case "fifo", "":
		return wgpu.PresentModeFifo, nil
	case "mailbox":
		return wgpu.PresentModeMailbox, nil
	case "immediate":
		return wgpu.PresentModeImmediate, nil
	}
	return wgpu.PresentModeFifo, fmt.Errorf("gpu.ParsePresentMode: unknown present mode %q", name)
}
