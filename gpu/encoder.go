// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"log/slog"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// encoder is the WebGPU [Encoder].
type encoder struct {
	cmd *wgpu.CommandEncoder
}

func (ec *encoder) BeginRenderPass(desc *PassDesc) RenderPass {
	var view *wgpu.TextureView
	if tv, ok := desc.View.(*textureView); ok {
		view = tv.view
	} else {
		slog.Error("gpu.encoder BeginRenderPass: not a WebGPU texture view", "pass", desc.Label)
	}
	return &renderPass{rp: ec.cmd.BeginRenderPass(desc.descriptor(view))}
}

func (ec *encoder) Finish() (CommandBuffer, error) {
	cb, err := ec.cmd.Finish(nil)
	if errors.Log(err) != nil {
		return nil, err
	}
	return &commandBuffer{buf: cb}, nil
}

func (ec *encoder) Release() {
	if ec.cmd != nil {
		ec.cmd.Release()
		ec.cmd = nil
	}
}

// commandBuffer is the WebGPU [CommandBuffer].
type commandBuffer struct {
	buf *wgpu.CommandBuffer
}

func (cb *commandBuffer) Release() {
	if cb.buf != nil {
		cb.buf.Release()
		cb.buf = nil
	}
}

// renderPass is the WebGPU [RenderPass].
type renderPass struct {
	rp *wgpu.RenderPassEncoder
}

func (rp *renderPass) SetPipeline(pl RenderPipeline) {
	if p, ok := pl.(*renderPipeline); ok {
		rp.rp.SetPipeline(p.pipeline)
	}
}

func (rp *renderPass) SetBindGroup(index uint32, bg BindGroup) {
	if g, ok := bg.(*bindGroup); ok {
		rp.rp.SetBindGroup(index, g.group, nil)
	}
}

func (rp *renderPass) SetVertexBuffer(slot uint32, buf Buffer) {
	if b, ok := buf.(*buffer); ok {
		rp.rp.SetVertexBuffer(slot, b.buf, 0, wgpu.WholeSize)
	}
}

func (rp *renderPass) SetIndexBuffer(buf Buffer) {
	if b, ok := buf.(*buffer); ok {
		rp.rp.SetIndexBuffer(b.buf, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	}
}

func (rp *renderPass) DrawIndexed(indexCount uint32) {
	rp.rp.DrawIndexed(indexCount, 1, 0, 0, 0)
}

func (rp *renderPass) End() error {
	rp.rp.End()
	return nil
}

func (rp *renderPass) Release() {
	if rp.rp != nil {
		rp.rp.Release()
		rp.rp = nil
	}
}
