// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// GPU is the WebGPU implementation of [Device]. It owns the instance,
// the adapter, the logical device and its queue, and the window
// surface that the adapter was chosen for.
type GPU struct {
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue

	surface *WindowSurface
}

var _ Device = (*GPU)(nil)

// NewGPU creates a WebGPU device that can present to the surface
// described by sd, typically obtained from a window through
// wgpuglfw.GetSurfaceDescriptor. The surface is not configured
// until [WindowSurface.Configure] is called.
func NewGPU(sd *wgpu.SurfaceDescriptor, mode wgpu.PresentMode) (*GPU, error) {
	gp := &GPU{}
	gp.Instance = wgpu.CreateInstance(nil)
	sf := gp.Instance.CreateSurface(sd)
	adapter, err := gp.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: sf,
	})
	if errors.Log(err) != nil {
		sf.Release()
		gp.Instance.Release()
		return nil, err
	}
	gp.Adapter = adapter
	dev, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "scene3d device"})
	if errors.Log(err) != nil {
		sf.Release()
		adapter.Release()
		gp.Instance.Release()
		return nil, err
	}
	gp.Device = dev
	gp.Queue = dev.GetQueue()
	gp.surface = newWindowSurface(gp, sf, mode)
	return gp, nil
}

// Surface returns the window surface of the device.
func (gp *GPU) Surface() *WindowSurface {
	return gp.surface
}

// Release releases the device and everything it owns, except the
// surface, which is released separately.
func (gp *GPU) Release() {
	if gp.Device == nil {
		return
	}
	gp.Queue.Release()
	gp.Device.Release()
	gp.Adapter.Release()
	gp.Instance.Release()
	gp.Queue = nil
	gp.Device = nil
	gp.Adapter = nil
	gp.Instance = nil
}

func (gp *GPU) CreateBuffer(desc *BufferDesc) (Buffer, error) {
	var buf *wgpu.Buffer
	var err error
	if desc.Contents != nil {
		buf, err = gp.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    desc.Label,
			Contents: desc.Contents,
			Usage:    desc.Usage,
		})
	} else {
		buf, err = gp.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: desc.Label,
			Size:  desc.Size,
			Usage: desc.Usage,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("gpu.GPU CreateBuffer %q: %w", desc.Label, err)
	}
	return &buffer{buf: buf, size: desc.AllocSize()}, nil
}

func (gp *GPU) WriteBuffer(buf Buffer, offset uint64, data []byte) error {
	b, ok := buf.(*buffer)
	if !ok || b.buf == nil {
		return errors.New("gpu.GPU WriteBuffer: not a live WebGPU buffer")
	}
	if offset+uint64(len(data)) > b.size {
		return fmt.Errorf("gpu.GPU WriteBuffer: %d bytes at offset %d overflow buffer of size %d", len(data), offset, b.size)
	}
	if err := gp.Queue.WriteBuffer(b.buf, offset, data); err != nil {
		return fmt.Errorf("gpu.GPU WriteBuffer: %w", err)
	}
	return nil
}

func (gp *GPU) CreateShader(label, code string) (Shader, error) {
	sm, err := gp.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu.GPU CreateShader %q: %w", label, err)
	}
	return &shader{module: sm}, nil
}

func (gp *GPU) CreateRenderPipeline(desc *PipelineDesc) (RenderPipeline, error) {
	sh, ok := desc.Shader.(*shader)
	if !ok {
		return nil, errors.New("gpu.GPU CreateRenderPipeline: not a WebGPU shader")
	}
	bgl, err := gp.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: desc.Label + " bind group layout",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: desc.UniformSize,
			},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu.GPU CreateRenderPipeline %q: %w", desc.Label, err)
	}
	layout, err := gp.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            desc.Label + " layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		bgl.Release()
		return nil, fmt.Errorf("gpu.GPU CreateRenderPipeline %q: %w", desc.Label, err)
	}
	rp, err := gp.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     sh.module,
			EntryPoint: desc.VertexEntry,
			Buffers:    []wgpu.VertexBufferLayout{desc.Vertex},
		},
		Fragment: &wgpu.FragmentState{
			Module:     sh.module,
			EntryPoint: desc.FragmentEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    desc.Format,
				Blend:     desc.Blend,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  desc.Topology,
			FrontFace: desc.FrontFace,
			CullMode:  desc.CullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		layout.Release()
		bgl.Release()
		return nil, fmt.Errorf("gpu.GPU CreateRenderPipeline %q: %w", desc.Label, err)
	}
	return &renderPipeline{pipeline: rp, layout: layout, bindLayout: bgl}, nil
}

func (gp *GPU) CreateBindGroup(label string, pl RenderPipeline, uniform Buffer) (BindGroup, error) {
	rp, ok := pl.(*renderPipeline)
	if !ok {
		return nil, errors.New("gpu.GPU CreateBindGroup: not a WebGPU pipeline")
	}
	ub, ok := uniform.(*buffer)
	if !ok {
		return nil, errors.New("gpu.GPU CreateBindGroup: not a WebGPU buffer")
	}
	bg, err := gp.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: rp.bindLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  ub.buf,
			Size:    wgpu.WholeSize,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu.GPU CreateBindGroup %q: %w", label, err)
	}
	return &bindGroup{group: bg}, nil
}

func (gp *GPU) CreateCommandEncoder(label string) (Encoder, error) {
	cmd, err := gp.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if errors.Log(err) != nil {
		return nil, err
	}
	return &encoder{cmd: cmd}, nil
}

func (gp *GPU) Submit(cmds ...CommandBuffer) {
	bufs := make([]*wgpu.CommandBuffer, 0, len(cmds))
	for _, c := range cmds {
		cb, ok := c.(*commandBuffer)
		if !ok {
			slog.Error("gpu.GPU Submit: not a WebGPU command buffer")
			continue
		}
		bufs = append(bufs, cb.buf)
	}
	gp.Queue.Submit(bufs...)
}

// shader is the WebGPU [Shader].
type shader struct {
	module *wgpu.ShaderModule
}

func (sh *shader) Release() {
	if sh.module != nil {
		sh.module.Release()
		sh.module = nil
	}
}

// renderPipeline is the WebGPU [RenderPipeline], with the layouts
// it was created with.
type renderPipeline struct {
	pipeline   *wgpu.RenderPipeline
	layout     *wgpu.PipelineLayout
	bindLayout *wgpu.BindGroupLayout
}

func (rp *renderPipeline) Release() {
	if rp.pipeline == nil {
		return
	}
	rp.pipeline.Release()
	rp.layout.Release()
	rp.bindLayout.Release()
	rp.pipeline = nil
	rp.layout = nil
	rp.bindLayout = nil
}

// bindGroup is the WebGPU [BindGroup].
type bindGroup struct {
	group *wgpu.BindGroup
}

func (bg *bindGroup) Release() {
	if bg.group != nil {
		bg.group.Release()
		bg.group = nil
	}
}
