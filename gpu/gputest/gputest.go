// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gputest provides a recording implementation of the gpu
// interfaces, for testing code that renders without a real GPU.
// Every call is appended to the log of the [Device] as a short
// operation string, such as "DrawIndexed 36".
package gputest

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"cogentcore.org/scene3d/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Device is a recording [gpu.Device].
type Device struct {

	// BufferErr, if set, is called for every CreateBuffer, and a non-nil
	// result fails the allocation with that error.
	BufferErr func(desc *gpu.BufferDesc) error

	mu      sync.Mutex
	ops     []string
	buffers map[*Buffer]struct{}
}

var _ gpu.Device = (*Device)(nil)

// NewDevice returns a new recording device.
func NewDevice() *Device {
	return &Device{buffers: map[*Buffer]struct{}{}}
}

func (d *Device) record(format string, args ...any) {
	d.mu.Lock()
	d.ops = append(d.ops, fmt.Sprintf(format, args...))
	d.mu.Unlock()
}

// Ops returns a copy of the operation log.
func (d *Device) Ops() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.ops...)
}

// Filter returns the operations that start with any of the given prefixes,
// in order.
func (d *Device) Filter(prefixes ...string) []string {
	var res []string
	for _, op := range d.Ops() {
		for _, p := range prefixes {
			if strings.HasPrefix(op, p) {
				res = append(res, op)
				break
			}
		}
	}
	return res
}

// Count returns the number of operations that start with the prefix.
func (d *Device) Count(prefix string) int {
	return len(d.Filter(prefix))
}

// Reset clears the operation log.
func (d *Device) Reset() {
	d.mu.Lock()
	d.ops = nil
	d.mu.Unlock()
}

// LiveBuffers returns the number of buffers created and not yet released.
func (d *Device) LiveBuffers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.buffers)
}

func (d *Device) Release() {
	d.record("ReleaseDevice")
}

func (d *Device) CreateBuffer(desc *gpu.BufferDesc) (gpu.Buffer, error) {
	if d.BufferErr != nil {
		if err := d.BufferErr(desc); err != nil {
			d.record("CreateBufferFailed %s", desc.Label)
			return nil, err
		}
	}
	b := &Buffer{Label: desc.Label, Usage: desc.Usage, dev: d}
	b.Data = make([]byte, desc.AllocSize())
	copy(b.Data, desc.Contents)
	d.mu.Lock()
	d.buffers[b] = struct{}{}
	d.mu.Unlock()
	d.record("CreateBuffer %s", desc.Label)
	return b, nil
}

func (d *Device) WriteBuffer(buf gpu.Buffer, offset uint64, data []byte) error {
	b, ok := buf.(*Buffer)
	if !ok || b.released {
		return fmt.Errorf("gputest.Device WriteBuffer: not a live buffer")
	}
	if offset+uint64(len(data)) > uint64(len(b.Data)) {
		return fmt.Errorf("gputest.Device WriteBuffer: write overflows %s", b.Label)
	}
	copy(b.Data[offset:], data)
	d.record("WriteBuffer %s", b.Label)
	return nil
}

func (d *Device) CreateShader(label, code string) (gpu.Shader, error) {
	d.record("CreateShader %s", label)
	return &object{label: label}, nil
}

func (d *Device) CreateRenderPipeline(desc *gpu.PipelineDesc) (gpu.RenderPipeline, error) {
	d.record("CreateRenderPipeline %s", desc.Label)
	return &Pipeline{object: object{label: desc.Label}, Desc: *desc}, nil
}

func (d *Device) CreateBindGroup(label string, pl gpu.RenderPipeline, uniform gpu.Buffer) (gpu.BindGroup, error) {
	d.record("CreateBindGroup %s", label)
	return &object{label: label}, nil
}

func (d *Device) CreateCommandEncoder(label string) (gpu.Encoder, error) {
	d.record("CreateCommandEncoder %s", label)
	return &encoder{dev: d}, nil
}

func (d *Device) Submit(cmds ...gpu.CommandBuffer) {
	d.record("Submit %d", len(cmds))
}

// Buffer is a recording [gpu.Buffer] holding its contents in memory.
type Buffer struct {
	Label string
	Usage wgpu.BufferUsage

	// Data are the current contents of the buffer.
	Data []byte

	released bool
	dev      *Device
}

func (b *Buffer) Size() uint64 { return uint64(len(b.Data)) }

// Released returns whether the buffer has been released.
func (b *Buffer) Released() bool { return b.released }

func (b *Buffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.dev.mu.Lock()
	delete(b.dev.buffers, b)
	b.dev.mu.Unlock()
	b.dev.record("ReleaseBuffer %s", b.Label)
}

// object is a labelled resource with nothing behind it.
type object struct {
	label    string
	released bool
}

func (o *object) Release() { o.released = true }

// Pipeline is a recording [gpu.RenderPipeline] that keeps its description.
type Pipeline struct {
	object
	Desc gpu.PipelineDesc
}

type encoder struct {
	dev *Device
}

func (ec *encoder) BeginRenderPass(desc *gpu.PassDesc) gpu.RenderPass {
	op := "load"
	if desc.Clear {
		op = "clear"
	}
	ec.dev.record("BeginRenderPass %s %s", desc.Label, op)
	return &renderPass{dev: ec.dev, ClearColor: desc.ClearColor}
}

func (ec *encoder) Finish() (gpu.CommandBuffer, error) {
	ec.dev.record("Finish")
	return &object{label: "command buffer"}, nil
}

func (ec *encoder) Release() {}

type renderPass struct {
	dev        *Device
	ClearColor color.RGBA
	ended      bool
}

func label(r gpu.Releaser) string {
	switch v := r.(type) {
	case *Buffer:
		return v.Label
	case *Pipeline:
		return v.label
	case *object:
		return v.label
	}
	return "?"
}

func (rp *renderPass) SetPipeline(pl gpu.RenderPipeline) {
	rp.dev.record("SetPipeline %s", label(pl))
}

func (rp *renderPass) SetBindGroup(index uint32, bg gpu.BindGroup) {
	rp.dev.record("SetBindGroup %d", index)
}

func (rp *renderPass) SetVertexBuffer(slot uint32, buf gpu.Buffer) {
	rp.dev.record("SetVertexBuffer %s", label(buf))
}

func (rp *renderPass) SetIndexBuffer(buf gpu.Buffer) {
	rp.dev.record("SetIndexBuffer %s", label(buf))
}

func (rp *renderPass) DrawIndexed(indexCount uint32) {
	rp.dev.record("DrawIndexed %d", indexCount)
}

func (rp *renderPass) End() error {
	if rp.ended {
		return fmt.Errorf("gputest render pass ended twice")
	}
	rp.ended = true
	rp.dev.record("End")
	return nil
}

func (rp *renderPass) Release() {}

// Surface is a recording [gpu.Surface] that shares the log of its device.
type Surface struct {

	// AcquireErr, if set, is returned by the next Acquire and then cleared.
	AcquireErr error

	// Configured are the sizes the surface was configured with, in order.
	Configured []image.Point

	dev      *Device
	acquired bool
}

var _ gpu.Surface = (*Surface)(nil)

// NewSurface returns a new recording surface logging to the device.
func NewSurface(dev *Device) *Surface {
	return &Surface{dev: dev}
}

func (s *Surface) Configure(size image.Point) error {
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("gputest.Surface Configure: invalid size %v", size)
	}
	s.Configured = append(s.Configured, size)
	s.dev.record("Configure %dx%d", size.X, size.Y)
	return nil
}

func (s *Surface) Format() wgpu.TextureFormat {
	return wgpu.TextureFormatBGRA8Unorm
}

func (s *Surface) Acquire() (gpu.TextureView, error) {
	if err := s.AcquireErr; err != nil {
		s.AcquireErr = nil
		s.dev.record("AcquireFailed")
		return nil, err
	}
	s.acquired = true
	s.dev.record("Acquire")
	return &object{label: "surface view"}, nil
}

func (s *Surface) Present() {
	if !s.acquired {
		return
	}
	s.acquired = false
	s.dev.record("Present")
}

func (s *Surface) Release() {
	s.dev.record("ReleaseSurface")
}
