// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"
	"log/slog"
	"unsafe"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"cogentcore.org/scene3d/camera"
	"cogentcore.org/scene3d/gpu"
	"cogentcore.org/scene3d/shape"
	"github.com/cogentcore/webgpu/wgpu"
)

// MeshPassLabel is the label of the render pass recorded by [MeshPipeline.Draw].
const MeshPassLabel = "mesh.pipeline.pass"

// UniformSize is the size of the camera uniform: one mat4x4<f32>.
const UniformSize = uint64(unsafe.Sizeof(math32.Matrix4{}))

// meshEntry is one object in the resource table of a [MeshPipeline].
type meshEntry struct {
	handle     Handle
	vertex     gpu.Buffer
	index      gpu.Buffer
	indexCount uint32
}

// MeshPipeline draws indexed triangle meshes of [shape.ColorVertex]
// vertices with a single view-projection uniform. It owns the vertex
// and index buffers of every mesh uploaded into it.
type MeshPipeline struct {

	// Label prefixes the labels of the GPU resources of the pipeline.
	Label string

	device    gpu.Device
	shader    gpu.Shader
	pipeline  gpu.RenderPipeline
	uniform   gpu.Buffer
	bindGroup gpu.BindGroup

	handles HandleAllocator

	// entries is dense, in upload order except where a removal
	// moved the last entry into the freed position.
	entries []*meshEntry
	table   map[Handle]int
}

// MeshVertexLayout returns the vertex buffer layout of [shape.ColorVertex].
func MeshVertexLayout() wgpu.VertexBufferLayout {
	var v shape.ColorVertex
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(unsafe.Sizeof(v)),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			gpu.VertexAttr(wgpu.VertexFormatFloat32x3, uint64(unsafe.Offsetof(v.Pos)), 0),
			gpu.VertexAttr(wgpu.VertexFormatFloat32x4, uint64(unsafe.Offsetof(v.Color)), 1),
		},
	}
}

// NewMeshPipeline creates the shader, uniform buffer, render pipeline
// and bind group of a mesh pipeline drawing into targets of the given format.
func NewMeshPipeline(dev gpu.Device, format wgpu.TextureFormat) (*MeshPipeline, error) {
	mp := &MeshPipeline{Label: "mesh", device: dev, table: map[Handle]int{}}
	code, err := shaders.ReadFile("shaders/mesh.wgsl")
	if errors.Log(err) != nil {
		return nil, err
	}
	mp.shader, err = dev.CreateShader(mp.Label+" shader", string(code))
	if err != nil {
		return nil, err
	}
	mp.uniform, err = dev.CreateBuffer(&gpu.BufferDesc{
		Label: mp.Label + " camera buffer",
		Usage: gpu.UniformUsage,
		Size:  UniformSize,
	})
	if err != nil {
		mp.Destroy()
		return nil, err
	}
	mp.pipeline, err = dev.CreateRenderPipeline(&gpu.PipelineDesc{
		Label:         mp.Label + " pipeline",
		Shader:        mp.shader,
		VertexEntry:   "vs_main",
		FragmentEntry: "fs_main",
		Vertex:        MeshVertexLayout(),
		UniformSize:   UniformSize,
		Format:        format,
		Topology:      wgpu.PrimitiveTopologyTriangleList,
		FrontFace:     wgpu.FrontFaceCCW,
		CullMode:      wgpu.CullModeBack,
		Blend:         &wgpu.BlendStateReplace,
	})
	if err != nil {
		mp.Destroy()
		return nil, err
	}
	mp.bindGroup, err = dev.CreateBindGroup(mp.Label+" camera bind group", mp.pipeline, mp.uniform)
	if err != nil {
		mp.Destroy()
		return nil, err
	}
	return mp, nil
}

// Len returns the number of meshes in the resource table.
func (mp *MeshPipeline) Len() int {
	return len(mp.entries)
}

// Contains returns whether the handle is in the resource table.
func (mp *MeshPipeline) Contains(h Handle) bool {
	_, has := mp.table[h]
	return has
}

// Handles returns the handles of the resource table in draw order.
func (mp *MeshPipeline) Handles() []Handle {
	hs := make([]Handle, len(mp.entries))
	for i, e := range mp.entries {
		hs[i] = e.handle
	}
	return hs
}

// AddMeshData uploads the vertices and indices into new vertex and index
// buffers and returns the handle of the new resource table entry.
// Nothing is added if an allocation fails.
func (mp *MeshPipeline) AddMeshData(vertices []shape.ColorVertex, indices []uint32) (Handle, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return Handle{}, ErrEmptyMesh
	}
	vb, err := mp.device.CreateBuffer(&gpu.BufferDesc{
		Label:    mp.Label + " vertex buffer",
		Usage:    gpu.VertexUsage,
		Contents: gpu.BytesOf(vertices),
	})
	if err != nil {
		return Handle{}, fmt.Errorf("pipeline.MeshPipeline AddMeshData: %w", err)
	}
	ib, err := mp.device.CreateBuffer(&gpu.BufferDesc{
		Label:    mp.Label + " index buffer",
		Usage:    gpu.IndexUsage,
		Contents: gpu.BytesOf(indices),
	})
	if err != nil {
		vb.Release()
		return Handle{}, fmt.Errorf("pipeline.MeshPipeline AddMeshData: %w", err)
	}
	h := mp.handles.Alloc()
	if _, has := mp.table[h]; has {
		panic(fmt.Sprintf("pipeline.MeshPipeline AddMeshData: handle %v already in use", h))
	}
	mp.table[h] = len(mp.entries)
	mp.entries = append(mp.entries, &meshEntry{handle: h, vertex: vb, index: ib, indexCount: uint32(len(indices))})
	return h, nil
}

// RemoveMeshData releases the buffers of the entry with the given handle
// and removes it from the resource table. It does nothing if there is no
// such entry.
func (mp *MeshPipeline) RemoveMeshData(h Handle) {
	idx, has := mp.table[h]
	if !has {
		return
	}
	e := mp.entries[idx]
	e.vertex.Release()
	e.index.Release()
	last := len(mp.entries) - 1
	if idx != last {
		moved := mp.entries[last]
		mp.entries[idx] = moved
		mp.table[moved.handle] = idx
	}
	mp.entries[last] = nil
	mp.entries = mp.entries[:last]
	delete(mp.table, h)
	mp.handles.Free(h)
}

// Update computes the view-projection matrix of the camera and
// writes it to the camera uniform buffer.
func (mp *MeshPipeline) Update(cam camera.Camera) error {
	if mp.uniform == nil {
		return errors.New("pipeline.MeshPipeline Update: pipeline destroyed")
	}
	u := camera.NewUniform(cam)
	return mp.device.WriteBuffer(mp.uniform, 0, gpu.BytesOf([]camera.Uniform{u}))
}

// Draw records one render pass on the target that loads its prior
// contents, binds the pipeline and camera once, and draws every mesh
// in the resource table. It does nothing if the table is empty.
func (mp *MeshPipeline) Draw(target gpu.TextureView, enc gpu.Encoder) error {
	if len(mp.entries) == 0 {
		return nil
	}
	pass := enc.BeginRenderPass(gpu.LoadRenderPass(MeshPassLabel, target))
	pass.SetPipeline(mp.pipeline)
	pass.SetBindGroup(0, mp.bindGroup)
	for _, e := range mp.entries {
		pass.SetVertexBuffer(0, e.vertex)
		pass.SetIndexBuffer(e.index)
		pass.DrawIndexed(e.indexCount)
	}
	err := pass.End()
	pass.Release()
	return err
}

// Destroy releases the buffers of every entry, the camera uniform buffer,
// the bind group, the render pipeline and the shader.
func (mp *MeshPipeline) Destroy() {
	for _, e := range mp.entries {
		e.vertex.Release()
		e.index.Release()
		mp.handles.Free(e.handle)
	}
	if n := len(mp.entries); n > 0 {
		slog.Debug("pipeline.MeshPipeline Destroy: released meshes", "count", n)
	}
	mp.entries = nil
	mp.table = map[Handle]int{}
	release := func(r gpu.Releaser) {
		if r != nil {
			r.Release()
		}
	}
	release(mp.bindGroup)
	release(mp.pipeline)
	release(mp.uniform)
	release(mp.shader)
	mp.bindGroup = nil
	mp.pipeline = nil
	mp.uniform = nil
	mp.shader = nil
}
