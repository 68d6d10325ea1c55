// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"

	"cogentcore.org/scene3d/shape"
)

// MeshStore is a [Pipeline] with a resource table of meshes,
// which a [Primitive] can upload into.
type MeshStore interface {
	Pipeline

	AddMeshData(vertices []shape.ColorVertex, indices []uint32) (Handle, error)
	RemoveMeshData(h Handle)
}

// Primitive is the GPU resource proxy of one scene node. It holds the
// mesh data waiting to be uploaded and the handle of the entry that is
// currently resident in its pipeline.
type Primitive struct {
	pending   *shape.MeshData
	handle    Handle
	hasHandle bool

	// lookup finds the pipeline that the primitive uploads into.
	lookup func(s *Storage) (MeshStore, bool)
}

// NewPrimitive returns a new primitive with the given pending data,
// which uploads into the [MeshPipeline].
func NewPrimitive(data *shape.MeshData) *Primitive {
	return NewPrimitiveFor[*MeshPipeline](data)
}

// NewPrimitiveFor returns a new primitive with the given pending data,
// which uploads into the pipeline of type T.
func NewPrimitiveFor[T MeshStore](data *shape.MeshData) *Primitive {
	return &Primitive{
		pending: data,
		lookup: func(s *Storage) (MeshStore, bool) {
			p, ok := Get[T](s)
			if !ok {
				return nil, false
			}
			return p, true
		},
	}
}

// SetData replaces the pending data, which is uploaded on the next [Primitive.Render].
func (pr *Primitive) SetData(data *shape.MeshData) {
	pr.pending = data
}

// Pending returns whether there is data waiting to be uploaded.
func (pr *Primitive) Pending() bool {
	return pr.pending != nil
}

// Handle returns the handle of the resident entry, and whether there is one.
func (pr *Primitive) Handle() (Handle, bool) {
	return pr.handle, pr.hasHandle
}

// Render uploads the pending data, if any, into the pipeline of the
// primitive. The previous entry is freed only after the new upload
// succeeds, so on error the previous entry and the pending data are kept.
// Pending data without vertices or indices frees the previous entry.
func (pr *Primitive) Render(ctx *RenderContext) error {
	if pr.pending == nil {
		return nil
	}
	p, ok := pr.lookup(ctx.Storage)
	if !ok {
		return ErrNoPipeline
	}
	if pr.pending.Empty() {
		pr.free(p)
		pr.pending = nil
		return nil
	}
	h, err := p.AddMeshData(pr.pending.Vertices, pr.pending.Indices)
	if err != nil {
		return fmt.Errorf("pipeline.Primitive Render: %w", err)
	}
	pr.free(p)
	pr.handle = h
	pr.hasHandle = true
	pr.pending = nil
	return nil
}

// Destroy frees the resident entry, if any. It must be called by the
// owner of the primitive when its node leaves the scene, since the
// GPU buffers are not released otherwise.
func (pr *Primitive) Destroy(ctx *RenderContext) {
	if !pr.hasHandle {
		return
	}
	p, ok := pr.lookup(ctx.Storage)
	if !ok {
		pr.handle = Handle{}
		pr.hasHandle = false
		return
	}
	pr.free(p)
}

func (pr *Primitive) free(p MeshStore) {
	if !pr.hasHandle {
		return
	}
	p.RemoveMeshData(pr.handle)
	pr.handle = Handle{}
	pr.hasHandle = false
}
