// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/scene3d/material"
	"cogentcore.org/scene3d/pipeline"
	"cogentcore.org/scene3d/shape"
	"cogentcore.org/scene3d/tree"
)

// Renderable is a node that owns GPU geometry through a [pipeline.Primitive].
type Renderable interface {
	tree.Node

	// Primitive returns the primitive of the node.
	Primitive() *pipeline.Primitive
}

// Group is a node that only groups its children.
type Group struct {
	tree.NodeHeader
}

// NewGroup returns a new group with an ID from the allocator.
func NewGroup(ids *tree.IDAllocator) *Group {
	gp := &Group{}
	gp.Init(ids)
	return gp
}

// Mesh is a node that renders a [shape.Shape] in the uniform
// color of a [material.Basic].
type Mesh struct {
	tree.NodeHeader

	// Shape is the geometry of the mesh. Use [Mesh.SetShape] to change it.
	Shape shape.Shape

	// Material is the material of the mesh. Use [Mesh.SetMaterial] to change it.
	Material material.Basic

	primitive *pipeline.Primitive
}

// NewMesh returns a new mesh of the shape and material, with its
// geometry pending upload.
func NewMesh(ids *tree.IDAllocator, sh shape.Shape, mat *material.Basic) *Mesh {
	ms := &Mesh{Shape: sh, Material: *mat}
	ms.Init(ids)
	ms.primitive = pipeline.NewPrimitive(ms.meshData())
	return ms
}

func (ms *Mesh) Primitive() *pipeline.Primitive {
	return ms.primitive
}

func (ms *Mesh) meshData() *shape.MeshData {
	return shape.Colorize(ms.Shape, ms.Material.Vector())
}

// SetShape sets the geometry of the mesh, which is uploaded again
// on the next frame. Call [Scene.MarkDirty] once the mesh is in a scene.
func (ms *Mesh) SetShape(sh shape.Shape) {
	ms.Shape = sh
	ms.primitive.SetData(ms.meshData())
}

// SetMaterial sets the material of the mesh, which is baked into
// the vertex colors and uploaded again on the next frame.
func (ms *Mesh) SetMaterial(mat *material.Basic) {
	ms.Material = *mat
	ms.primitive.SetData(ms.meshData())
}

// Line is a node that renders a thick polyline with the width,
// caps and joins of a [material.Line].
type Line struct {
	tree.NodeHeader

	// Points are the points of the line. Use [Line.SetPoints] to change them.
	Points []math32.Vector3

	// Material is the style of the line.
	Material material.Line

	primitive *pipeline.Primitive
}

// NewLine returns a new line through the points, with its
// geometry pending upload.
func NewLine(ids *tree.IDAllocator, points []math32.Vector3, mat *material.Line) *Line {
	ln := &Line{Points: points, Material: *mat}
	ln.Init(ids)
	ln.primitive = pipeline.NewPrimitive(ln.meshData())
	return ln
}

func (ln *Line) Primitive() *pipeline.Primitive {
	return ln.primitive
}

func (ln *Line) meshData() *shape.MeshData {
	m := &ln.Material
	sh := shape.NewLine(ln.Points, m.Width, m.Cap, m.Join)
	return shape.Colorize(sh, m.Vector())
}

// SetPoints sets the points of the line, which is tessellated and
// uploaded again on the next frame.
func (ln *Line) SetPoints(points []math32.Vector3) {
	ln.Points = points
	ln.primitive.SetData(ln.meshData())
}

// SetMaterial sets the style of the line.
func (ln *Line) SetMaterial(mat *material.Line) {
	ln.Material = *mat
	ln.primitive.SetData(ln.meshData())
}
