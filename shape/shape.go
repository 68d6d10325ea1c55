// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape provides procedural geometry generators that
// produce indexed triangle meshes: boxes, circles, convex outlines,
// and thick lines with caps and joins.
package shape

import "cogentcore.org/core/math32"

// Shape is the interface for all geometry generators.
type Shape interface {

	// Vertices returns the vertex positions.
	Vertices() []Vertex

	// Indices returns the triangle-list indices into Vertices.
	Indices() []uint32
}

// Mesh is a [Shape] holding explicit vertex and index data.
type Mesh struct {
	Verts []Vertex
	Index []uint32
}

func (ms *Mesh) Vertices() []Vertex { return ms.Verts }
func (ms *Mesh) Indices() []uint32  { return ms.Index }

// Append adds the given vertices and indices, offsetting the
// indices by the current number of vertices.
func (ms *Mesh) Append(verts []Vertex, index []uint32) {
	off := uint32(len(ms.Verts))
	for _, ix := range index {
		ms.Index = append(ms.Index, ix+off)
	}
	ms.Verts = append(ms.Verts, verts...)
}

// AppendShape adds the vertices and indices of the given shape.
func (ms *Mesh) AppendShape(sh Shape) {
	ms.Append(sh.Vertices(), sh.Indices())
}

// Colorize returns the [MeshData] for the given shape, with every
// vertex assigned the given color.
func Colorize(sh Shape, clr math32.Vector4) *MeshData {
	vs := sh.Vertices()
	md := &MeshData{
		Vertices: make([]ColorVertex, len(vs)),
		Indices:  append([]uint32(nil), sh.Indices()...),
	}
	for i, v := range vs {
		md.Vertices[i] = ColorVertex{Pos: v.Pos, Color: clr}
	}
	return md
}
