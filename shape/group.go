// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

// Group is a group of shapes that is itself a [Shape],
// with the indices of each member offset past the vertices
// of the members before it.
type Group struct {

	// list of shapes in group
	Shapes []Shape
}

// NewGroup returns a new [Group] of the given shapes.
func NewGroup(shapes ...Shape) *Group {
	return &Group{Shapes: shapes}
}

// Size returns number of vertex, index points in this group.
func (gp *Group) Size() (numVertex, numIndex int) {
	for _, sh := range gp.Shapes {
		numVertex += len(sh.Vertices())
		numIndex += len(sh.Indices())
	}
	return
}

func (gp *Group) Vertices() []Vertex {
	nv, _ := gp.Size()
	vs := make([]Vertex, 0, nv)
	for _, sh := range gp.Shapes {
		vs = append(vs, sh.Vertices()...)
	}
	return vs
}

func (gp *Group) Indices() []uint32 {
	_, ni := gp.Size()
	ix := make([]uint32, 0, ni)
	off := uint32(0)
	for _, sh := range gp.Shapes {
		for _, i := range sh.Indices() {
			ix = append(ix, i+off)
		}
		off += uint32(len(sh.Vertices()))
	}
	return ix
}
