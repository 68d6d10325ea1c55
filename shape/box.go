// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

// Box is an axis-aligned box centered on the origin,
// with 8 shared corner vertices and 12 triangles.
type Box struct {

	// size along X
	Width float32

	// size along Y
	Height float32

	// size along Z
	Depth float32
}

// NewBox returns a new [Box] of the given size.
func NewBox(width, height, depth float32) *Box {
	return &Box{Width: width, Height: height, Depth: depth}
}

// boxIndex lists the two triangles of each face, in the order:
// back, right, front, left, top, bottom.
var boxIndex = []uint32{
	0, 1, 2, 2, 3, 0,
	1, 5, 6, 6, 2, 1,
	5, 4, 7, 7, 6, 5,
	4, 0, 3, 3, 7, 4,
	3, 2, 6, 6, 7, 3,
	4, 5, 1, 1, 0, 4,
}

func (bx *Box) Vertices() []Vertex {
	x, y, z := bx.Width/2, bx.Height/2, bx.Depth/2
	return []Vertex{
		V(-x, -y, -z),
		V(x, -y, -z),
		V(x, y, -z),
		V(-x, y, -z),
		V(-x, -y, z),
		V(x, -y, z),
		V(x, y, z),
		V(-x, y, z),
	}
}

func (bx *Box) Indices() []uint32 {
	return append([]uint32(nil), boxIndex...)
}
