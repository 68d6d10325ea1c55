// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"cogentcore.org/core/math32"
	m32 "github.com/chewxy/math32"
)

// Circle is a flat disc or sector in the XY plane around Center,
// triangulated as a fan from a center vertex.
type Circle struct {
	Center math32.Vector3

	Radius float32

	// number of segments along the rim; at least 3
	Segments int

	// start angle in radians
	ThetaStart float32

	// sweep angle in radians; 2*Pi for a full circle
	ThetaLength float32
}

// NewCircle returns a new full [Circle].
func NewCircle(center math32.Vector3, radius float32, segments int) *Circle {
	return &Circle{Center: center, Radius: radius, Segments: segments, ThetaLength: 2 * m32.Pi}
}

func (cr *Circle) segments() int {
	return max(cr.Segments, 3)
}

// Vertices returns the center vertex followed by Segments+1 rim vertices.
func (cr *Circle) Vertices() []Vertex {
	ns := cr.segments()
	vs := make([]Vertex, 0, ns+2)
	vs = append(vs, Vertex{Pos: cr.Center})
	for s := 0; s <= ns; s++ {
		th := cr.ThetaStart + float32(s)/float32(ns)*cr.ThetaLength
		vs = append(vs, V(cr.Center.X+cr.Radius*m32.Cos(th), cr.Center.Y+cr.Radius*m32.Sin(th), cr.Center.Z))
	}
	return vs
}

// Indices returns one triangle per segment.
func (cr *Circle) Indices() []uint32 {
	ns := cr.segments()
	ix := make([]uint32, 0, 3*ns)
	for i := 1; i <= ns; i++ {
		ix = append(ix, uint32(i), uint32(i+1), 0)
	}
	return ix
}
