// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/core/math32"

// Polygon is a flat convex outline, triangulated as a fan
// from its first point.
type Polygon struct {
	Points []math32.Vector3
}

// NewPolygon returns a new [Polygon] through the given points.
func NewPolygon(points ...math32.Vector3) *Polygon {
	return &Polygon{Points: points}
}

// Add appends a point to the outline.
func (pg *Polygon) Add(p math32.Vector3) {
	pg.Points = append(pg.Points, p)
}

func (pg *Polygon) Vertices() []Vertex {
	vs := make([]Vertex, len(pg.Points))
	for i, p := range pg.Points {
		vs[i] = Vertex{Pos: p}
	}
	return vs
}

// Indices returns len(Points)-2 triangles, or none for
// fewer than 3 points.
func (pg *Polygon) Indices() []uint32 {
	n := len(pg.Points)
	if n < 3 {
		return nil
	}
	ix := make([]uint32, 0, 3*(n-2))
	for i := 1; i < n-1; i++ {
		ix = append(ix, 0, uint32(i), uint32(i+1))
	}
	return ix
}
