// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"cogentcore.org/core/math32"
	m32 "github.com/chewxy/math32"
)

// Caps are the ways of finishing the two ends of a [Line].
type Caps int32

const (
	// CapButt ends the line flat at the end points.
	CapButt Caps = iota

	// CapRound ends the line with a half-width disc at each end point.
	CapRound

	// CapSquare extends the line by half its width past each end point.
	CapSquare
)

// Joins are the ways of filling the gap between two segments of a [Line].
type Joins int32

const (
	// JoinMiter extends the outer edges to a point, falling back
	// to [JoinBevel] past [MiterLimit].
	JoinMiter Joins = iota

	// JoinRound fills the joint with a half-width disc.
	JoinRound

	// JoinBevel fills the joint with a flat triangle.
	JoinBevel
)

// MiterLimit is the maximum ratio of miter length to half width.
const MiterLimit = 4

// roundSegments is the number of segments of the discs used by
// round caps and joins.
const roundSegments = 16

// Line is a polyline in the XY plane rendered as triangles
// of the given Width, with caps and joins.
type Line struct {
	Points []math32.Vector3
	Width  float32
	Cap    Caps
	Join   Joins

	mesh *Mesh
}

// NewLine returns a new [Line] through the given points.
func NewLine(points []math32.Vector3, width float32, cp Caps, jn Joins) *Line {
	return &Line{Points: points, Width: width, Cap: cp, Join: jn}
}

func (ln *Line) Vertices() []Vertex {
	return ln.build().Verts
}

func (ln *Line) Indices() []uint32 {
	return ln.build().Index
}

// Update regenerates the triangles after Points or style changed.
func (ln *Line) Update() {
	ln.mesh = nil
	ln.build()
}

// normal returns the unit normal of the segment from a to b in the XY
// plane, scaled to half the line width, and the unit direction.
func (ln *Line) normal(a, b math32.Vector3) (nx, ny, dx, dy float32) {
	th := m32.Atan2(b.Y-a.Y, b.X-a.X)
	hw := ln.Width / 2
	dx, dy = m32.Cos(th), m32.Sin(th)
	return -dy * hw, dx * hw, dx, dy
}

func (ln *Line) build() *Mesh {
	if ln.mesh != nil {
		return ln.mesh
	}
	ms := &Mesh{}
	ln.mesh = ms
	np := len(ln.Points)
	if np < 2 || ln.Width <= 0 {
		return ms
	}
	hw := ln.Width / 2
	pts := ln.Points
	for i := 1; i < np; i++ {
		a, b := pts[i-1], pts[i]
		nx, ny, dx, dy := ln.normal(a, b)
		if ln.Cap == CapSquare {
			if i == 1 {
				a.X -= dx * hw
				a.Y -= dy * hw
			}
			if i == np-1 {
				b.X += dx * hw
				b.Y += dy * hw
			}
		}
		ms.Append([]Vertex{
			V(a.X+nx, a.Y+ny, a.Z),
			V(a.X-nx, a.Y-ny, a.Z),
			V(b.X+nx, b.Y+ny, b.Z),
			V(b.X-nx, b.Y-ny, b.Z),
		}, []uint32{0, 1, 2, 2, 1, 3})
	}
	if ln.Cap == CapRound {
		ms.AppendShape(NewCircle(pts[0], hw, roundSegments))
		ms.AppendShape(NewCircle(pts[np-1], hw, roundSegments))
	}
	for i := 1; i < np-1; i++ {
		ln.join(ms, pts[i-1], pts[i], pts[i+1])
	}
	return ms
}

// join fills the joint at p between the segments a-p and p-b.
func (ln *Line) join(ms *Mesh, a, p, b math32.Vector3) {
	hw := ln.Width / 2
	if ln.Join == JoinRound {
		ms.AppendShape(NewCircle(p, hw, roundSegments))
		return
	}
	n1x, n1y, _, _ := ln.normal(a, p)
	n2x, n2y, _, _ := ln.normal(p, b)
	mx, my := n1x+n2x, n1y+n2y
	ml := m32.Sqrt(mx*mx + my*my)
	miter := ln.Join == JoinMiter && ml > 1e-6
	var mlen float32
	if miter {
		mx, my = mx/ml, my/ml
		cos := (mx*n1x + my*n1y) / hw
		if cos <= 1e-6 || 1/cos > MiterLimit {
			miter = false
		} else {
			mlen = hw / cos
		}
	}
	// triangles must be counter-clockwise to survive back-face culling
	right := n1x*n2y-n1y*n2x < 0
	for _, s := range []float32{1, -1} {
		c1 := V(p.X+s*n1x, p.Y+s*n1y, p.Z)
		c2 := V(p.X+s*n2x, p.Y+s*n2y, p.Z)
		if right {
			c1, c2 = c2, c1
		}
		if miter {
			tip := V(p.X+s*mx*mlen, p.Y+s*my*mlen, p.Z)
			ms.Append([]Vertex{{Pos: p}, c1, tip, c2}, []uint32{0, 1, 2, 0, 2, 3})
		} else {
			ms.Append([]Vertex{{Pos: p}, c1, c2}, []uint32{0, 1, 2})
		}
	}
}
