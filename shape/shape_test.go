// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkIndices asserts that the shape is a valid triangle list.
func checkIndices(t *testing.T, sh Shape) {
	t.Helper()
	nv := uint32(len(sh.Vertices()))
	ix := sh.Indices()
	assert.Zero(t, len(ix)%3)
	for _, i := range ix {
		assert.Less(t, i, nv)
	}
}

func TestBox(t *testing.T) {
	bx := NewBox(2, 4, 6)
	vs := bx.Vertices()
	require.Len(t, vs, 8)
	assert.Len(t, bx.Indices(), 36)
	assert.Equal(t, math32.Vec3(-1, -2, -3), vs[0].Pos)
	assert.Equal(t, math32.Vec3(1, 2, 3), vs[6].Pos)
	checkIndices(t, bx)

	// callers can not corrupt the shared index table
	ix := bx.Indices()
	ix[0] = 99
	assert.Equal(t, uint32(0), bx.Indices()[0])
}

func TestCircle(t *testing.T) {
	cr := NewCircle(math32.Vec3(1, 1, 0), 2, 8)
	vs := cr.Vertices()
	require.Len(t, vs, 10)
	assert.Len(t, cr.Indices(), 24)
	assert.Equal(t, math32.Vec3(1, 1, 0), vs[0].Pos)
	assert.InDelta(t, 3, vs[1].Pos.X, 1e-5)
	assert.InDelta(t, 1, vs[1].Pos.Y, 1e-5)
	// full sweep closes on the first rim vertex
	assert.InDelta(t, vs[1].Pos.X, vs[9].Pos.X, 1e-5)
	assert.InDelta(t, vs[1].Pos.Y, vs[9].Pos.Y, 1e-5)
	checkIndices(t, cr)

	small := NewCircle(math32.Vector3{}, 1, 1)
	assert.Len(t, small.Vertices(), 5)
}

func TestPolygon(t *testing.T) {
	pg := NewPolygon(math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0))
	assert.Empty(t, pg.Indices())
	pg.Add(math32.Vec3(1, 1, 0))
	pg.Add(math32.Vec3(0, 1, 0))
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, pg.Indices())
	checkIndices(t, pg)
}

func TestGroup(t *testing.T) {
	gp := NewGroup(NewBox(1, 1, 1), NewPolygon(math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(1, 1, 0)))
	nv, ni := gp.Size()
	assert.Equal(t, 11, nv)
	assert.Equal(t, 39, ni)
	assert.Equal(t, []uint32{8, 9, 10}, gp.Indices()[36:])
	checkIndices(t, gp)
}

func TestLineButt(t *testing.T) {
	ln := NewLine([]math32.Vector3{math32.Vec3(0, 0, 0), math32.Vec3(2, 0, 0)}, 1, CapButt, JoinBevel)
	vs := ln.Vertices()
	require.Len(t, vs, 4)
	assert.Len(t, ln.Indices(), 6)
	assert.InDelta(t, 0.5, vs[0].Pos.Y, 1e-5)
	assert.InDelta(t, -0.5, vs[1].Pos.Y, 1e-5)
	assert.InDelta(t, 2, vs[2].Pos.X, 1e-5)
	checkIndices(t, ln)
}

func TestLineSquareCap(t *testing.T) {
	ln := NewLine([]math32.Vector3{math32.Vec3(0, 0, 0), math32.Vec3(2, 0, 0)}, 1, CapSquare, JoinBevel)
	vs := ln.Vertices()
	require.Len(t, vs, 4)
	assert.InDelta(t, -0.5, vs[0].Pos.X, 1e-5)
	assert.InDelta(t, 2.5, vs[3].Pos.X, 1e-5)
}

func TestLineRoundCapsAndJoins(t *testing.T) {
	pts := []math32.Vector3{math32.Vec3(0, 0, 0), math32.Vec3(1, 1, 0), math32.Vec3(0, 2, 0)}
	ln := NewLine(pts, 0.5, CapRound, JoinRound)
	// 2 quads + 2 caps + 1 join, each disc has roundSegments+2 vertices
	assert.Len(t, ln.Vertices(), 8+3*(roundSegments+2))
	assert.Len(t, ln.Indices(), 12+3*3*roundSegments)
	checkIndices(t, ln)
}

func TestLineJoins(t *testing.T) {
	pts := []math32.Vector3{math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(1, 1, 0)}
	bevel := NewLine(pts, 0.5, CapButt, JoinBevel)
	assert.Len(t, bevel.Vertices(), 8+6)
	checkIndices(t, bevel)

	miter := NewLine(pts, 0.5, CapButt, JoinMiter)
	assert.Len(t, miter.Vertices(), 8+8)
	checkIndices(t, miter)

	// a hairpin turn exceeds the miter limit and falls back to a bevel
	hairpin := NewLine([]math32.Vector3{math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 0.01, 0)}, 0.5, CapButt, JoinMiter)
	assert.Len(t, hairpin.Vertices(), 8+6)
}

// clockwise returns the number of triangles of the shape that are
// wound clockwise in the XY plane.
func clockwise(sh Shape) int {
	vs := sh.Vertices()
	ix := sh.Indices()
	n := 0
	for i := 0; i+2 < len(ix); i += 3 {
		a, b, c := vs[ix[i]].Pos, vs[ix[i+1]].Pos, vs[ix[i+2]].Pos
		if (b.X-a.X)*(c.Y-a.Y)-(b.Y-a.Y)*(c.X-a.X) < -1e-6 {
			n++
		}
	}
	return n
}

func TestLineJoinWinding(t *testing.T) {
	turns := map[string][]math32.Vector3{
		"left":   {math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(1, 1, 0)},
		"right":  {math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(1, -1, 0)},
		"zigzag": {math32.Vec3(0, 0, 0), math32.Vec3(1, 0, 0), math32.Vec3(2, 1, 0), math32.Vec3(3, 0, 0)},
	}
	for name, pts := range turns {
		for _, jn := range []Joins{JoinBevel, JoinMiter} {
			ln := NewLine(pts, 0.5, CapButt, jn)
			checkIndices(t, ln)
			assert.Zero(t, clockwise(ln), "%s turn, join %d", name, jn)
		}
	}
}

func TestLineDegenerate(t *testing.T) {
	ln := NewLine([]math32.Vector3{math32.Vec3(0, 0, 0)}, 1, CapRound, JoinRound)
	assert.Empty(t, ln.Vertices())
	assert.Empty(t, ln.Indices())

	ln.Points = append(ln.Points, math32.Vec3(1, 0, 0))
	ln.Cap = CapButt
	ln.Update()
	assert.Len(t, ln.Vertices(), 4)
}

func TestColorize(t *testing.T) {
	red := math32.Vec4(1, 0, 0, 1)
	md := Colorize(NewBox(1, 1, 1), red)
	nv, ni := md.Size()
	assert.Equal(t, 8, nv)
	assert.Equal(t, 36, ni)
	assert.False(t, md.Empty())
	for _, v := range md.Vertices {
		assert.Equal(t, red, v.Color)
	}
	var nilData *MeshData
	assert.True(t, nilData.Empty())
	assert.True(t, Colorize(NewPolygon(), red).Empty())
}
