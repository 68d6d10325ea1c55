// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/core/math32"

// Vertex is a plain position vertex, as produced by the shape generators.
type Vertex struct {
	Pos math32.Vector3
}

// V returns a [Vertex] at the given coordinates.
func V(x, y, z float32) Vertex {
	return Vertex{Pos: math32.Vec3(x, y, z)}
}

// ColorVertex is a vertex with a per-vertex RGBA color, which is the
// layout consumed by the mesh pipeline: position at shader location 0
// (float32x3) and color at location 1 (float32x4), 28 bytes per vertex.
type ColorVertex struct {
	Pos   math32.Vector3
	Color math32.Vector4
}

// TexVertex is a vertex with texture coordinates.
type TexVertex struct {
	Pos math32.Vector3
	UV  math32.Vector2
}

// MeshData is CPU-side vertex and index data ready for upload.
type MeshData struct {
	Vertices []ColorVertex
	Indices  []uint32
}

// Empty returns whether there is nothing to draw.
func (md *MeshData) Empty() bool {
	return md == nil || len(md.Vertices) == 0 || len(md.Indices) == 0
}

// Size returns the number of vertices and indices.
func (md *MeshData) Size() (numVertex, numIndex int) {
	if md == nil {
		return 0, 0
	}
	return len(md.Vertices), len(md.Indices)
}
