// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package material provides the plain style records that color
// scene geometry. Materials are consumed when a node builds its
// vertex data; the renderer does not keep them.
package material

import (
	"image/color"

	"cogentcore.org/core/math32"
	"cogentcore.org/scene3d/shape"
)

// LinearColor converts the given sRGB color to a linear RGBA vector
// for uploading to the GPU.
func LinearColor(clr color.Color) math32.Vector4 {
	return math32.NewVector4Color(clr).SRGBToLinear()
}

// Basic is a flat, unlit surface color for meshes.
type Basic struct {

	// Color is the surface color. Alpha is passed through to the
	// vertex data, but meshes are drawn without blending.
	Color color.RGBA
}

// NewBasic returns a new [Basic] material with the given color.
func NewBasic(clr color.Color) *Basic {
	return &Basic{Color: color.RGBAModel.Convert(clr).(color.RGBA)}
}

// Vector returns the linear color of the material.
func (m *Basic) Vector() math32.Vector4 {
	return LinearColor(m.Color)
}

// Line is the material of a thick line.
type Line struct {
	Color color.RGBA

	// Width is the line width in world units.
	Width float32 `default:"1"`

	// Cap is how the two ends of the line are finished.
	Cap shape.Caps

	// Join is how adjacent segments are connected.
	Join shape.Joins

	// Alpha is the opacity multiplier, from 0 (transparent) to 1 (opaque).
	Alpha float32 `default:"1"`
}

// NewLine returns a new [Line] material with the given color,
// a width of 1, round caps and joins, and full opacity.
func NewLine(clr color.Color) *Line {
	return &Line{
		Color: color.RGBAModel.Convert(clr).(color.RGBA),
		Width: 1,
		Cap:   shape.CapRound,
		Join:  shape.JoinRound,
		Alpha: 1,
	}
}

// SetWidth sets the [Line.Width].
func (m *Line) SetWidth(w float32) *Line {
	m.Width = w
	return m
}

// SetCap sets the [Line.Cap].
func (m *Line) SetCap(cp shape.Caps) *Line {
	m.Cap = cp
	return m
}

// SetJoin sets the [Line.Join].
func (m *Line) SetJoin(jn shape.Joins) *Line {
	m.Join = jn
	return m
}

// Vector returns the linear color of the material with Alpha applied.
func (m *Line) Vector() math32.Vector4 {
	v := LinearColor(m.Color)
	v.W *= math32.Clamp(m.Alpha, 0, 1)
	return v
}
