// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camera provides the cameras that a renderer uses to compute
// the view-projection matrix uploaded to draw pipelines every frame.
package camera

import (
	"image"

	"cogentcore.org/core/math32"
)

// Camera is the interface for all cameras.
type Camera interface {

	// ViewProjection returns the combined projection * view matrix,
	// computed fresh from the current camera state.
	ViewProjection() math32.Matrix4

	// SetViewport sets the size of the render target in pixels,
	// which determines the aspect ratio.
	SetViewport(size image.Point)
}

// Uniform is the camera data layout uploaded to the shader:
// one mat4x4<f32> view-projection matrix.
type Uniform struct {
	ViewProjection math32.Matrix4
}

// NewUniform returns the [Uniform] for the given camera.
func NewUniform(cam Camera) Uniform {
	return Uniform{ViewProjection: cam.ViewProjection()}
}

// Base has the state shared by all cameras: placement and depth range.
type Base struct {

	// Eye is the position of the camera.
	Eye math32.Vector3

	// Target is the point the camera looks at.
	Target math32.Vector3

	// Up is the up direction of the camera.
	Up math32.Vector3

	// Near is the distance of the near clipping plane.
	Near float32 `default:"0.1"`

	// Far is the distance of the far clipping plane.
	Far float32 `default:"1000"`

	// Viewport is the size of the render target in pixels.
	Viewport image.Point
}

// SetViewport implements [Camera].
func (cb *Base) SetViewport(size image.Point) {
	cb.Viewport = size
}

// Aspect returns the width / height aspect ratio of the viewport,
// or 1 if the viewport has no area.
func (cb *Base) Aspect() float32 {
	if cb.Viewport.X <= 0 || cb.Viewport.Y <= 0 {
		return 1
	}
	return float32(cb.Viewport.X) / float32(cb.Viewport.Y)
}

// LookAt sets the camera placement.
func (cb *Base) LookAt(eye, target, up math32.Vector3) {
	cb.Eye = eye
	cb.Target = target
	cb.Up = up
}

// set sets the placement and the non-zero clipping distances.
func (cb *Base) set(eye, target, up math32.Vector3, near, far float32) {
	cb.LookAt(eye, target, up)
	setNonZero(&cb.Near, near)
	setNonZero(&cb.Far, far)
}

func setNonZero(dst *float32, v float32) {
	if v != 0 {
		*dst = v
	}
}

// ViewMatrix returns the camera view matrix.
func (cb *Base) ViewMatrix() *math32.Matrix4 {
	return ViewMat(cb.Eye, cb.Target, cb.Up)
}

// ViewMat returns the camera view matrix, based position
// of camera facing at target position, with given up vector.
func ViewMat(pos, target, up math32.Vector3) *math32.Matrix4 {
	var lookq math32.Quat
	lookq.SetFromRotationMatrix(math32.NewLookAt(pos, target, up))
	scale := math32.Vec3(1, 1, 1)
	var cview math32.Matrix4
	cview.SetTransform(pos, lookq, scale)
	view, _ := cview.Inverse()
	return view
}

// viewProjection multiplies the projection by the view matrix.
func viewProjection(proj, view *math32.Matrix4) math32.Matrix4 {
	var vp math32.Matrix4
	vp.MulMatrices(proj, view)
	return vp
}
