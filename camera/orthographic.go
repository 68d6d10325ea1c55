// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/reflectx"
	"cogentcore.org/core/math32"
)

// Orthographic is a camera with a parallel projection. Height is the
// visible extent along the up direction in world units; the visible
// width follows from the viewport aspect ratio.
type Orthographic struct {
	Base

	// Height is the visible height in world units.
	Height float32 `default:"100"`
}

// NewOrthographic returns a new [Orthographic] camera. A zero near,
// far or height is replaced by the `default:` value of its field.
func NewOrthographic(eye, target, up math32.Vector3, near, far, height float32) *Orthographic {
	oc := &Orthographic{}
	errors.Log(reflectx.SetFromDefaultTags(oc))
	oc.set(eye, target, up, near, far)
	setNonZero(&oc.Height, height)
	return oc
}

// ProjectionMatrix returns the right-handed orthographic projection matrix,
// mapping depth to the [0, 1] clip range of WebGPU.
func (oc *Orthographic) ProjectionMatrix() *math32.Matrix4 {
	hh := 0.5 * oc.Height
	hw := oc.Aspect() * hh
	return orthographicRH(-hw, hw, -hh, hh, oc.Near, oc.Far)
}

// orthographicRH returns a right-handed orthographic projection
// matrix for the given view volume, with depth in [0, 1].
func orthographicRH(left, right, bottom, top, near, far float32) *math32.Matrix4 {
	rcpw := 1 / (right - left)
	rcph := 1 / (top - bottom)
	rcpd := 1 / (near - far)
	proj := &math32.Matrix4{}
	proj[0] = 2 * rcpw
	proj[5] = 2 * rcph
	proj[10] = rcpd
	proj[12] = -(left + right) * rcpw
	proj[13] = -(top + bottom) * rcph
	proj[14] = rcpd * near
	proj[15] = 1
	return proj
}

func (oc *Orthographic) ViewProjection() math32.Matrix4 {
	return viewProjection(oc.ProjectionMatrix(), oc.ViewMatrix())
}
