// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/reflectx"
	"cogentcore.org/core/math32"
)

// Perspective is a camera with a perspective projection.
type Perspective struct {
	Base

	// FOV is the vertical field of view in degrees.
	FOV float32 `default:"45"`
}

// NewPerspective returns a new [Perspective] camera. A zero fov,
// near or far is replaced by the `default:` value of its field.
func NewPerspective(eye, target, up math32.Vector3, fov, near, far float32) *Perspective {
	pc := &Perspective{}
	errors.Log(reflectx.SetFromDefaultTags(pc))
	pc.set(eye, target, up, near, far)
	setNonZero(&pc.FOV, fov)
	return pc
}

// ProjectionMatrix returns the right-handed perspective projection matrix,
// mapping depth to the [0, 1] clip range of WebGPU.
func (pc *Perspective) ProjectionMatrix() *math32.Matrix4 {
	f := 1 / math32.Tan(0.5*math32.DegToRad(pc.FOV))
	r := pc.Far / (pc.Near - pc.Far)
	proj := &math32.Matrix4{}
	proj[0] = f / pc.Aspect()
	proj[5] = f
	proj[10] = r
	proj[11] = -1
	proj[14] = r * pc.Near
	return proj
}

func (pc *Perspective) ViewProjection() math32.Matrix4 {
	return viewProjection(pc.ProjectionMatrix(), pc.ViewMatrix())
}
