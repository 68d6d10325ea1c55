// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image/color"

	"github.com/cogentcore/webgpu/wgpu"
)

// ClearRenderPass returns a pass description that clears the target
// with the given color.
func ClearRenderPass(label string, view TextureView, clr color.RGBA) *PassDesc {
	return &PassDesc{Label: label, View: view, Clear: true, ClearColor: clr}
}

// LoadRenderPass returns a pass description that loads the prior
// contents of the target.
func LoadRenderPass(label string, view TextureView) *PassDesc {
	return &PassDesc{Label: label, View: view}
}

// ClearValue returns the clear color of the pass as a [wgpu.Color].
func (pd *PassDesc) ClearValue() wgpu.Color {
	c := pd.ClearColor
	return wgpu.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// descriptor returns the WebGPU render pass descriptor for the pass
// on the given view.
func (pd *PassDesc) descriptor(view *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	att := wgpu.RenderPassColorAttachment{
		View:    view,
		LoadOp:  wgpu.LoadOpLoad,
		StoreOp: wgpu.StoreOpStore,
	}
	if pd.Clear {
		att.LoadOp = wgpu.LoadOpClear
		att.ClearValue = pd.ClearValue()
	}
	return &wgpu.RenderPassDescriptor{
		Label:            pd.Label,
		ColorAttachments: []wgpu.RenderPassColorAttachment{att},
	}
}
