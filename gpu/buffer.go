// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// VertexUsage is the buffer usage of vertex buffers.
const VertexUsage = wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst

// IndexUsage is the buffer usage of index buffers.
const IndexUsage = wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst

// UniformUsage is the buffer usage of uniform buffers.
const UniformUsage = wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst

// buffer is the WebGPU [Buffer].
type buffer struct {
	buf  *wgpu.Buffer
	size uint64
}

func (b *buffer) Size() uint64 { return b.size }

func (b *buffer) Release() {
	if b.buf != nil {
		b.buf.Release()
		b.buf = nil
	}
}

// BytesOf returns the raw bytes of the given slice of fixed-size
// values, for upload to the device. The result aliases the slice.
func BytesOf[E any](src []E) []byte {
	return wgpu.ToBytes(src)
}
