// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import "fmt"

// Handle identifies one entry in the resource table of a pipeline.
// The zero Handle is invalid.
type Handle struct {
	index uint32
	gen   uint32
}

// IsValid returns whether the handle was issued by a [HandleAllocator].
func (h Handle) IsValid() bool {
	return h.gen != 0
}

func (h Handle) String() string {
	return fmt.Sprintf("%d.%d", h.index, h.gen)
}

// HandleAllocator issues [Handle] values as generational indexes.
// A freed index is reused with a bumped generation, so a live handle
// is never issued twice and stale handles are detected.
type HandleAllocator struct {
	gens []uint32
	live []bool
	free []uint32
}

// Alloc returns a new live handle.
func (ha *HandleAllocator) Alloc() Handle {
	if nf := len(ha.free); nf > 0 {
		idx := ha.free[nf-1]
		ha.free = ha.free[:nf-1]
		ha.live[idx] = true
		return Handle{index: idx, gen: ha.gens[idx]}
	}
	ha.gens = append(ha.gens, 1)
	ha.live = append(ha.live, true)
	return Handle{index: uint32(len(ha.gens) - 1), gen: 1}
}

// IsLive returns whether the handle is currently allocated.
func (ha *HandleAllocator) IsLive(h Handle) bool {
	if !h.IsValid() || int(h.index) >= len(ha.gens) {
		return false
	}
	return ha.live[h.index] && ha.gens[h.index] == h.gen
}

// Free releases the handle. Freeing a handle that is not live
// is a programming error and panics.
func (ha *HandleAllocator) Free(h Handle) {
	if !ha.IsLive(h) {
		panic(fmt.Sprintf("pipeline.HandleAllocator Free: handle %v is not live", h))
	}
	ha.live[h.index] = false
	ha.gens[h.index]++
	if ha.gens[h.index] == 0 {
		ha.gens[h.index] = 1
	}
	ha.free = append(ha.free, h.index)
}

// Len returns the number of live handles.
func (ha *HandleAllocator) Len() int {
	return len(ha.gens) - len(ha.free)
}
