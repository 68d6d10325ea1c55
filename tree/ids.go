// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"sync/atomic"
)

// ID is the unique identity of a node. IDs are handed out in
// increasing order by an [IDAllocator], starting at 1, so the zero
// ID is never assigned.
type ID uint64

// IDAllocator hands out node [ID]s. Construct one per process (or per test)
// and pass it to node constructors. It is safe for concurrent use.
type IDAllocator struct {
	last atomic.Uint64
}

// NewIDAllocator returns a new [IDAllocator] whose first ID is 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Next returns the next unused ID.
func (a *IDAllocator) Next() ID {
	return ID(a.last.Add(1))
}

// Last returns the most recently allocated ID, or 0 if none.
func (a *IDAllocator) Last() ID {
	return ID(a.last.Load())
}

// Handle addresses one slot of an [ObjectTree] arena. The generation
// is bumped every time the slot is released, so a handle to a released
// node never resolves to the node that later reuses its slot.
// The zero Handle is invalid.
type Handle struct {
	index uint32
	gen   uint32
}

// IsValid returns whether the handle was ever issued by a tree.
// It does not say whether the node is still live; see [ObjectTree.Contains].
func (h Handle) IsValid() bool {
	return h.gen != 0
}

// Index returns the arena slot index of the handle.
func (h Handle) Index() int {
	return int(h.index)
}

// Generation returns the generation of the handle.
func (h Handle) Generation() uint32 {
	return h.gen
}

func (h Handle) String() string {
	if !h.IsValid() {
		return "tree.Handle(nil)"
	}
	return fmt.Sprintf("tree.Handle(%d:%d)", h.index, h.gen)
}
