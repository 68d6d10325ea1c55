// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"log/slog"
)

// admin.go has the arena bookkeeping of [ObjectTree].

// slot is one arena entry. A nil node means the slot is free.
type slot struct {
	gen  uint32
	node Node
}

// Insert places the given node into the arena of the tree, detached
// (without a parent), and returns its handle. Inserting a node that
// is already in the tree returns its existing handle.
func (t *ObjectTree) Insert(n Node) Handle {
	nh := n.AsHeader()
	if t.Node(nh.handle) == n {
		return nh.handle
	}
	var h Handle
	if nf := len(t.free); nf > 0 {
		idx := t.free[nf-1]
		t.free = t.free[:nf-1]
		s := &t.slots[idx]
		s.node = n
		h = Handle{index: idx, gen: s.gen}
	} else {
		t.slots = append(t.slots, slot{gen: 1, node: n})
		h = Handle{index: uint32(len(t.slots) - 1), gen: 1}
	}
	nh.handle = h
	nh.parent = Handle{}
	t.live++
	return h
}

// Release frees the arena slots of the detached subtree rooted at the
// given handle, invalidating every handle into it, and returns the
// released nodes in breadth-first order so that their owners can release
// any external resources they hold. The root, nodes that still have
// a parent, and stale handles are not released, and nil is returned.
func (t *ObjectTree) Release(h Handle) []Node {
	n := t.Node(h)
	if n == nil {
		return nil
	}
	if h == t.root || n.AsHeader().HasParent() {
		slog.Error("tree.ObjectTree Release: node is still attached", "handle", h, "id", n.AsHeader().id)
		return nil
	}
	var released []Node
	t.WalkFrom(h, func(ch Handle, cn Node) bool {
		released = append(released, cn)
		return Continue
	})
	for _, rn := range released {
		t.freeSlot(rn.AsHeader())
	}
	return released
}

// freeSlot returns the slot of the given node to the free list.
func (t *ObjectTree) freeSlot(nh *NodeHeader) {
	s := &t.slots[nh.handle.index]
	s.node = nil
	s.gen++
	if s.gen == 0 { // skip the invalid generation on wraparound
		s.gen = 1
	}
	t.free = append(t.free, nh.handle.index)
	nh.handle = Handle{}
	nh.parent = Handle{}
	nh.children = nil
	t.live--
}
