// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"slices"

	"cogentcore.org/core/math32"
)

// ObjectTree owns exactly one root node and every node inserted into it.
// Nodes are stored in an arena and addressed by [Handle].
// An ObjectTree is not safe for concurrent use; guard it with a lock
// as the scene does.
type ObjectTree struct {
	slots []slot
	free  []uint32
	root  Handle
	live  int
}

// New returns a new [ObjectTree] with the given node as its root.
// The root must not have a parent.
func New(root Node) *ObjectTree {
	t := &ObjectTree{}
	t.root = t.Insert(root)
	return t
}

// Root returns the handle of the root node.
func (t *ObjectTree) Root() Handle {
	return t.root
}

// Len returns the number of live nodes in the arena,
// including detached ones.
func (t *ObjectTree) Len() int {
	return t.live
}

// Node returns the node at the given handle, or nil if the
// handle is invalid or stale.
func (t *ObjectTree) Node(h Handle) Node {
	if !h.IsValid() || int(h.index) >= len(t.slots) {
		return nil
	}
	s := t.slots[h.index]
	if s.gen != h.gen {
		return nil
	}
	return s.node
}

// Nodes returns every live node in the arena, attached or detached,
// in arena order.
func (t *ObjectTree) Nodes() []Node {
	ns := make([]Node, 0, t.live)
	for _, s := range t.slots {
		if s.node != nil {
			ns = append(ns, s.node)
		}
	}
	return ns
}

// Contains returns whether the handle refers to a live node of the tree.
func (t *ObjectTree) Contains(h Handle) bool {
	return t.Node(h) != nil
}

// header returns the [NodeHeader] at the given handle, or nil.
func (t *ObjectTree) header(h Handle) *NodeHeader {
	n := t.Node(h)
	if n == nil {
		return nil
	}
	return n.AsHeader()
}

// Parent returns the handle of the parent of the given node,
// or the zero Handle if it has none.
func (t *ObjectTree) Parent(h Handle) Handle {
	nh := t.header(h)
	if nh == nil {
		return Handle{}
	}
	return nh.parent
}

// Children returns the handles of the children of the given node, in order.
func (t *ObjectTree) Children(h Handle) []Handle {
	nh := t.header(h)
	if nh == nil {
		return nil
	}
	return nh.Children()
}

// IsAttached returns whether the given node is reachable from the root.
func (t *ObjectTree) IsAttached(h Handle) bool {
	if !t.Contains(h) {
		return false
	}
	attached := false
	t.WalkUp(h, func(ah Handle, n Node) bool {
		if ah == t.root {
			attached = true
		}
		return Continue
	})
	return attached
}

// AddChild makes the child node the last child of the parent node.
// It returns false and changes nothing if either handle is stale,
// the child already has a parent, a child with the same ID is already
// among the children of the parent, or the child is the root or an
// ancestor of the parent.
func (t *ObjectTree) AddChild(parent, child Handle) bool {
	ph := t.header(parent)
	ch := t.header(child)
	if ph == nil || ch == nil {
		return false
	}
	if ch.HasParent() || child == t.root {
		return false
	}
	if ph.childIndexByID(t, ch.id) >= 0 {
		return false
	}
	cycle := false
	t.WalkUp(parent, func(ah Handle, n Node) bool {
		if ah == child {
			cycle = true
			return Break
		}
		return Continue
	})
	if cycle {
		return false
	}
	ch.parent = parent
	ph.children = append(ph.children, child)
	return true
}

// MustAddChild is like [ObjectTree.AddChild] but panics if the child
// could not be added.
func (t *ObjectTree) MustAddChild(parent, child Handle) {
	if !t.AddChild(parent, child) {
		panic(fmt.Sprintf("tree.ObjectTree MustAddChild: cannot add %v to %v", child, parent))
	}
}

// RemoveChild removes the direct child with the given ID from the parent
// node and clears its parent. Only the direct children are searched.
// The removed node and its own children stay in the arena, detached,
// until [ObjectTree.Release] is called. It returns whether a child was removed.
func (t *ObjectTree) RemoveChild(parent Handle, id ID) bool {
	ph := t.header(parent)
	if ph == nil {
		return false
	}
	idx := ph.childIndexByID(t, id)
	if idx < 0 {
		return false
	}
	ch := t.header(ph.children[idx])
	ch.parent = Handle{}
	ph.children = slices.Delete(ph.children, idx, idx+1)
	return true
}

// MarkDirty marks the given node as having changed local data, and marks
// every strict ancestor, up to and including the root, as having a dirty child.
func (t *ObjectTree) MarkDirty(h Handle) {
	nh := t.header(h)
	if nh == nil {
		return
	}
	nh.selfDirty = true
	t.WalkUpParent(h, func(ah Handle, n Node) bool {
		n.AsHeader().childDirty = true
		return Continue
	})
}

// ClearDirty clears both dirty flags of the given node.
func (t *ObjectTree) ClearDirty(h Handle) {
	nh := t.header(h)
	if nh == nil {
		return
	}
	nh.selfDirty = false
	nh.childDirty = false
}

// SetTransform sets the local transform of the given node and marks it dirty.
func (t *ObjectTree) SetTransform(h Handle, m *math32.Matrix4) {
	nh := t.header(h)
	if nh == nil {
		return
	}
	nh.Transform.CopyFrom(m)
	t.MarkDirty(h)
}
