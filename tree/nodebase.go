// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"slices"

	"cogentcore.org/core/math32"
)

// NodeHeader implements the state shared by every [Node]: identity,
// local transform, dirty flags, and the parent / children relations.
// All node types must embed it and call [NodeHeader.Init] from their
// constructor. NodeHeader itself is a valid [Node], which is useful for
// plain grouping nodes and tests.
type NodeHeader struct {

	// Name is an optional user-supplied label, used only for diagnostics.
	Name string

	// Transform is the local transform of the node relative to its parent.
	// Use [ObjectTree.SetTransform] to change it so that the node is marked dirty.
	Transform math32.Matrix4

	// id is the unique ID of the node.
	id ID

	// selfDirty is whether the local data of this node changed and has
	// not yet been synchronized.
	selfDirty bool

	// childDirty is whether some descendant of this node is dirty.
	childDirty bool

	// parent is the handle of the parent node, or the zero Handle.
	parent Handle

	// children are the handles of the child nodes, in insertion order.
	children []Handle

	// handle is the handle of this node in the tree that owns it,
	// or the zero Handle if it has not been inserted.
	handle Handle
}

// NewHeader returns a new initialized [NodeHeader] with an ID from the given allocator.
func NewHeader(ids *IDAllocator) *NodeHeader {
	h := &NodeHeader{}
	h.Init(ids)
	return h
}

// Init assigns a fresh ID from the given allocator and resets
// the transform to the identity matrix.
func (h *NodeHeader) Init(ids *IDAllocator) {
	h.id = ids.Next()
	h.Transform.SetIdentity()
}

// AsHeader satisfies the [Node] interface.
func (h *NodeHeader) AsHeader() *NodeHeader {
	return h
}

// ID returns the unique ID of the node.
func (h *NodeHeader) ID() ID {
	return h.id
}

// Handle returns the handle of the node in its owning tree,
// or the zero Handle if it has not been inserted.
func (h *NodeHeader) Handle() Handle {
	return h.handle
}

// Parent returns the handle of the parent node, or the zero Handle.
func (h *NodeHeader) Parent() Handle {
	return h.parent
}

// HasParent returns whether the node is currently a child of another node.
func (h *NodeHeader) HasParent() bool {
	return h.parent.IsValid()
}

// Children returns a copy of the handles of the child nodes, in order.
func (h *NodeHeader) Children() []Handle {
	return slices.Clone(h.children)
}

// NumChildren returns the number of children.
func (h *NodeHeader) NumChildren() int {
	return len(h.children)
}

// HasChildren returns whether the node has any children.
func (h *NodeHeader) HasChildren() bool {
	return len(h.children) > 0
}

// IsDirty returns whether the local data of the node changed
// and has not yet been synchronized.
func (h *NodeHeader) IsDirty() bool {
	return h.selfDirty
}

// HasChildDirty returns whether some descendant of the node is dirty.
func (h *NodeHeader) HasChildDirty() bool {
	return h.childDirty
}

// childIndexByID returns the index of the child with the given ID
// in the children list, using the given tree to resolve handles.
func (h *NodeHeader) childIndexByID(t *ObjectTree, id ID) int {
	for i, ch := range h.children {
		if n := t.Node(ch); n != nil && n.AsHeader().id == id {
			return i
		}
	}
	return -1
}
