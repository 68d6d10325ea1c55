// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree provides the arena-backed object tree that underlies
// a scene graph, centered on the [Node] interface and the [ObjectTree]
// that owns every node inserted into it.
//
// Nodes refer to each other only through [Handle] values, which are
// looked up in the owning [ObjectTree]. A parent link is a plain handle
// and carries no ownership: the tree owns all of its nodes, and a node
// removed from its parent stays in the arena, detached, until it is
// released with [ObjectTree.Release].
package tree

// Node is an interface that all tree nodes satisfy. The core functionality
// of a tree node is defined on [NodeHeader], and all higher-level node types
// must embed it. You can call [Node.AsHeader] to get the [NodeHeader] of a
// Node and access the core tree state.
type Node interface {

	// AsHeader returns the [NodeHeader] of this Node.
	AsHeader() *NodeHeader
}

const (
	// Continue = true can be returned from tree iteration functions to continue
	// processing down the tree, as compared to Break = false which stops this branch.
	Continue = true

	// Break = false can be returned from tree iteration functions to stop processing
	// this branch of the tree.
	Break = false
)

// As returns the node at the given handle as type T, and whether
// the handle is live and the node is of that type.
func As[T Node](t *ObjectTree, h Handle) (T, bool) {
	n := t.Node(h)
	if n == nil {
		var zero T
		return zero, false
	}
	v, ok := n.(T)
	return v, ok
}
