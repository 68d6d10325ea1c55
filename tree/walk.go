// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
This file provides the tree walking functions. Walking down is
breadth-first, so a parent is always visited before any of its children
and siblings are visited in insertion order. Walking up follows the
parent handles to the root.
*/

package tree

import "iter"

// Walk calls the given function on every node reachable from the root,
// breadth-first. If the function returns [Break], the children of that
// node are not visited.
func (t *ObjectTree) Walk(fun func(h Handle, n Node) bool) {
	t.WalkFrom(t.root, fun)
}

// WalkFrom calls the given function on the given node and every node
// below it, breadth-first. If the function returns [Break], the children
// of that node are not visited.
func (t *ObjectTree) WalkFrom(start Handle, fun func(h Handle, n Node) bool) {
	if !t.Contains(start) {
		return
	}
	queue := make([]Handle, 1)
	queue[0] = start
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		n := t.Node(cur)
		if n == nil {
			continue
		}
		if fun(cur, n) { // false return means don't proceed
			queue = append(queue, n.AsHeader().children...)
		}
	}
}

// All returns a breadth-first sequence of every node reachable from the
// root. Each call starts a fresh traversal.
func (t *ObjectTree) All() iter.Seq2[Handle, Node] {
	return func(yield func(Handle, Node) bool) {
		stopped := false
		t.Walk(func(h Handle, n Node) bool {
			if stopped {
				return Break
			}
			if !yield(h, n) {
				stopped = true
				return Break
			}
			return Continue
		})
	}
}

// Handles returns the handles of every node reachable from the root,
// in breadth-first order.
func (t *ObjectTree) Handles() []Handle {
	var hs []Handle
	t.Walk(func(h Handle, n Node) bool {
		hs = append(hs, h)
		return Continue
	})
	return hs
}

// WalkUp calls the given function on the given node and all of its
// parents, sequentially. It stops walking if the function returns [Break].
// It returns whether walking was finished (false if it was aborted with [Break]).
func (t *ObjectTree) WalkUp(h Handle, fun func(h Handle, n Node) bool) bool {
	cur := h
	for {
		n := t.Node(cur)
		if n == nil {
			return true
		}
		if !fun(cur, n) { // false return means stop
			return false
		}
		parent := n.AsHeader().parent
		if !parent.IsValid() || parent == cur { // prevent loops
			return true
		}
		cur = parent
	}
}

// WalkUpParent calls the given function on all of the parents of the node
// (but not the node itself). It stops walking if the function returns [Break].
// It returns whether walking was finished (false if it was aborted with [Break]).
func (t *ObjectTree) WalkUpParent(h Handle, fun func(h Handle, n Node) bool) bool {
	return t.WalkUp(t.Parent(h), fun)
}
