// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "cogentcore.org/scene3d/tree"
)

func names(tr *ObjectTree) []string {
	res := []string{}
	for _, n := range tr.All() {
		res = append(res, n.AsHeader().Name)
	}
	return res
}

func TestWalkBreadthFirst(t *testing.T) {
	tr, ids := newTree()
	child0 := newNode(tr, ids, "child0")
	child1 := newNode(tr, ids, "child1")
	sub1 := newNode(tr, ids, "subchild1")
	subsub1 := newNode(tr, ids, "subsubchild1")
	child2 := newNode(tr, ids, "child2")
	require.True(t, tr.AddChild(tr.Root(), child0))
	require.True(t, tr.AddChild(tr.Root(), child1))
	require.True(t, tr.AddChild(child1, sub1))
	require.True(t, tr.AddChild(sub1, subsub1))
	require.True(t, tr.AddChild(tr.Root(), child2))

	assert.Equal(t, []string{"root", "child0", "child1", "child2", "subchild1", "subsubchild1"}, names(tr))
	// restartable
	assert.Equal(t, names(tr), names(tr))
}

func TestWalkParentBeforeChild(t *testing.T) {
	tr, ids := newTree()
	parents := []Handle{tr.Root()}
	for i := range 20 {
		h := newNode(tr, ids, "n")
		require.True(t, tr.AddChild(parents[(i*7)%len(parents)], h))
		parents = append(parents, h)
	}
	seen := map[Handle]bool{}
	for h := range tr.All() {
		assert.False(t, seen[h], "visited twice")
		if p := tr.Parent(h); p.IsValid() {
			assert.True(t, seen[p], "child before parent")
		}
		seen[h] = true
	}
	assert.Len(t, seen, 21)
}

func TestWalkBreak(t *testing.T) {
	tr, ids := newTree()
	a := newNode(tr, ids, "a")
	b := newNode(tr, ids, "b")
	c := newNode(tr, ids, "c")
	require.True(t, tr.AddChild(tr.Root(), a))
	require.True(t, tr.AddChild(a, b))
	require.True(t, tr.AddChild(tr.Root(), c))

	res := []string{}
	tr.Walk(func(h Handle, n Node) bool {
		res = append(res, n.AsHeader().Name)
		if h == a {
			return Break
		}
		return Continue
	})
	assert.Equal(t, []string{"root", "a", "c"}, res)

	// stopping the iterator early
	res = res[:0]
	for _, n := range tr.All() {
		res = append(res, n.AsHeader().Name)
		if len(res) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"root", "a"}, res)
}

func TestSceneScenarioTraversal(t *testing.T) {
	tr, ids := newTree()
	a := newNode(tr, ids, "A")
	b := newNode(tr, ids, "B")
	c := newNode(tr, ids, "C")
	require.True(t, tr.AddChild(tr.Root(), a))
	require.True(t, tr.AddChild(a, b))
	require.True(t, tr.AddChild(tr.Root(), c))
	assert.Equal(t, []string{"root", "A", "C", "B"}, names(tr))

	require.True(t, tr.RemoveChild(tr.Root(), tr.Node(a).AsHeader().ID()))
	assert.Equal(t, []Handle{c}, tr.Children(tr.Root()))
	assert.Equal(t, []string{"root", "C"}, names(tr))
	assert.Equal(t, a, tr.Parent(b))
}

func TestWalkUp(t *testing.T) {
	tr, ids := newTree()
	a := newNode(tr, ids, "a")
	b := newNode(tr, ids, "b")
	require.True(t, tr.AddChild(tr.Root(), a))
	require.True(t, tr.AddChild(a, b))

	res := []string{}
	assert.True(t, tr.WalkUp(b, func(h Handle, n Node) bool {
		res = append(res, n.AsHeader().Name)
		return Continue
	}))
	assert.Equal(t, []string{"b", "a", "root"}, res)

	res = res[:0]
	tr.WalkUpParent(b, func(h Handle, n Node) bool {
		res = append(res, n.AsHeader().Name)
		return Continue
	})
	assert.Equal(t, []string{"a", "root"}, res)
	assert.Equal(t, []Handle{tr.Root(), a, b}, tr.Handles())
}
