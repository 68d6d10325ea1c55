// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene provides the retained-mode 3D [Scene]: an object tree
// of [Group], [Mesh] and [Line] nodes plus a background color, which a
// renderer synchronizes to the GPU and draws once per frame.
package scene

import (
	"image/color"
	"sync"

	"cogentcore.org/core/colors"
	"cogentcore.org/scene3d/tree"
)

// Scene is the unit handed to the renderer each frame. It owns one
// [tree.ObjectTree] rooted at a [Group], and the background color.
//
// The embedded RWMutex guards the whole scene: code that modifies
// the scene while it may be rendered must hold the write lock, for
// example through [Scene.Update], and the renderer holds the write
// lock for a whole frame, since synchronizing mutates the nodes.
// The methods of Scene do not lock.
type Scene struct {
	sync.RWMutex

	// Tree holds every node of the scene.
	Tree *tree.ObjectTree

	// background is the color the target is cleared to each frame.
	background color.RGBA

	ids *tree.IDAllocator

	// detached are the subtrees removed since the last [Scene.ReleaseDetached].
	detached []tree.Handle
}

// New returns a new empty scene with a white background, whose root
// group takes its ID from the given allocator.
func New(ids *tree.IDAllocator) *Scene {
	root := NewGroup(ids)
	root.Name = "root"
	return &Scene{
		Tree:       tree.New(root),
		background: colors.White,
		ids:        ids,
	}
}

// IDs returns the ID allocator of the scene.
func (sc *Scene) IDs() *tree.IDAllocator {
	return sc.ids
}

// Root returns the handle of the root group.
func (sc *Scene) Root() tree.Handle {
	return sc.Tree.Root()
}

// Update calls the function while holding the write lock.
func (sc *Scene) Update(fun func(sc *Scene)) {
	sc.Lock()
	defer sc.Unlock()
	fun(sc)
}

// SetBackground sets the background color.
func (sc *Scene) SetBackground(c color.Color) {
	sc.background = colors.AsRGBA(c)
}

// Background returns the background color.
func (sc *Scene) Background() color.RGBA {
	return sc.background
}

// Add inserts the node into the scene as the last child of the root,
// and returns its handle. See [Scene.AddTo].
func (sc *Scene) Add(n tree.Node) tree.Handle {
	h, _ := sc.AddTo(sc.Tree.Root(), n)
	return h
}

// AddTo inserts the node into the scene as the last child of the parent
// and marks it dirty. It returns the handle of the node, and false if it
// could not be attached, in which case the node stays in the scene,
// detached, under the returned handle.
func (sc *Scene) AddTo(parent tree.Handle, n tree.Node) (tree.Handle, bool) {
	h := sc.Tree.Insert(n)
	if !sc.Tree.AddChild(parent, h) {
		return h, false
	}
	sc.Tree.MarkDirty(h)
	return h, true
}

// Remove detaches the direct child of the root with the given ID and
// returns its handle. See [Scene.RemoveFrom].
func (sc *Scene) Remove(id tree.ID) (tree.Handle, bool) {
	return sc.RemoveFrom(sc.Tree.Root(), id)
}

// RemoveFrom detaches the direct child of the parent with the given ID,
// and returns its handle, and whether it was found. The removed node
// keeps its own children and its GPU resources until the next
// [Scene.ReleaseDetached], which the renderer calls every frame,
// unless it has been added back to the scene by then.
func (sc *Scene) RemoveFrom(parent tree.Handle, id tree.ID) (tree.Handle, bool) {
	var child tree.Handle
	for _, ch := range sc.Tree.Children(parent) {
		if n := sc.Tree.Node(ch); n != nil && n.AsHeader().ID() == id {
			child = ch
			break
		}
	}
	if !sc.Tree.RemoveChild(parent, id) {
		return tree.Handle{}, false
	}
	sc.Tree.MarkDirty(parent)
	sc.detached = append(sc.detached, child)
	return child, true
}

// MarkDirty marks the node as changed, for example after
// setting new geometry on a [Mesh].
func (sc *Scene) MarkDirty(h tree.Handle) {
	sc.Tree.MarkDirty(h)
}
