// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"log/slog"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/scene3d/pipeline"
	"cogentcore.org/scene3d/tree"
)

// Sync walks the scene breadth-first from the root and renders the
// primitive of every [Renderable] node, which uploads any pending
// geometry into its pipeline. The dirty flags of the nodes are cleared,
// except on the nodes whose primitive failed and their ancestors.
// All errors are returned together once the walk is done.
func (sc *Scene) Sync(ctx *pipeline.RenderContext) error {
	var errs []error
	var failed []tree.Handle
	sc.Tree.Walk(func(h tree.Handle, n tree.Node) bool {
		if rn, ok := n.(Renderable); ok {
			if err := rn.Primitive().Render(ctx); err != nil {
				errs = append(errs, err)
				failed = append(failed, h)
			}
		}
		sc.Tree.ClearDirty(h)
		return tree.Continue
	})
	for _, h := range failed {
		sc.Tree.MarkDirty(h)
	}
	return errors.Join(errs...)
}

// DestroyDetached releases the detached subtree at the handle from the
// scene and destroys the primitives of its nodes, freeing their GPU
// buffers. It returns the number of nodes released, which is zero if
// the node is still attached.
func (sc *Scene) DestroyDetached(ctx *pipeline.RenderContext, h tree.Handle) int {
	released := sc.Tree.Release(h)
	for _, n := range released {
		if rn, ok := n.(Renderable); ok {
			rn.Primitive().Destroy(ctx)
		}
	}
	return len(released)
}

// ReleaseDetached calls [Scene.DestroyDetached] on every subtree
// removed from the scene since the last call, and returns the number of
// nodes released. Subtrees that have been added back are kept.
func (sc *Scene) ReleaseDetached(ctx *pipeline.RenderContext) int {
	n := 0
	for _, h := range sc.detached {
		nd := sc.Tree.Node(h)
		if nd == nil || nd.AsHeader().HasParent() {
			continue
		}
		n += sc.DestroyDetached(ctx, h)
	}
	sc.detached = sc.detached[:0]
	return n
}

// DestroyAll destroys the primitives of every node in the scene,
// attached or not. The nodes stay in the scene, with their geometry
// no longer resident.
func (sc *Scene) DestroyAll(ctx *pipeline.RenderContext) {
	n := 0
	for _, nd := range sc.Tree.Nodes() {
		if rn, ok := nd.(Renderable); ok {
			rn.Primitive().Destroy(ctx)
			n++
		}
	}
	slog.Debug("scene.Scene DestroyAll", "primitives", n)
}
