// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"errors"
	"image/color"
	"sync"
	"testing"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/scene3d/gpu"
	"cogentcore.org/scene3d/gpu/gputest"
	"cogentcore.org/scene3d/material"
	"cogentcore.org/scene3d/pipeline"
	"cogentcore.org/scene3d/shape"
	"cogentcore.org/scene3d/tree"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T) (*pipeline.RenderContext, *pipeline.MeshPipeline, *gputest.Device) {
	dev := gputest.NewDevice()
	mp, err := pipeline.NewMeshPipeline(dev, wgpu.TextureFormatBGRA8Unorm)
	require.NoError(t, err)
	st := pipeline.NewStorage()
	pipeline.Store(st, mp)
	return &pipeline.RenderContext{Storage: st}, mp, dev
}

func names(sc *Scene) []string {
	var res []string
	for _, n := range sc.Tree.All() {
		res = append(res, n.AsHeader().Name)
	}
	return res
}

func redBox(ids *tree.IDAllocator) *Mesh {
	return NewMesh(ids, shape.NewBox(1, 1, 1), material.NewBasic(colors.Red))
}

func TestNewScene(t *testing.T) {
	sc := New(tree.NewIDAllocator())
	assert.Equal(t, colors.White, sc.Background())
	assert.Equal(t, []string{"root"}, names(sc))
	sc.SetBackground(color.RGBA{25, 51, 76, 255})
	assert.Equal(t, color.RGBA{25, 51, 76, 255}, sc.Background())
}

func TestSceneScenario(t *testing.T) {
	ids := tree.NewIDAllocator()
	sc := New(ids)
	a := NewGroup(ids)
	a.Name = "A"
	b := redBox(ids)
	b.Name = "B"
	c := redBox(ids)
	c.Name = "C"

	ah := sc.Add(a)
	bh, ok := sc.AddTo(ah, b)
	require.True(t, ok)
	sc.Add(c)
	assert.Equal(t, []string{"root", "A", "C", "B"}, names(sc))

	rh, ok := sc.Remove(a.ID())
	require.True(t, ok)
	assert.Equal(t, ah, rh)
	assert.Equal(t, []string{"root", "C"}, names(sc))
	assert.Equal(t, ah, sc.Tree.Parent(bh))

	_, ok = sc.Remove(a.ID())
	assert.False(t, ok)
}

func TestAddMarksDirty(t *testing.T) {
	ids := tree.NewIDAllocator()
	sc := New(ids)
	a := NewGroup(ids)
	ah := sc.Add(a)
	b := redBox(ids)
	_, ok := sc.AddTo(ah, b)
	require.True(t, ok)
	assert.True(t, b.IsDirty())
	assert.True(t, a.HasChildDirty())
	root := sc.Tree.Node(sc.Root()).AsHeader()
	assert.True(t, root.HasChildDirty())

	// a node cannot be added twice
	_, ok = sc.AddTo(sc.Root(), b)
	assert.False(t, ok)
	assert.Equal(t, ah, b.Parent())
}

func TestSyncUploadsAndClearsDirty(t *testing.T) {
	ctx, mp, _ := newContext(t)
	ids := tree.NewIDAllocator()
	sc := New(ids)
	g := NewGroup(ids)
	gh := sc.Add(g)
	box := redBox(ids)
	_, ok := sc.AddTo(gh, box)
	require.True(t, ok)
	ln := NewLine(ids, []math32.Vector3{{0, 0, 0}, {1, 1, 0}, {0, 2, 0}}, material.NewLine(colors.Black))
	sc.Add(ln)

	assert.True(t, box.Primitive().Pending())
	_, has := box.Primitive().Handle()
	assert.False(t, has)

	require.NoError(t, sc.Sync(ctx))
	assert.False(t, box.Primitive().Pending())
	_, has = box.Primitive().Handle()
	assert.True(t, has)
	assert.False(t, ln.Primitive().Pending())
	assert.Equal(t, 2, mp.Len())
	assert.False(t, box.IsDirty())
	assert.False(t, g.HasChildDirty())

	// nothing pending: nothing uploaded
	require.NoError(t, sc.Sync(ctx))
	assert.Equal(t, 2, mp.Len())
}

func TestSyncFailureKeepsDirty(t *testing.T) {
	ctx, mp, dev := newContext(t)
	ids := tree.NewIDAllocator()
	sc := New(ids)
	g := NewGroup(ids)
	gh := sc.Add(g)
	box := redBox(ids)
	sc.AddTo(gh, box)
	other := redBox(ids)
	sc.Add(other)

	oom := errors.New("out of memory")
	calls := 0
	dev.BufferErr = func(desc *gpu.BufferDesc) error {
		calls++
		if calls == 1 {
			return oom
		}
		return nil
	}
	// other is visited first, and fails
	err := sc.Sync(ctx)
	assert.ErrorIs(t, err, oom)
	assert.True(t, other.IsDirty())
	assert.True(t, other.Primitive().Pending())
	assert.False(t, box.IsDirty())
	assert.False(t, box.Primitive().Pending())
	root := sc.Tree.Node(sc.Root()).AsHeader()
	assert.True(t, root.HasChildDirty())
	assert.Equal(t, 1, mp.Len())

	require.NoError(t, sc.Sync(ctx))
	assert.Equal(t, 2, mp.Len())
	assert.False(t, other.IsDirty())
}

func TestMeshLifecycle(t *testing.T) {
	ctx, mp, dev := newContext(t)
	ids := tree.NewIDAllocator()
	sc := New(ids)
	box := redBox(ids)
	assert.True(t, box.Primitive().Pending())
	bh := sc.Add(box)

	require.NoError(t, sc.Sync(ctx))
	h, has := box.Primitive().Handle()
	require.True(t, has)
	assert.True(t, mp.Contains(h))

	// attached nodes are not destroyed
	assert.Equal(t, 0, sc.DestroyDetached(ctx, bh))

	_, ok := sc.Remove(box.ID())
	require.True(t, ok)
	assert.Equal(t, 1, sc.DestroyDetached(ctx, bh))
	assert.False(t, mp.Contains(h))
	assert.Equal(t, 0, mp.Len())
	assert.False(t, sc.Tree.Contains(bh))
	assert.Equal(t, 1, dev.LiveBuffers())
}

func TestReleaseDetached(t *testing.T) {
	ctx, mp, dev := newContext(t)
	ids := tree.NewIDAllocator()
	sc := New(ids)
	g := NewGroup(ids)
	gh := sc.Add(g)
	ah, _ := sc.AddTo(gh, redBox(ids))
	b := redBox(ids)
	bh := sc.Add(b)
	require.NoError(t, sc.Sync(ctx))
	assert.Equal(t, 2, mp.Len())
	assert.Equal(t, 0, sc.ReleaseDetached(ctx))

	_, ok := sc.Remove(g.ID())
	require.True(t, ok)
	_, ok = sc.Remove(b.ID())
	require.True(t, ok)
	require.True(t, sc.Tree.AddChild(sc.Root(), bh))

	// the group and its box are released, the re-added box is kept
	assert.Equal(t, 2, sc.ReleaseDetached(ctx))
	assert.False(t, sc.Tree.Contains(gh))
	assert.False(t, sc.Tree.Contains(ah))
	assert.True(t, sc.Tree.Contains(bh))
	assert.Equal(t, 1, mp.Len())
	assert.Equal(t, 3, dev.LiveBuffers())
	assert.Equal(t, 0, sc.ReleaseDetached(ctx))
}

func TestMeshSetShape(t *testing.T) {
	ctx, mp, _ := newContext(t)
	ids := tree.NewIDAllocator()
	sc := New(ids)
	box := redBox(ids)
	bh := sc.Add(box)
	require.NoError(t, sc.Sync(ctx))
	first, _ := box.Primitive().Handle()

	box.SetShape(shape.NewCircle(math32.Vector3{}, 1, 12))
	sc.MarkDirty(bh)
	assert.True(t, box.Primitive().Pending())
	require.NoError(t, sc.Sync(ctx))
	second, _ := box.Primitive().Handle()
	assert.NotEqual(t, first, second)
	assert.Equal(t, 1, mp.Len())

	box.SetMaterial(material.NewBasic(colors.Blue))
	assert.True(t, box.Primitive().Pending())
	assert.Equal(t, colors.Blue, box.Material.Color)
}

func TestLineSetPoints(t *testing.T) {
	ids := tree.NewIDAllocator()
	ln := NewLine(ids, []math32.Vector3{{0, 0, 0}, {1, 0, 0}}, material.NewLine(colors.Black).SetWidth(0.5))
	assert.Equal(t, float32(0.5), ln.Material.Width)
	ctx, _, _ := newContext(t)
	require.NoError(t, ln.Primitive().Render(ctx))
	ln.SetPoints([]math32.Vector3{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}})
	assert.True(t, ln.Primitive().Pending())
}

func TestDestroyAll(t *testing.T) {
	ctx, mp, _ := newContext(t)
	ids := tree.NewIDAllocator()
	sc := New(ids)
	a := redBox(ids)
	b := redBox(ids)
	sc.Add(a)
	sc.Add(b)
	require.NoError(t, sc.Sync(ctx))
	// a removed node still holds its buffers until destroyed
	_, ok := sc.Remove(b.ID())
	require.True(t, ok)
	assert.Equal(t, 2, mp.Len())
	sc.DestroyAll(ctx)
	assert.Equal(t, 0, mp.Len())
}

func TestUpdateLocks(t *testing.T) {
	ids := tree.NewIDAllocator()
	sc := New(ids)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sc.Update(func(sc *Scene) {
				sc.Add(NewGroup(ids))
			})
		}()
	}
	wg.Wait()
	sc.RLock()
	defer sc.RUnlock()
	assert.Len(t, sc.Tree.Children(sc.Root()), 8)
}
