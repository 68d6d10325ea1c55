// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"reflect"
	"testing"

	"cogentcore.org/scene3d/camera"
	"cogentcore.org/scene3d/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPipeline struct {
	name      string
	destroyed bool
}

func (tp *testPipeline) Update(cam camera.Camera) error                     { return nil }
func (tp *testPipeline) Draw(target gpu.TextureView, enc gpu.Encoder) error { return nil }
func (tp *testPipeline) Destroy()                                           { tp.destroyed = true }

type otherPipeline struct {
	testPipeline
}

func TestStorage(t *testing.T) {
	s := NewStorage()
	assert.False(t, Has[*testPipeline](s))
	p, ok := Get[*testPipeline](s)
	assert.False(t, ok)
	assert.Nil(t, p)

	v := &testPipeline{name: "v"}
	Store(s, v)
	assert.True(t, Has[*testPipeline](s))
	p, ok = Get[*testPipeline](s)
	require.True(t, ok)
	assert.Same(t, v, p)

	v2 := &testPipeline{name: "v2"}
	Store(s, v2)
	p, _ = Get[*testPipeline](s)
	assert.Same(t, v2, p)
	assert.Equal(t, 1, s.Len())
	assert.False(t, Has[*otherPipeline](s))
}

func TestStorageOrderAndDestroy(t *testing.T) {
	s := NewStorage()
	a := &testPipeline{name: "a"}
	b := &otherPipeline{testPipeline{name: "b"}}
	Store(s, a)
	Store(s, b)
	// replacing keeps the registration position
	a2 := &testPipeline{name: "a2"}
	Store(s, a2)

	var names []string
	for p := range s.All() {
		switch v := p.(type) {
		case *testPipeline:
			names = append(names, v.name)
		case *otherPipeline:
			names = append(names, v.name)
		}
	}
	assert.Equal(t, []string{"a2", "b"}, names)

	s.Destroy()
	assert.True(t, a2.destroyed)
	assert.True(t, b.destroyed)
	assert.False(t, a.destroyed)
	assert.Equal(t, 0, s.Len())
}

func TestStorageTypeMismatchPanics(t *testing.T) {
	s := NewStorage()
	s.pipelines.Add(reflect.TypeFor[*testPipeline](), &otherPipeline{})
	assert.Panics(t, func() { Get[*testPipeline](s) })
}
