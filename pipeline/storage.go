// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"
	"iter"
	"reflect"

	"cogentcore.org/core/base/ordmap"
)

// Storage holds at most one [Pipeline] per concrete type, keyed by
// that type, in registration order. Use [Has], [Store] and [Get] to
// access it. A Storage is owned by the renderer and is not safe for
// concurrent use.
type Storage struct {
	pipelines ordmap.Map[reflect.Type, Pipeline]
}

// NewStorage returns a new empty [Storage].
func NewStorage() *Storage {
	return &Storage{}
}

// Len returns the number of registered pipelines.
func (s *Storage) Len() int {
	return s.pipelines.Len()
}

// All returns the registered pipelines in registration order.
func (s *Storage) All() iter.Seq[Pipeline] {
	return func(yield func(Pipeline) bool) {
		for _, kv := range s.pipelines.Order {
			if !yield(kv.Value) {
				return
			}
		}
	}
}

// Destroy destroys every registered pipeline and empties the storage.
func (s *Storage) Destroy() {
	for _, kv := range s.pipelines.Order {
		kv.Value.Destroy()
	}
	s.pipelines.Reset()
}

// Has returns whether a pipeline of type T is registered.
func Has[T Pipeline](s *Storage) bool {
	_, has := s.pipelines.Map[reflect.TypeFor[T]()]
	return has
}

// Store registers the pipeline as the single instance of type T,
// replacing any previous one in place.
func Store[T Pipeline](s *Storage, p T) {
	s.pipelines.Add(reflect.TypeFor[T](), p)
}

// Get returns the pipeline of type T, and whether there is one.
// It panics if the entry stored under T cannot be viewed as T,
// which cannot happen through [Store].
func Get[T Pipeline](s *Storage) (T, bool) {
	var zero T
	p, has := s.pipelines.ValueByKeyTry(reflect.TypeFor[T]())
	if !has {
		return zero, false
	}
	v, ok := p.(T)
	if !ok {
		panic(fmt.Sprintf("pipeline.Get: entry for %v has type %T", reflect.TypeFor[T](), p))
	}
	return v, true
}
