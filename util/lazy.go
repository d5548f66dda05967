// Package util - Shared helpers for loading inputs and memoizing resources.
package util

import (
	"sync"
	"sync/atomic"
)

// Lazy is a value computed at most once per process and shared read-only afterwards.
//
// A failed load is memoized as well: the process is expected to abort on the first
// error, so subsequent calls return the same error instead of retrying.
type Lazy[T any] struct {
	once  sync.Once
	load  func() (T, error)
	value T
	err   error
	loads atomic.Int32
}

// NewLazy creates a new memoized value backed by the given load function.
//
// Arguments:
//   - load: The function that constructs the value.
//
// Returns:
//   - *Lazy[T]: The memoized value.
func NewLazy[T any](load func() (T, error)) *Lazy[T] {
	return &Lazy[T]{load: load}
}

// Get returns the value, constructing it on the first call.
//
// Returns:
//   - T: The memoized value.
//   - error: The memoized load error, if any.
func (l *Lazy[T]) Get() (T, error) {
	l.once.Do(func() {
		l.loads.Add(1)
		l.value, l.err = l.load()
	})
	return l.value, l.err
}

// Loaded reports whether the load function has already run.
func (l *Lazy[T]) Loaded() bool {
	return l.loads.Load() > 0
}

// Loads returns the number of times the load function ran. It is never above one.
func (l *Lazy[T]) Loads() int {
	return int(l.loads.Load())
}
