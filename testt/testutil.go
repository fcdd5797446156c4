// Package testt (for test tools), provides helpers for testing lazy
// sequence operators: contexts bound to the test's lifetime, and
// instrumented sources that count how many elements were pulled.
package testt

import (
	"context"
	"iter"
	"sync/atomic"
	"testing"
)

// Context creates a context and attaches its cancellation function to
// the test execution's Cleanup. Given the execution of tests, this
// means that the context is canceled *after* the test functions
// defers have run.
func Context(t testing.TB) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// Counter tracks the activity of an instrumented source.
type Counter struct {
	pulled  atomic.Int64
	started atomic.Int64
	stopped atomic.Int64
}

// Pulled reports the total number of elements the source has
// produced, across all traversals.
func (c *Counter) Pulled() int { return int(c.pulled.Load()) }

// Traversals reports the number of times the source has been
// ranged over.
func (c *Counter) Traversals() int { return int(c.started.Load()) }

// Stopped reports the number of traversals that ended, either by
// exhaustion or because the consumer stopped early.
func (c *Counter) Stopped() int { return int(c.stopped.Load()) }

// Reset zeros all counters.
func (c *Counter) Reset() { c.pulled.Store(0); c.started.Store(0); c.stopped.Store(0) }

// Slice returns an instrumented, re-iterable sequence over the
// elements of the slice.
func Slice[T any](items ...T) (iter.Seq[T], *Counter) {
	return Generate(func(idx int) (T, bool) {
		if idx >= len(items) {
			var zero T
			return zero, false
		}
		return items[idx], true
	})
}

// Infinite returns an instrumented sequence that never ends, and
// produces the result of the function for every successive index.
func Infinite[T any](fn func(idx int) T) (iter.Seq[T], *Counter) {
	return Generate(func(idx int) (T, bool) { return fn(idx), true })
}

// Generate returns an instrumented sequence that calls the function
// with successive indexes, starting at zero for every traversal,
// until it returns false.
func Generate[T any](fn func(idx int) (T, bool)) (iter.Seq[T], *Counter) {
	counter := &Counter{}
	return func(yield func(T) bool) {
		counter.started.Add(1)
		defer counter.stopped.Add(1)

		for idx := 0; ; idx++ {
			item, ok := fn(idx)
			if !ok {
				return
			}
			counter.pulled.Add(1)
			if !yield(item) {
				return
			}
		}
	}, counter
}

// Log calls t.Log with the given arguments *if* the test has failed.
func Log(t testing.TB, args ...any) {
	t.Helper()
	if t.Failed() {
		t.Log(args...)
	}
}
