// Package lazy provides lazily evaluated, stateful sequence
// operators: forward filling of missing values (FillForward),
// grouping of adjacent elements with equal keys (GroupAdjacent), and
// ranking by a key projection (RankBy).
//
// Every operator is available in two forms. The native form accepts
// an iter.Seq and returns an iter.Seq (or iter.Seq2): the result may
// be ranged over any number of times, and each traversal runs the
// operator from the beginning against a fresh traversal of the
// source. The stream form accepts and returns a *Stream, the
// package's single-pass, context-aware iterator that collects errors
// and reports them from Close.
//
// Operators validate their arguments when they are constructed, and
// return an error rooted in ErrInvalidInput before any element of
// the source is read. Panics in caller-supplied functions are never
// recovered.
package lazy

import (
	"context"
	"io"
	"iter"
	"sync"
	"sync/atomic"

	"github.com/tychoish/lazy/erc"
	"github.com/tychoish/lazy/ers"
)

// Stream provides a safe, context-respecting iteration paradigm over
// a Generator.
//
// The canonical way to use a stream is with the Next() and Value()
// methods in a loop, followed by a call to Close(), which reports
// any errors encountered during iteration. Read combines Next and
// Value into a single call and returns io.EOF when the stream is
// exhausted. Streams cannot be restarted: once Read returns an
// error, the stream is closed.
//
// Next/Value cannot be used from multiple goroutines concurrently;
// there is no way to synchronize the pair. Read is safe for
// concurrent use if the underlying generator is.
type Stream[T any] struct {
	operation Generator[T]
	value     T

	erc    erc.Collector
	closer struct {
		state atomic.Bool
		once  sync.Once
		hooks []func(*Stream[T])
	}
}

// MakeStream constructs a stream that calls the Generator function
// once for every item, until it errors. Errors other than context
// cancellation errors and io.EOF are propagated to the stream's
// Close method.
func MakeStream[T any](gen Generator[T]) *Stream[T] { return &Stream[T]{operation: gen} }

// VariadicStream produces a stream from an arbitrary collection
// of objects, passed into the constructor.
func VariadicStream[T any](in ...T) *Stream[T] { return SliceStream(in) }

// SliceStream provides Stream access to the elements in a slice.
func SliceStream[T any](in []T) *Stream[T] { return MakeStream(SliceGenerator(in)) }

// SeqStream wraps a native go iterator as a stream. Closing the
// stream releases the iterator.
func SeqStream[T any](seq iter.Seq[T]) *Stream[T] {
	gen, stop := PullGenerator(seq)
	return MakeStream(gen).WithHook(func(*Stream[T]) { stop() })
}

// WithHook adds a function that runs (once) during the stream's
// Close() method.
func (st *Stream[T]) WithHook(hook func(*Stream[T])) *Stream[T] {
	st.closer.hooks = append(st.closer.hooks, hook)
	return st
}

// closeUpstream attaches a hook to a derived stream that closes the
// upstream stream, and collects its errors, when the derived stream
// closes.
func closeUpstream[T, O any](upstream *Stream[T], st *Stream[O]) *Stream[O] {
	return st.WithHook(func(next *Stream[O]) { next.AddError(upstream.Close()) })
}

func (st *Stream[T]) doClose() {
	st.closer.once.Do(func() {
		st.closer.state.Store(true)
		for _, hook := range st.closer.hooks {
			hook(st)
		}
	})
}

// Close terminates the stream and returns any errors collected
// during iteration. Close is safe to call more than once.
func (st *Stream[T]) Close() error { st.doClose(); return st.erc.Resolve() }

// AddError can be used by calling code to add errors to the
// stream, which are merged.
func (st *Stream[T]) AddError(e error) { st.erc.Push(e) }

// Value returns the object at the current position in the
// stream. It's often used with Next() for looping over the
// stream.
func (st *Stream[T]) Value() T { return st.value }

// Next advances the stream (using Read) and caches the current
// value for access with the Value() method. When Next is false,
// either the stream has been exhausted or the context passed to
// Next has been canceled.
func (st *Stream[T]) Next(ctx context.Context) bool {
	if val, err := st.Read(ctx); err == nil {
		st.value = val
		return true
	}
	return false
}

// Read returns a single value from the stream.
//
// Read returns the io.EOF error when the stream has been
// exhausted, a context expiration error or the underlying error
// produced by the stream. All errors produced by Read are
// terminal: the stream is closed, and no further iteration is
// possible.
func (st *Stream[T]) Read(ctx context.Context) (out T, err error) {
	if err = ctx.Err(); err != nil {
		st.doClose()
		return out, err
	} else if st.closer.state.Load() || st.operation == nil {
		return out, io.EOF
	}

	out, err = st.operation(ctx)
	switch {
	case err == nil:
		return out, nil
	case ers.IsTerminating(err), ers.IsExpiredContext(err):
	default:
		st.AddError(err)
	}

	st.doClose()
	return out, err
}

// ReadAll provides a worker that consumes all items in the stream
// with the provided function, and then closes the stream. The
// worker returns the stream's errors, or the context's error if it
// expires first.
func (st *Stream[T]) ReadAll(fn func(T)) Worker {
	return func(ctx context.Context) error {
		for {
			item, err := st.Read(ctx)
			switch {
			case err == nil:
				fn(item)
			case ers.IsExpiredContext(err):
				return ers.Join(err, st.Close())
			default:
				return st.Close()
			}
		}
	}
}

// Slice converts a stream to the slice of it's values, and
// closes the stream when the stream has been exhausted.
//
// In the case of an error in the underlying stream the output slice
// will have the values encountered before the error.
func (st *Stream[T]) Slice(ctx context.Context) ([]T, error) {
	var out []T
	err := st.ReadAll(func(in T) { out = append(out, in) }).Run(ctx)
	return out, err
}

// Count returns the number of items observed by the stream. Callers
// should still manually call Close on the stream.
func (st *Stream[T]) Count(ctx context.Context) (count int) {
	for {
		if _, err := st.Read(ctx); err != nil {
			return count
		}
		count++
	}
}

// Iterator converts the stream into a native go iterator. The
// iterator is single-pass, like the stream itself.
func (st *Stream[T]) Iterator(ctx context.Context) iter.Seq[T] {
	return Generator[T](st.Read).Seq(ctx)
}
