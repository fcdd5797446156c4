package lazy

import (
	"context"
	"io"
	"iter"

	"github.com/tychoish/lazy/ers"
)

// Generator is the function type at the heart of every stream and
// operator: each call produces the next value, or an error. io.EOF
// signals that the generator is exhausted; all errors are terminal.
//
// The operators in this package are state machines whose read
// method is a Generator: all of their state lives in struct fields,
// and each call resumes exactly where the previous one returned.
type Generator[T any] func(context.Context) (T, error)

// MakeGenerator constructs a generator that wraps a similar
// function that does not take a context.
func MakeGenerator[T any](fn func() (T, error)) Generator[T] {
	return func(context.Context) (T, error) { return fn() }
}

// CheckedGenerator wraps a function object that uses the second ("OK")
// value to indicate that no more values will be produced. Errors
// returned from the resulting generator are always either the
// context cancellation error or io.EOF.
func CheckedGenerator[T any](op func() (T, bool)) Generator[T] {
	return func(ctx context.Context) (zero T, _ error) {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		out, ok := op()
		if !ok {
			return zero, io.EOF
		}
		return out, nil
	}
}

// SliceGenerator produces the elements of the slice in order, and
// then io.EOF.
func SliceGenerator[T any](in []T) Generator[T] {
	var idx int
	return CheckedGenerator(func() (zero T, _ bool) {
		if idx >= len(in) {
			return zero, false
		}
		idx++
		return in[idx-1], true
	})
}

// PullGenerator converts a native push iterator into a generator
// with iter.Pull. The stop function must be called to release the
// iterator if the generator is not consumed to exhaustion; it is
// safe to call more than once.
func PullGenerator[T any](seq iter.Seq[T]) (Generator[T], func()) {
	next, stop := iter.Pull(seq)
	return CheckedGenerator(next), stop
}

// Check runs the generator once, returning false for all errors.
func (gen Generator[T]) Check(ctx context.Context) (T, bool) {
	out, err := gen(ctx)
	return out, ers.Ok(err)
}

// Stream constructs a stream that calls the generator for each
// element.
func (gen Generator[T]) Stream() *Stream[T] { return MakeStream(gen) }

// Seq exposes the generator as a native iterator which runs until
// the generator returns an error or the consumer stops. The errors
// are not reported; use a Stream to capture them.
func (gen Generator[T]) Seq(ctx context.Context) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			item, err := gen(ctx)
			if err != nil || !yield(item) {
				return
			}
		}
	}
}
