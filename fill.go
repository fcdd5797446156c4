package lazy

import (
	"context"
	"iter"

	"github.com/tychoish/lazy/ers"
)

// FillForward replaces missing elements of the sequence with the
// most recent element that was not missing. An element is missing
// when the predicate returns true for it. Missing elements that
// precede the first non-missing element are passed through
// unchanged.
//
// The output has the same length as the input, and each output
// element depends only on the elements that came before it, so
// FillForward is safe to use with infinite sequences.
func FillForward[T any](src iter.Seq[T], missing func(T) bool) (iter.Seq[T], error) {
	if err := ers.Join(
		argIsNil(src == nil, "source"),
		argIsNil(missing == nil, "missing predicate"),
	); err != nil {
		return nil, err
	}

	return fillForward(src, missing, nil), nil
}

// FillForwardFunc is FillForward, except that missing elements are
// replaced by the result of the fill function, which is called with
// the missing element and the most recent non-missing element.
func FillForwardFunc[T any](src iter.Seq[T], missing func(T) bool, fill func(current, seed T) T) (iter.Seq[T], error) {
	if err := ers.Join(
		argIsNil(src == nil, "source"),
		argIsNil(missing == nil, "missing predicate"),
		argIsNil(fill == nil, "fill function"),
	); err != nil {
		return nil, err
	}

	return fillForward(src, missing, fill), nil
}

// FillForwardZero is FillForward for comparable types, where the
// zero value of the type (nil, 0, "") marks missing elements.
func FillForwardZero[T comparable](src iter.Seq[T]) (iter.Seq[T], error) {
	return FillForward(src, isZero[T])
}

// FillForwardStream is the stream form of FillForward. When fill is
// nil, missing elements are replaced by the previous non-missing
// element itself.
func FillForwardStream[T any](st *Stream[T], missing func(T) bool, fill func(current, seed T) T) (*Stream[T], error) {
	if err := ers.Join(
		argIsNil(st == nil, "source stream"),
		argIsNil(missing == nil, "missing predicate"),
	); err != nil {
		return nil, err
	}

	return derive(st, func(upstream Generator[T]) Generator[T] {
		return newForwardFiller(upstream, missing, fill).read
	}), nil
}

func fillForward[T any](src iter.Seq[T], missing func(T) bool, fill func(T, T) T) iter.Seq[T] {
	return sequence(src, func(upstream Generator[T]) Generator[T] {
		return newForwardFiller(upstream, missing, fill).read
	})
}

func isZero[T comparable](in T) bool { var zero T; return in == zero }

type forwardFiller[T any] struct {
	source  Generator[T]
	missing func(T) bool
	fill    func(current, seed T) T

	seed   T
	seeded bool
}

func newForwardFiller[T any](source Generator[T], missing func(T) bool, fill func(T, T) T) *forwardFiller[T] {
	return &forwardFiller[T]{source: source, missing: missing, fill: fill}
}

func (ff *forwardFiller[T]) read(ctx context.Context) (T, error) {
	item, err := ff.source(ctx)
	if err != nil {
		return item, err
	}

	switch {
	case !ff.missing(item):
		ff.seed, ff.seeded = item, true
		return item, nil
	case !ff.seeded:
		return item, nil
	case ff.fill != nil:
		return ff.fill(item, ff.seed), nil
	default:
		return ff.seed, nil
	}
}
