package lazy

import (
	"context"
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/tychoish/lazy/ers"
	"github.com/tychoish/lazy/order"
)

// Group is one run of adjacent elements with equal keys, as produced
// by the GroupAdjacent operators. A Group owns its elements: they
// are never modified after the group is produced, and none of the
// accessors expose the underlying storage.
type Group[K any, E any] struct {
	key   K
	items []E
}

// Key returns the key shared by the elements of the group. When the
// equality function considers distinct keys equal, this is the key
// of the first element of the run.
func (g Group[K, E]) Key() K { return g.key }

// Len returns the number of elements in the group; groups produced
// by the operators always have at least one element.
func (g Group[K, E]) Len() int { return len(g.items) }

// Index returns the element at the given position, and panics if
// the index is out of range.
func (g Group[K, E]) Index(idx int) E { return g.items[idx] }

// Items iterates over the elements of the group in input order.
func (g Group[K, E]) Items() iter.Seq[E] { return slices.Values(g.items) }

// Slice returns a copy of the elements of the group.
func (g Group[K, E]) Slice() []E { return slices.Clone(g.items) }

func (g Group[K, E]) String() string { return fmt.Sprintf("Group<%v>%v", g.key, g.items) }

// GroupAdjacent groups runs of adjacent elements that have equal
// keys. Unlike a map-based grouping, a key that recurs after a
// different key starts a new group: [1 1 2 2 1] produces three
// groups.
//
// Each group is produced as soon as the element that ends it has
// been read from the source (or the source is exhausted), and only
// the elements of the current group are buffered, so GroupAdjacent
// is safe to use with infinite sequences.
func GroupAdjacent[T any, K comparable](src iter.Seq[T], key func(T) K) (iter.Seq[Group[K, T]], error) {
	return GroupAdjacentElements(src, key, identity[T], order.Equal[K])
}

// GroupAdjacentFunc is GroupAdjacent with a caller-provided key
// equality function.
func GroupAdjacentFunc[T, K any](src iter.Seq[T], key func(T) K, eq order.Equality[K]) (iter.Seq[Group[K, T]], error) {
	return GroupAdjacentElements(src, key, identity[T], eq)
}

// GroupAdjacentElements is GroupAdjacentFunc where each group holds
// the result of the element projection, rather than the source
// elements. The key and element projections are called exactly once
// per source element, in order.
func GroupAdjacentElements[T, K, E any](
	src iter.Seq[T],
	key func(T) K,
	elem func(T) E,
	eq order.Equality[K],
) (iter.Seq[Group[K, E]], error) {
	if err := checkGroupArgs(src == nil, key == nil, elem == nil, eq == nil); err != nil {
		return nil, err
	}

	return sequence(src, func(upstream Generator[T]) Generator[Group[K, E]] {
		return newAdjacentGrouper(upstream, key, elem, eq, makeGroup[K, E]).read
	}), nil
}

// GroupAdjacentResult groups adjacent elements with equal keys and
// produces one value per group, by calling result with the key of
// the group and an iterator over its elements.
func GroupAdjacentResult[T, K, R any](
	src iter.Seq[T],
	key func(T) K,
	eq order.Equality[K],
	result func(K, iter.Seq[T]) R,
) (iter.Seq[R], error) {
	if err := ers.Join(
		checkGroupArgs(src == nil, key == nil, false, eq == nil),
		argIsNil(result == nil, "result projection"),
	); err != nil {
		return nil, err
	}

	project := func(k K, items []T) R { return result(k, slices.Values(items)) }

	return sequence(src, func(upstream Generator[T]) Generator[R] {
		return newAdjacentGrouper(upstream, key, identity[T], eq, project).read
	}), nil
}

// GroupAdjacentStream is the stream form of GroupAdjacentElements.
func GroupAdjacentStream[T, K, E any](
	st *Stream[T],
	key func(T) K,
	elem func(T) E,
	eq order.Equality[K],
) (*Stream[Group[K, E]], error) {
	if err := checkGroupArgs(st == nil, key == nil, elem == nil, eq == nil); err != nil {
		return nil, err
	}

	return derive(st, func(upstream Generator[T]) Generator[Group[K, E]] {
		return newAdjacentGrouper(upstream, key, elem, eq, makeGroup[K, E]).read
	}), nil
}

func checkGroupArgs(noSource, noKey, noElem, noEq bool) error {
	return ers.Join(
		argIsNil(noSource, "source"),
		argIsNil(noKey, "key projection"),
		argIsNil(noElem, "element projection"),
		argIsNil(noEq, "key equality"),
	)
}

func identity[T any](in T) T { return in }

func makeGroup[K, E any](key K, items []E) Group[K, E] { return Group[K, E]{key: key, items: items} }

type adjacentGrouper[T, K, E, R any] struct {
	source Generator[T]
	key    func(T) K
	elem   func(T) E
	eq     order.Equality[K]
	result func(K, []E) R

	active  bool
	current K
	buffer  []E
	done    bool
}

func newAdjacentGrouper[T, K, E, R any](
	source Generator[T],
	key func(T) K,
	elem func(T) E,
	eq order.Equality[K],
	result func(K, []E) R,
) *adjacentGrouper[T, K, E, R] {
	return &adjacentGrouper[T, K, E, R]{source: source, key: key, elem: elem, eq: eq, result: result}
}

func (ag *adjacentGrouper[T, K, E, R]) start(key K, elem E) {
	ag.active = true
	ag.current = key
	ag.buffer = []E{elem}
}

// seal ends the active run and hands its buffer to the result
// function; the grouper never writes to that buffer again.
func (ag *adjacentGrouper[T, K, E, R]) seal() R {
	key, items := ag.current, ag.buffer

	var zero K
	ag.active, ag.current, ag.buffer = false, zero, nil

	return ag.result(key, items)
}

func (ag *adjacentGrouper[T, K, E, R]) read(ctx context.Context) (out R, _ error) {
	for !ag.done {
		item, err := ag.source(ctx)
		if err != nil {
			if !ers.IsTerminating(err) {
				return out, err
			}

			ag.done = true
			if ag.active {
				return ag.seal(), nil
			}
			return out, err
		}

		key, elem := ag.key(item), ag.elem(item)
		switch {
		case !ag.active:
			ag.start(key, elem)
		case ag.eq(ag.current, key):
			ag.buffer = append(ag.buffer, elem)
		default:
			out = ag.seal()
			ag.start(key, elem)
			return out, nil
		}
	}

	return out, io.EOF
}
