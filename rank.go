package lazy

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/tychoish/lazy/ers"
	"github.com/tychoish/lazy/order"
)

// Ranked pairs an element with its rank.
type Ranked[T any] struct {
	Item T
	Rank int
}

func (r Ranked[T]) String() string { return fmt.Sprintf("%d:%v", r.Rank, r.Item) }

// RankBy assigns a rank to every element of the sequence, according
// to the natural ordering of the key of each element, and produces
// the elements with their ranks in the original input order.
//
// Elements with equal keys receive the same rank. By default ranks
// are competition ranks: a key's rank is one more than the number of
// elements whose keys sort before it, so ties are followed by a gap
// ([50 50 90] ranks as [1 1 3]). The RankDense option produces
// consecutive ranks instead ([1 1 2]), and RankDescending gives the
// largest key rank 1.
//
// Ranking requires the entire sequence: the first element is produced
// only after the source has been exhausted, and the source must be
// finite. No element is read until the first element of the output
// is requested.
func RankBy[T any, K cmp.Ordered](src iter.Seq[T], key func(T) K, opts ...RankOption) (iter.Seq2[T, int], error) {
	return RankByFunc(src, key, order.Native[K], opts...)
}

// DenseRankBy is RankBy with dense ranking.
func DenseRankBy[T any, K cmp.Ordered](src iter.Seq[T], key func(T) K, opts ...RankOption) (iter.Seq2[T, int], error) {
	return RankByFunc(src, key, order.Native[K], append(slices.Clip(opts), RankDense())...)
}

// RankByFunc is RankBy with a caller-provided key comparison. Keys
// for which compare returns zero are ties.
func RankByFunc[T, K any](src iter.Seq[T], key func(T) K, compare order.Compare[K], opts ...RankOption) (iter.Seq2[T, int], error) {
	conf, err := checkRankArgs(src == nil, key == nil, compare == nil, opts)
	if err != nil {
		return nil, err
	}

	compare = order.Directed(compare, conf.Direction)
	ranked := sequence(src, func(upstream Generator[T]) Generator[Ranked[T]] {
		return newRankAssigner(upstream, key, compare, conf.Dense).read
	})

	return func(yield func(T, int) bool) {
		for r := range ranked {
			if !yield(r.Item, r.Rank) {
				return
			}
		}
	}, nil
}

// RankByStream is the stream form of RankByFunc.
func RankByStream[T, K any](st *Stream[T], key func(T) K, compare order.Compare[K], opts ...RankOption) (*Stream[Ranked[T]], error) {
	conf, err := checkRankArgs(st == nil, key == nil, compare == nil, opts)
	if err != nil {
		return nil, err
	}

	compare = order.Directed(compare, conf.Direction)
	return derive(st, func(upstream Generator[T]) Generator[Ranked[T]] {
		return newRankAssigner(upstream, key, compare, conf.Dense).read
	}), nil
}

func checkRankArgs(noSource, noKey, noCompare bool, opts []RankOption) (*RankOptions, error) {
	conf := &RankOptions{}
	if err := ers.Join(
		argIsNil(noSource, "source"),
		argIsNil(noKey, "key projection"),
		argIsNil(noCompare, "key comparer"),
		ApplyOptions(conf, opts...),
	); err != nil {
		return nil, err
	}
	return conf, nil
}

type rankAssigner[T, K any] struct {
	source  Generator[T]
	key     func(T) K
	compare order.Compare[K]
	dense   bool

	ready  bool
	items  []T
	ranks  []int
	cursor int
}

func newRankAssigner[T, K any](source Generator[T], key func(T) K, compare order.Compare[K], dense bool) *rankAssigner[T, K] {
	return &rankAssigner[T, K]{source: source, key: key, compare: compare, dense: dense}
}

// materialize reads the entire source, computing each key once, and
// then computes the rank of every element by walking a stable sort
// of the element positions.
func (ra *rankAssigner[T, K]) materialize(ctx context.Context) error {
	var keys []K
	for {
		item, err := ra.source(ctx)
		if err != nil {
			if ers.IsTerminating(err) {
				break
			}
			return err
		}

		ra.items = append(ra.items, item)
		keys = append(keys, ra.key(item))
	}

	positions := make([]int, len(ra.items))
	for idx := range positions {
		positions[idx] = idx
	}
	slices.SortStableFunc(positions, func(a, b int) int { return ra.compare(keys[a], keys[b]) })

	ra.ranks = make([]int, len(ra.items))
	for sorted, idx := range positions {
		if sorted == 0 {
			ra.ranks[idx] = 1
			continue
		}

		prev := positions[sorted-1]
		switch {
		case ra.compare(keys[prev], keys[idx]) == 0:
			ra.ranks[idx] = ra.ranks[prev]
		case ra.dense:
			ra.ranks[idx] = ra.ranks[prev] + 1
		default:
			ra.ranks[idx] = sorted + 1
		}
	}

	ra.ready = true
	return nil
}

func (ra *rankAssigner[T, K]) read(ctx context.Context) (out Ranked[T], _ error) {
	if !ra.ready {
		if err := ra.materialize(ctx); err != nil {
			return out, err
		}
	}

	if ra.cursor >= len(ra.items) {
		return out, io.EOF
	}

	out = Ranked[T]{Item: ra.items[ra.cursor], Rank: ra.ranks[ra.cursor]}
	ra.cursor++
	return out, nil
}
