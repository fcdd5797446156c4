package lazy

import (
	"context"
	"iter"
)

// sequence builds a native iterator over an operator. Every
// traversal pulls a fresh iterator from the source, builds a new
// operator state machine on top of it, and releases the source when
// the traversal ends, either by exhaustion or because the consumer
// stopped early.
func sequence[T, O any](src iter.Seq[T], build func(Generator[T]) Generator[O]) iter.Seq[O] {
	return func(yield func(O) bool) {
		upstream, stop := PullGenerator(src)
		defer stop()

		for item := range build(upstream).Seq(context.Background()) {
			if !yield(item) {
				return
			}
		}
	}
}

// derive builds a stream over an operator that reads from an
// upstream stream. Closing the derived stream closes the upstream
// stream.
func derive[T, O any](upstream *Stream[T], build func(Generator[T]) Generator[O]) *Stream[O] {
	return closeUpstream(upstream, MakeStream(build(upstream.Read)))
}
