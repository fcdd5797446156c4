package testt

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext(t *testing.T) {
	var ctxErr error
	t.Run("Cleanup", func(t *testing.T) {
		var ctx context.Context
		// cleanups run in reverse order, so this observes the
		// context after it has been canceled.
		t.Cleanup(func() { ctxErr = ctx.Err() })
		ctx = Context(t)
		assert.NoError(t, ctx.Err())
	})
	assert.Error(t, ctxErr)
}

func TestCounter(t *testing.T) {
	t.Run("Slice", func(t *testing.T) {
		seq, counter := Slice(1, 2, 3)
		assert.Equal(t, []int{1, 2, 3}, slices.Collect(seq))
		assert.Equal(t, 3, counter.Pulled())
		assert.Equal(t, 1, counter.Traversals())
		assert.Equal(t, 1, counter.Stopped())

		assert.Equal(t, []int{1, 2, 3}, slices.Collect(seq))
		assert.Equal(t, 6, counter.Pulled())
		assert.Equal(t, 2, counter.Traversals())
	})
	t.Run("EarlyStop", func(t *testing.T) {
		seq, counter := Infinite(func(idx int) int { return idx * 2 })
		var out []int
		for v := range seq {
			if len(out) == 4 {
				break
			}
			out = append(out, v)
		}
		assert.Equal(t, []int{0, 2, 4, 6}, out)
		assert.Equal(t, 5, counter.Pulled())
		assert.Equal(t, 1, counter.Stopped())
	})
	t.Run("Reset", func(t *testing.T) {
		seq, counter := Slice("a")
		_ = slices.Collect(seq)
		counter.Reset()
		assert.Zero(t, counter.Pulled())
		assert.Zero(t, counter.Traversals())
		assert.Zero(t, counter.Stopped())
	})
}
