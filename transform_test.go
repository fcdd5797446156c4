package lazy

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tychoish/lazy/testt"
)

func TestTransform(t *testing.T) {
	t.Run("Converter", func(t *testing.T) {
		out, err := Converter(strconv.Itoa).Stream(VariadicStream(1, 2, 3)).Slice(testt.Context(t))
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3"}, out)
	})
	t.Run("Run", func(t *testing.T) {
		val, err := Converter(func(in int) int { return in * 2 }).Run(testt.Context(t), 21)
		assert.NoError(t, err)
		assert.Equal(t, 42, val)
	})
	t.Run("ErrorEndsStream", func(t *testing.T) {
		var calls int
		op := ConverterErr(func(in string) (int, error) { calls++; return strconv.Atoi(in) })
		st := op.Stream(VariadicStream("1", "two", "3"))

		out, err := st.Slice(testt.Context(t))
		var numErr *strconv.NumError
		assert.ErrorAs(t, err, &numErr)
		assert.Equal(t, []int{1}, out)
		assert.Equal(t, 2, calls)
	})
	t.Run("ClosesInput", func(t *testing.T) {
		var closed bool
		in := VariadicStream(1, 2).WithHook(func(*Stream[int]) { closed = true })
		st := Converter(func(in int) int { return -in }).Stream(in)

		val, err := st.Read(testt.Context(t))
		require.NoError(t, err)
		assert.Equal(t, -1, val)
		assert.False(t, closed)

		assert.NoError(t, st.Close())
		assert.True(t, closed)
	})
	t.Run("ContextPassedThrough", func(t *testing.T) {
		type key struct{}
		ctx := context.WithValue(testt.Context(t), key{}, "value")
		op := Transform[int, string](func(ctx context.Context, _ int) (string, error) {
			val, ok := ctx.Value(key{}).(string)
			if !ok {
				return "", errors.New("missing value")
			}
			return val, nil
		})

		out, err := op.Stream(VariadicStream(0)).Slice(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"value"}, out)
	})
}
