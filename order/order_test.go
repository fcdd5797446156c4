package order

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tychoish/lazy/ers"
)

type version struct{ major, minor int }

func (v version) Compare(o version) int {
	if v.major != o.major {
		return v.major - o.major
	}
	return v.minor - o.minor
}

func TestCompare(t *testing.T) {
	t.Run("Native", func(t *testing.T) {
		assert.Negative(t, Native(1, 2))
		assert.Positive(t, Native("b", "a"))
		assert.Zero(t, Native(4.5, 4.5))
	})
	t.Run("Reverse", func(t *testing.T) {
		rev := Reverse(Native[int])
		assert.Positive(t, rev(1, 2))
		assert.Negative(t, rev(2, 1))
		assert.Zero(t, rev(3, 3))
	})
	t.Run("Directed", func(t *testing.T) {
		assert.Negative(t, Directed(Native[int], Ascending)(1, 2))
		assert.Positive(t, Directed(Native[int], Descending)(1, 2))
	})
	t.Run("Converter", func(t *testing.T) {
		byLen := Converter(func(s string) int { return len(s) })
		assert.Zero(t, byLen("abc", "xyz"))
		assert.Negative(t, byLen("a", "bb"))
	})
	t.Run("Custom", func(t *testing.T) {
		assert.Negative(t, Custom(version{1, 2}, version{1, 3}))
		assert.Positive(t, Custom(version{2, 0}, version{1, 9}))
	})
	t.Run("Time", func(t *testing.T) {
		now := time.Now()
		assert.Negative(t, Time(now, now.Add(time.Second)))
		assert.Zero(t, Time(now, now))
	})
	t.Run("Equality", func(t *testing.T) {
		eq := Compare[string](strings.Compare).Equality()
		assert.True(t, eq("a", "a"))
		assert.False(t, eq("a", "b"))

		fold := Converter(strings.ToLower).Equality()
		assert.True(t, fold("Key", "KEY"))
	})
	t.Run("LessThanRoundTrip", func(t *testing.T) {
		lt := Compare[int](Native[int]).LessThan()
		assert.True(t, lt(1, 2))
		assert.False(t, lt(2, 2))

		back := lt.Compare()
		assert.Equal(t, -1, back(1, 2))
		assert.Equal(t, 1, back(2, 1))
		assert.Equal(t, 0, back(2, 2))
	})
	t.Run("Sorting", func(t *testing.T) {
		in := []int{3, 1, 2}
		slices.SortFunc(in, Reverse(Native[int]))
		assert.Equal(t, []int{3, 2, 1}, in)
	})
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(1, 1))
	assert.False(t, Equal("a", "b"))
}

func TestDirection(t *testing.T) {
	t.Run("Zero", func(t *testing.T) {
		var d Direction
		assert.Equal(t, Ascending, d)
		assert.NoError(t, d.Validate())
	})
	t.Run("Invalid", func(t *testing.T) {
		assert.ErrorIs(t, Direction(7).Validate(), ers.ErrInvalidInput)
		assert.Equal(t, "Direction(7)", Direction(7).String())
	})
	t.Run("Parse", func(t *testing.T) {
		for in, want := range map[string]Direction{
			"asc":        Ascending,
			"Ascending":  Ascending,
			"":           Ascending,
			"DESC":       Descending,
			"descending": Descending,
		} {
			got, err := ParseDirection(in)
			require.NoError(t, err, in)
			assert.Equal(t, want, got, in)
		}

		_, err := ParseDirection("sideways")
		assert.ErrorIs(t, err, ers.ErrInvalidInput)
	})
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "ascending", Ascending.String())
		assert.Equal(t, "descending", Descending.String())
	})
}
