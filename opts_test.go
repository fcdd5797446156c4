package lazy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tychoish/lazy/ers"
	"github.com/tychoish/lazy/order"
	"github.com/tychoish/lazy/testt"
)

type validated struct {
	value   int
	invalid bool
}

func (v *validated) Validate() error { return ers.When(v.invalid, errors.New("invalid")) }

func TestOptionProvider(t *testing.T) {
	t.Run("Apply", func(t *testing.T) {
		conf := &RankOptions{}
		testt.Log(t, "before", conf)
		require.NoError(t, ApplyOptions(conf, RankDescending(), RankDense()))
		testt.Log(t, "after", conf)

		assert.Equal(t, order.Descending, conf.Direction)
		assert.True(t, conf.Dense)
	})
	t.Run("InOrder", func(t *testing.T) {
		conf := &RankOptions{}
		require.NoError(t, ApplyOptions(conf,
			RankDense(),
			RankWithOptions(&RankOptions{Direction: order.Descending}),
			RankDirection(order.Ascending),
		))
		assert.Equal(t, RankOptions{}, *conf)
	})
	t.Run("NoOptions", func(t *testing.T) {
		conf := &RankOptions{}
		assert.NoError(t, ApplyOptions(conf))
		assert.Equal(t, RankOptions{}, *conf)
	})
	t.Run("CollectsErrors", func(t *testing.T) {
		one, two := errors.New("one"), errors.New("two")
		conf := &validated{}
		err := ApplyOptions(conf,
			func(*validated) error { return one },
			nil,
			func(v *validated) error { v.value = 42; return nil },
			func(*validated) error { return two },
		)
		assert.ErrorIs(t, err, one)
		assert.ErrorIs(t, err, two)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, 42, conf.value)

		var stack *ers.Stack
		require.ErrorAs(t, err, &stack)
		assert.Equal(t, 3, stack.Len())
	})
	t.Run("Validates", func(t *testing.T) {
		conf := &validated{}
		err := ApplyOptions(conf, func(v *validated) error { v.invalid = true; return nil })
		assert.EqualError(t, err, "invalid")
	})
	t.Run("RankOptionsValidate", func(t *testing.T) {
		assert.NoError(t, (&RankOptions{Direction: order.Descending, Dense: true}).Validate())

		err := ApplyOptions(&RankOptions{}, RankDirection(3))
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorContains(t, err, "direction 3")
	})
	t.Run("NilOptions", func(t *testing.T) {
		conf := &RankOptions{Dense: true}
		err := ApplyOptions(conf, RankWithOptions(nil))
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.True(t, conf.Dense)
	})
}
