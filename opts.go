package lazy

import (
	"github.com/tychoish/lazy/ers"
	"github.com/tychoish/lazy/order"
)

// OptionProvider is a function type for building functional
// arguments.
type OptionProvider[T any] func(T) error

// ApplyOptions applies every option provider to the configuration
// value in order, and then, if the value implements
// interface{ Validate() error }, validates it. All errors are
// collected and returned together.
func ApplyOptions[T any](opt T, opts ...OptionProvider[T]) error {
	ec := &ers.Stack{}
	for idx := range opts {
		if opts[idx] == nil {
			ec.Push(argIsNil(true, "option provider"))
			continue
		}
		ec.Push(opts[idx](opt))
	}

	if validator, ok := any(opt).(interface{ Validate() error }); ok {
		ec.Push(validator.Validate())
	}

	return ec.Resolve()
}

// RankOptions configures the RankBy family of operators. The zero
// value ranks in ascending order with competition ("1224") ranks.
type RankOptions struct {
	// Direction controls which end of the ordering receives rank
	// 1: Ascending gives the smallest key rank 1.
	Direction order.Direction
	// Dense, when true, assigns consecutive ranks to distinct keys
	// ("1223"), rather than skipping ahead by the size of each
	// group of tied keys.
	Dense bool
}

// Validate ensures that the direction is known.
func (o *RankOptions) Validate() error { return o.Direction.Validate() }

// RankOption is an option provider for RankOptions.
type RankOption = OptionProvider[*RankOptions]

// RankDense enables dense ranking.
func RankDense() RankOption { return func(o *RankOptions) error { o.Dense = true; return nil } }

// RankDescending gives the largest key rank 1.
func RankDescending() RankOption { return RankDirection(order.Descending) }

// RankDirection sets the direction of the ordering.
func RankDirection(dir order.Direction) RankOption {
	return func(o *RankOptions) error { o.Direction = dir; return nil }
}

// RankWithOptions overrides the current configuration with the
// provided value.
func RankWithOptions(opt *RankOptions) RankOption {
	return func(o *RankOptions) error {
		if opt == nil {
			return argIsNil(true, "rank options")
		}
		*o = *opt
		return nil
	}
}
