// Package order provides comparison and equality functions used to
// group and rank the elements of sequences.
//
// Comparators are plain function values: Compare is a three-way
// comparison, Equality is a two-way equivalence check, and LessThan
// is the strict ordering used by older sorting APIs. Conversions
// between them are provided as methods.
package order

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/tychoish/lazy/ers"
)

// Compare describes a three-way comparison: negative when a sorts
// before b, zero when they are equivalent, and positive when a sorts
// after b.
type Compare[T any] func(a, b T) int

// Equality reports whether two values are equivalent.
type Equality[T any] func(a, b T) bool

// LessThan describes a strict less than operation.
type LessThan[T any] func(a, b T) bool

// Native compares values of any type that supports the < operator,
// using the standard library's ordering (NaNs sort first).
func Native[T cmp.Ordered](a, b T) int { return cmp.Compare(a, b) }

// Equal is the equality of the == operator.
func Equal[T comparable](a, b T) bool { return a == b }

// Time compares time values by instant.
func Time(a, b time.Time) int { return a.Compare(b) }

// Custom converts types that implement a Compare method.
func Custom[T interface{ Compare(T) int }](a, b T) int { return a.Compare(b) }

// Converter produces a comparator for an arbitrary type by projecting
// it to an ordered type.
func Converter[T any, S cmp.Ordered](converter func(T) S) Compare[T] {
	return func(a, b T) int { return cmp.Compare(converter(a), converter(b)) }
}

// Reverse wraps an existing comparator and reverses it's direction.
func Reverse[T any](fn Compare[T]) Compare[T] { return func(a, b T) int { return fn(b, a) } }

// Directed returns the comparator unchanged for Ascending, and
// reversed for Descending.
func Directed[T any](fn Compare[T], dir Direction) Compare[T] {
	if dir == Descending {
		return Reverse(fn)
	}
	return fn
}

// Equality converts the comparator into an equality check: two
// values are equal when they compare as zero.
func (fn Compare[T]) Equality() Equality[T] { return func(a, b T) bool { return fn(a, b) == 0 } }

// LessThan converts the comparator into a strict ordering.
func (fn Compare[T]) LessThan() LessThan[T] { return func(a, b T) bool { return fn(a, b) < 0 } }

// Compare converts a strict ordering into a three-way comparison.
func (fn LessThan[T]) Compare() Compare[T] {
	return func(a, b T) int {
		switch {
		case fn(a, b):
			return -1
		case fn(b, a):
			return 1
		default:
			return 0
		}
	}
}

// Direction selects the order in which keys are sorted.
type Direction int8

const (
	// Ascending sorts the smallest key first. It is the zero value.
	Ascending Direction = iota
	// Descending sorts the largest key first.
	Descending
)

// ParseDirection converts "asc"/"ascending" or "desc"/"descending"
// (case insensitive) to a Direction.
func ParseDirection(in string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case "asc", "ascending", "":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("direction %q: %w", in, ers.ErrInvalidInput)
	}
}

// Validate returns an error for values other than Ascending and
// Descending.
func (d Direction) Validate() error {
	return ers.Whenf(d != Ascending && d != Descending, "direction %d: %w", d, ers.ErrInvalidInput)
}

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return fmt.Sprintf("Direction(%d)", d)
	}
}
