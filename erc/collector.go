// Package erc provides a concurrency-safe error collector, used by
// streams to aggregate the errors encountered during iteration and
// report them from Close.
package erc

import (
	"reflect"
	"slices"
	"sync"

	"github.com/tychoish/lazy/ers"
)

// Collector aggregates errors. The zero value is ready to use, and
// all methods are safe for concurrent use.
type Collector struct {
	mtx   sync.Mutex
	stack ers.Stack
}

// Push adds an error to the collector. Nil errors, and error values
// that the collector already holds, are ignored. A *ers.Stack is
// added element by element.
func (c *Collector) Push(err error) {
	if err == nil {
		return
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	errs := []error{err}
	if st, ok := err.(*ers.Stack); ok {
		errs = st.Unwrap()
	}

	for _, e := range errs {
		if !c.holds(e) {
			c.stack.Push(e)
		}
	}
}

// holds compares by identity: an error that wraps err is a distinct
// error.
func (c *Collector) holds(err error) bool {
	if !reflect.TypeOf(err).Comparable() {
		return false
	}
	return slices.Contains(c.stack.Unwrap(), err)
}

// Len reports the number of distinct errors collected.
func (c *Collector) Len() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.stack.Len()
}

// Ok returns true when the collector holds no errors.
func (c *Collector) Ok() bool { return c.Len() == 0 }

// Resolve returns nil when there are no errors, the error itself
// when there is one, and an *ers.Stack otherwise.
func (c *Collector) Resolve() error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	switch c.stack.Len() {
	case 0:
		return nil
	case 1:
		return c.stack.Resolve()
	default:
		return ers.Join(c.stack.Unwrap()...)
	}
}
