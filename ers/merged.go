package ers

import "strings"

// Stack is the error type returned by Join when more than one
// non-nil error is present. It supports errors.Is and errors.As
// through the multi-error Unwrap form.
type Stack struct {
	errs []error
}

// Join collects the non-nil errors in its arguments. Join returns nil
// if there are no errors, the error itself if there is exactly one,
// and a *Stack otherwise. Nested stacks are flattened.
func Join(errs ...error) error {
	s := &Stack{}
	s.Add(errs...)
	return s.Resolve()
}

// Add pushes errors onto the stack, skipping nil values.
func (s *Stack) Add(errs ...error) {
	for _, err := range errs {
		s.Push(err)
	}
}

// Push adds a single error to the stack.
func (s *Stack) Push(err error) {
	switch werr := err.(type) {
	case nil:
		return
	case *Stack:
		if werr != nil {
			s.errs = append(s.errs, werr.errs...)
		}
	default:
		s.errs = append(s.errs, err)
	}
}

// Len returns the number of errors in the stack.
func (s *Stack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.errs)
}

// Resolve returns nil for an empty stack, the only error of a stack
// with one element, and the stack itself otherwise.
func (s *Stack) Resolve() error {
	switch s.Len() {
	case 0:
		return nil
	case 1:
		return s.errs[0]
	default:
		return s
	}
}

// Unwrap provides access to the constituent errors, in the order
// that they were added.
func (s *Stack) Unwrap() []error { return s.errs }

func (s *Stack) Error() string {
	if s.Len() == 0 {
		return "<nil>"
	}

	parts := make([]string, 0, len(s.errs))
	for _, err := range s.errs {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}
