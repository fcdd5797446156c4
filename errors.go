package lazy

import "github.com/tychoish/lazy/ers"

// ErrInvalidInput is at the root of all errors returned by the
// operator constructors when a required argument is missing.
const ErrInvalidInput ers.Error = ers.ErrInvalidInput

func argIsNil(isNil bool, name string) error {
	return ers.Whenf(isNil, "%s must not be nil: %w", name, ErrInvalidInput)
}
