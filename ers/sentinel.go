package ers

// ErrInvalidInput indicates malformed input, and is at the root of
// every error returned when an operator is constructed with a
// missing source, projection, predicate, or comparer. These errors
// are not retriable.
const ErrInvalidInput Error = Error("invalid input")

// ErrContainerClosed is returned for operations against a stream
// that has been closed or finished.
const ErrContainerClosed Error = Error("container is closed")
