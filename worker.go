package lazy

import "context"

// Worker represents a deferred, blocking operation that produces an
// error.
type Worker func(context.Context) error

// Run executes the worker.
func (wf Worker) Run(ctx context.Context) error { return wf(ctx) }
