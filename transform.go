package lazy

import "context"

// Transform is a function type that converts T objects into objects
// of type O.
type Transform[T any, O any] func(context.Context, T) (O, error)

// Converter builds a Transform function out of an equivalent function
// that doesn't take a context or return an error.
func Converter[T any, O any](op func(T) O) Transform[T, O] {
	return func(_ context.Context, in T) (O, error) { return op(in), nil }
}

// ConverterErr constructs a Transform function from an analogous
// function that does not take a context.
func ConverterErr[T any, O any](op func(T) (O, error)) Transform[T, O] {
	return func(_ context.Context, in T) (O, error) { return op(in) }
}

// Stream applies the transform to every element of the input stream,
// serially and lazily. An error from the transform ends the output
// stream and is reported by its Close method. Closing the output
// stream closes the input stream.
func (mpf Transform[T, O]) Stream(st *Stream[T]) *Stream[O] {
	return derive(st, func(upstream Generator[T]) Generator[O] {
		return func(ctx context.Context) (out O, _ error) {
			item, err := upstream(ctx)
			if err != nil {
				return out, err
			}
			return mpf(ctx, item)
		}
	})
}

// Run executes the transform function with the provided input.
func (mpf Transform[T, O]) Run(ctx context.Context, in T) (O, error) { return mpf(ctx, in) }
