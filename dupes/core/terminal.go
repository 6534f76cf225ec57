package core

import (
	"context"
)

// Terminal functions consume a stream and produce a final result.

// Slice collects all values into a slice, stopping at the first error.
func Slice[OUT any](ctx context.Context, in Stream[OUT]) ([]OUT, error) {
	// Cancel the producer if we return early on an error.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var result []OUT
	for res := range in.Emit(ctx) {
		if res.IsError() {
			return nil, res.Error()
		}
		result = append(result, res.Value())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// First returns the first value from the stream.
func First[OUT any](ctx context.Context, in Stream[OUT]) (OUT, error) {
	var zero OUT

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	res, ok := <-in.Emit(ctx)
	switch {
	case !ok:
		return zero, ErrEmptyStream
	case res.IsError():
		return zero, res.Error()
	default:
		return res.Value(), nil
	}
}
