// package core defines the stream abstraction the detectors and the
// result store share: a Stream produces Results over a channel, and
// terminal functions drain it into plain Go values.
//
// NOTE: this package should have no dependencies outside the standard
// library, including other dupes packages.
package core

import (
	"context"
	"iter"
)

// Stream represents a flow of data produced on demand. Each call to Emit
// starts a new pass; whether a second pass sees the same data depends on
// the source. Streams built over channels or database cursors are
// single-pass, so consumers that need to enumerate twice must materialize
// the data first (see Slice).
type Stream[OUT any] interface {
	Emit(context.Context) <-chan Result[OUT]

	Collect(context.Context) []Result[OUT]
	All(context.Context) iter.Seq[Result[OUT]]
}

// Collect gathers every Result, values and errors alike.
func Collect[OUT any](ctx context.Context, stream Stream[OUT]) []Result[OUT] {
	var results []Result[OUT]
	for res := range stream.Emit(ctx) {
		results = append(results, res)
	}
	return results
}

// All returns an iterator over the stream's Results. Breaking out of the
// loop stops reading but does not cancel the producer; callers that stop
// early should cancel ctx.
func All[OUT any](ctx context.Context, stream Stream[OUT]) iter.Seq[Result[OUT]] {
	return func(yield func(Result[OUT]) bool) {
		for res := range stream.Emit(ctx) {
			if !yield(res) {
				return
			}
		}
	}
}
