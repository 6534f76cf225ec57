// Package dupes compares strategies for answering one question about a
// sequence: does any value occur twice?
//
// This package is the primary user-facing API. It re-exports the four
// detectors from dupes/detect and the stream sources the stream-based
// detectors consume. The generator lives in dupes/gen and the benchmark
// harness in dupes/bench.
package dupes

import (
	"context"

	"github.com/lguimbarda/dupbench/dupes/core"
	"github.com/lguimbarda/dupbench/dupes/detect"
)

// Type aliases for core stream abstractions.
type (
	// Result is one item of a stream: a value or an error.
	Result[T any] = core.Result[T]

	// Stream is a flow of data produced on demand.
	Stream[T any] = core.Stream[T]

	// Emitter produces a channel of Results and implements Stream.
	Emitter[T any] = core.Emitter[T]

	// Strategy names one of the four duplicate-detection algorithms.
	Strategy = detect.Strategy
)

// The four strategies.
const (
	EarlyExitSet         = detect.EarlyExitSet
	EarlyExitExistential = detect.EarlyExitExistential
	GroupCount           = detect.GroupCount
	CountDistinct        = detect.CountDistinct
)

// HasDuplicate reports whether items contains two equal values, using the
// baseline early-exit set strategy.
func HasDuplicate[T comparable](items []T) bool {
	return detect.UsingSetLoop(items)
}

// HasDuplicateWith reports whether items contains two equal values, using
// the given strategy.
func HasDuplicateWith[T comparable](strategy Strategy, items []T) (bool, error) {
	fn, err := detect.For[T](strategy)
	if err != nil {
		return false, err
	}
	return fn(items), nil
}

// StreamHasDuplicate runs the given strategy over a stream. Strategies that
// enumerate their input twice materialize the stream first.
func StreamHasDuplicate[T comparable](ctx context.Context, strategy Strategy, in Stream[T]) (bool, error) {
	return detect.Stream(ctx, strategy, in)
}

// Ok creates a successful Result containing the given value.
func Ok[T any](value T) Result[T] {
	return core.Ok(value)
}

// Err creates an error Result.
func Err[T any](err error) Result[T] {
	return core.Err[T](err)
}

// Emit creates an Emitter from a channel-producing function.
func Emit[T any](emitter func(context.Context) <-chan Result[T]) Emitter[T] {
	return core.Emit(emitter)
}

// Slice collects all stream values into a slice.
func Slice[T any](ctx context.Context, in Stream[T]) ([]T, error) {
	return core.Slice(ctx, in)
}
