package dupes

import (
	"context"
	"iter"

	"github.com/lguimbarda/dupbench/dupes/core"
)

// FromSlice creates a Stream that emits each element from the given slice.
// Every Emit call replays the slice from the start.
func FromSlice[T any](items []T) Stream[T] {
	return core.FromSlice(items)
}

// FromChannel creates a Stream that emits values received from ch. The
// stream is single-pass: once ch is drained a second Emit yields nothing.
// The caller is responsible for closing ch.
func FromChannel[T any](ch <-chan T) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			for {
				select {
				case <-ctx.Done():
					return
				case item, ok := <-ch:
					if !ok {
						return
					}
					if !core.Send(ctx, out, Ok(item)) {
						return
					}
				}
			}
		}()
		return out
	})
}

// FromIter creates a Stream from an iterator sequence.
func FromIter[T any](seq iter.Seq[T]) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			for item := range seq {
				if !core.Send(ctx, out, Ok(item)) {
					return
				}
			}
		}()
		return out
	})
}

// Empty creates a Stream that emits no values.
func Empty[T any]() Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		close(out)
		return out
	})
}
