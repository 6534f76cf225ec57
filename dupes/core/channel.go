package core

import (
	"context"
	"iter"
)

// Emitter is a function that produces a channel of Results. It is the
// lowest-level way to build a Stream: every source in this module is an
// Emitter underneath.
type Emitter[OUT any] func(context.Context) <-chan Result[OUT]

// Emit wraps a channel-producing function as a Stream.
func Emit[OUT any](emitter func(context.Context) <-chan Result[OUT]) Emitter[OUT] {
	return emitter
}

func (e Emitter[OUT]) Emit(ctx context.Context) <-chan Result[OUT] {
	return e(ctx)
}

func (e Emitter[OUT]) Collect(ctx context.Context) []Result[OUT] {
	return Collect(ctx, e)
}

func (e Emitter[OUT]) All(ctx context.Context) iter.Seq[Result[OUT]] {
	return All(ctx, e)
}

// Send delivers res on out unless ctx is done first. It reports whether
// the send happened.
func Send[OUT any](ctx context.Context, out chan<- Result[OUT], res Result[OUT]) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- res:
		return true
	}
}
