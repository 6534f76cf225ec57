package detect

import (
	"context"
	"fmt"
	"iter"

	"github.com/lguimbarda/dupbench/dupes/core"
)

// Stream runs a strategy over a stream instead of a slice. The early-exit
// strategies stop reading, and cancel the producer, at the first
// collision. GroupCount reads the stream once. CountDistinct needs its
// input twice, and a stream may not replay, so it collects the stream
// into a slice first.
func Stream[T comparable](ctx context.Context, s Strategy, in core.Stream[T]) (bool, error) {
	switch s {
	case EarlyExitSet:
		return streamSetLoop(ctx, in)
	case EarlyExitExistential:
		return streamSetAny(ctx, in)
	case GroupCount:
		return streamGroupBy(ctx, in)
	case CountDistinct:
		items, err := core.Slice(ctx, in)
		if err != nil {
			return false, err
		}
		return UsingDistinct(items), nil
	default:
		return false, fmt.Errorf("%w: %v", ErrUnknownStrategy, s)
	}
}

func streamSetLoop[T comparable](ctx context.Context, in core.Stream[T]) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	seen := make(map[T]struct{})
	for res := range in.Emit(ctx) {
		if res.IsError() {
			return false, res.Error()
		}
		if _, ok := seen[res.Value()]; ok {
			return true, nil
		}
		seen[res.Value()] = struct{}{}
	}
	return false, ctx.Err()
}

func streamSetAny[T comparable](ctx context.Context, in core.Stream[T]) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	seen := make(map[T]struct{})
	found, err := someResult(in.All(ctx), func(item T) bool {
		if _, ok := seen[item]; ok {
			return true
		}
		seen[item] = struct{}{}
		return false
	})
	if err != nil || found {
		return found, err
	}
	return false, ctx.Err()
}

func streamGroupBy[T comparable](ctx context.Context, in core.Stream[T]) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	groups := make(map[T][]T)
	for res := range in.Emit(ctx) {
		if res.IsError() {
			return false, res.Error()
		}
		groups[res.Value()] = append(groups[res.Value()], res.Value())
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	for _, group := range groups {
		if len(group) > 1 {
			return true, nil
		}
	}
	return false, nil
}

// someResult is lo.SomeBy over a sequence of Results.
func someResult[T any](seq iter.Seq[core.Result[T]], predicate func(T) bool) (bool, error) {
	var (
		found bool
		err   error
	)
	seq(func(res core.Result[T]) bool {
		if res.IsError() {
			err = res.Error()
			return false
		}
		if predicate(res.Value()) {
			found = true
			return false
		}
		return true
	})
	return found, err
}
