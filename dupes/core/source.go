package core

import "context"

// maxSliceBuffer caps the channel buffer FromSlice allocates.
const maxSliceBuffer = 512

// FromSlice creates a Stream that emits each element of items. Every Emit
// call replays the slice from the start.
func FromSlice[OUT any](items []OUT) Stream[OUT] {
	return Emit(func(ctx context.Context) <-chan Result[OUT] {
		// Small slices fit in the buffer, no goroutine needed.
		if len(items) <= maxSliceBuffer {
			out := make(chan Result[OUT], len(items))
			for _, item := range items {
				out <- Ok(item)
			}
			close(out)
			return out
		}

		out := make(chan Result[OUT], maxSliceBuffer)
		go func() {
			defer close(out)
			for _, item := range items {
				if !Send(ctx, out, Ok(item)) {
					return
				}
			}
		}()
		return out
	})
}
