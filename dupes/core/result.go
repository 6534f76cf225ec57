package core

import "errors"

// Result represents one item of a stream. It is either a value or an
// error; errors do not terminate the stream by themselves, terminal
// functions decide what to do with them.
type Result[OUT any] struct {
	value OUT
	err   error
}

// Ok creates a successful Result containing the given value.
func Ok[OUT any](value OUT) Result[OUT] {
	return Result[OUT]{value: value}
}

// Err creates an error Result.
func Err[OUT any](err error) Result[OUT] {
	var zero OUT
	return Result[OUT]{value: zero, err: err}
}

// ErrEmptyStream is returned by First when the stream produced nothing.
var ErrEmptyStream = errors.New("stream is empty")

// IsValue returns true if this Result contains a successful value.
func (r Result[OUT]) IsValue() bool {
	return r.err == nil
}

// IsError returns true if this Result carries an error.
func (r Result[OUT]) IsError() bool {
	return r.err != nil
}

// Value returns the contained value, or the zero value for errors.
func (r Result[OUT]) Value() OUT {
	return r.value
}

// Error returns the error, or nil for values.
func (r Result[OUT]) Error() error {
	return r.err
}

// Unwrap returns the value and error together.
func (r Result[OUT]) Unwrap() (OUT, error) {
	return r.value, r.err
}
