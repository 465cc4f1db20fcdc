package kraken

import (
	"encoding/json"
	"fmt"
)

// Result holds exactly one of a success value or a failure. It is handed to
// the caller once and never mutated afterwards.
type Result[T any] struct {
	value T
	err   error
}

// Success wraps a value.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Failure wraps an error. A nil error is replaced so that a failure can never
// be mistaken for a success.
func Failure[T any](err error) Result[T] {
	if err == nil {
		err = &NetworkError{Reason: "unknown failure"}
	}
	return Result[T]{err: err}
}

func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

// Value returns the success value, or the zero value on failure.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure, or nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// Unwrap returns value and error in the usual Go shape.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// Map transforms a success value and passes failures through untouched.
func Map[T, U any](r Result[T], fn func(T) (U, error)) Result[U] {
	if r.err != nil {
		return Failure[U](r.err)
	}
	u, err := fn(r.value)
	if err != nil {
		return Failure[U](err)
	}
	return Success(u)
}

// Response is the success payload of a dispatched call.
type Response struct {
	// Result is the raw "result" field; nil when the exchange omitted it.
	Result json.RawMessage
	// Body is the full top-level JSON object.
	Body map[string]json.RawMessage
}

// Decode unmarshals the "result" field into v.
func (r Response) Decode(v any) error {
	if len(r.Result) == 0 {
		return fmt.Errorf("response has no result field")
	}
	if err := json.Unmarshal(r.Result, v); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}
	return nil
}

// Callback receives the outcome of an asynchronous call exactly once.
type Callback func(Result[Response])
