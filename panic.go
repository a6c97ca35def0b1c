package jobsystem

import (
	"fmt"
	"runtime"
)

// PanicError wraps a recovered panic value together with the goroutine
// stack trace captured inside the job goroutine at the point of the panic.
//
// A PanicError is stored with the job's outcome and surfaced only when the
// job is delivered: re-raised via panic from [System.Poll] or [Waiter.Wait],
// or returned wrapped in a [*JobError] when [WithPanicAsError] is set.
type PanicError struct {
	// Value is the original value passed to panic().
	Value any

	// Stack is the job goroutine's stack trace at the point of panic.
	Stack string
}

// Error returns a human-readable representation of the panic,
// including the value and the full stack trace.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}

// Unwrap returns the panic value if it is an error, so errors.Is and
// errors.As see through a job that panicked with an error value.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func newPanicError(v any) *PanicError {
	// 8 KiB is enough for most stack traces. runtime.Stack truncates
	// gracefully if the buffer is too small.
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{
		Value: v,
		Stack: string(buf[:n]),
	}
}
