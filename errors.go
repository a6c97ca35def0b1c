package jobsystem

import "errors"

var (
	// ErrJobExited is the fault recorded for a job whose computation called
	// runtime.Goexit instead of returning.
	ErrJobExited = errors.New("jobsystem: job goroutine exited without returning")

	// ErrInvalidLimit is returned by [Config.Validate] for a negative limit.
	ErrInvalidLimit = errors.New("jobsystem: limit must be non-negative")
)
