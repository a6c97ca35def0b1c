package jobsystem

import (
	"errors"
	"fmt"
)

// JobError wraps a delivery-time fault together with the [JobInfo] of the
// job that produced it. It is only returned when [WithPanicAsError] is set;
// otherwise the fault is re-raised as a panic.
type JobError struct {
	Job JobInfo
	Err error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("job %q failed: %v", e.Job.Name, e.Err)
}

func (e *JobError) Unwrap() error {
	return e.Err
}

// IsJobError reports whether err (or any error in its chain) is a [*JobError].
func IsJobError(err error) bool {
	if err == nil {
		return false
	}
	var je *JobError
	return errors.As(err, &je)
}

// JobOf extracts the [JobInfo] from the first [*JobError] in err's chain.
// Returns false if no JobError is found.
func JobOf(err error) (JobInfo, bool) {
	if err == nil {
		return JobInfo{}, false
	}

	var je *JobError
	if errors.As(err, &je) {
		return je.Job, true
	}
	return JobInfo{}, false
}

// CauseOf unwraps the first [*JobError] in err's chain and returns its
// underlying fault. If err is not a JobError, it is returned as-is.
// Returns nil if err is nil.
func CauseOf(err error) error {
	if err == nil {
		return nil
	}

	var je *JobError
	if errors.As(err, &je) {
		return je.Err
	}

	return err
}
