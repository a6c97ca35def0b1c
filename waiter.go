package jobsystem

// Waiter is a handle to one submitted job. It lets the owning goroutine
// force delivery without waiting for a [System.Poll] pass.
//
// A Waiter refers to the job itself, not to a slot in the System, so it can
// be copied freely and stays usable after the job has been reaped.
type Waiter struct {
	s *System
	j job
}

// Wait blocks until the job's computation finishes and then delivers it on
// the calling goroutine, running its callback if one is registered. If the
// job was already delivered, by an earlier Wait or by Poll, Wait returns nil
// at once.
//
// A fault in the computation is handled as in [System.Poll]: re-raised with
// panic, or returned as a [*JobError] when [WithPanicAsError] is set.
// The job itself stays tracked until a Poll reaps it.
//
// Wait must be called from the goroutine that owns the System.
func (w *Waiter) Wait() error {
	if w == nil || w.j == nil {
		return nil
	}
	return w.s.deliver(w.j, pathWait)
}

// Finished reports whether the job's computation has returned. It never
// blocks, and a true result means Wait will not block either.
func (w *Waiter) Finished() bool {
	return w != nil && w.j != nil && w.j.finished()
}

// Info returns the identity of the job behind w.
func (w *Waiter) Info() JobInfo {
	if w == nil || w.j == nil {
		return JobInfo{}
	}
	return w.j.info()
}

// ValueWaiter is a [Waiter] for a job that produces a value of type T.
type ValueWaiter[T any] struct {
	Waiter
	rj *resultJob[T]
}

// Result returns the job's value. It is only meaningful once the job has
// been delivered, by [Waiter.Wait] or by a Poll pass; before that, or if
// the job faulted, it returns the zero value of T.
func (w *ValueWaiter[T]) Result() T {
	if w == nil || w.rj == nil {
		var zero T
		return zero
	}
	return w.rj.value
}
