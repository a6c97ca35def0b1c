package jobsystem

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// JobInfo identifies a submitted job. It is passed to the hooks registered
// via [WithOnStart] and [WithOnDone] and carried by [*JobError].
type JobInfo struct {
	// ID is a time-ordered UUIDv7 assigned at submission.
	ID uuid.UUID

	// Name is the caller-supplied label. Names need not be unique.
	Name string
}

func newJobInfo(name string) JobInfo {
	return JobInfo{
		ID:   uuid.Must(uuid.NewV7()),
		Name: name,
	}
}

// job is a unit of work tracked by a [System].
//
// finished is safe to call from any goroutine. deliver must only be called
// from the goroutine that owns the System.
type job interface {
	info() JobInfo
	finished() bool

	// deliver extracts the outcome, blocking until the computation is done,
	// and invokes the callback with it. Only the first call does anything;
	// delivered reports whether this call was that one. A fault stored by the
	// computation is returned instead of running the callback.
	deliver() (delivered bool, fault error)
	elapsed() time.Duration
}

// outcome is what a job goroutine hands to the consumer: either a value or
// a fault, plus how long the computation ran.
type outcome[T any] struct {
	val     T
	fault   error
	elapsed time.Duration
}

// resultJob runs work func() T and carries its value to a func(*T) callback.
// Void jobs are resultJob[struct{}] with adapters on both ends.
type resultJob[T any] struct {
	meta JobInfo
	done atomic.Bool

	// ch receives exactly one outcome, sent before done is set.
	ch chan outcome[T]

	// Consumer-goroutine state.
	taken    bool
	value    T
	took     time.Duration
	callback func(*T)
}

func newResultJob[T any](name string, callback func(*T)) *resultJob[T] {
	return &resultJob[T]{
		meta:     newJobInfo(name),
		ch:       make(chan outcome[T], 1),
		callback: callback,
	}
}

func newVoidJob(name string, callback func()) *resultJob[struct{}] {
	var cb func(*struct{})
	if callback != nil {
		cb = func(*struct{}) { callback() }
	}
	return newResultJob(name, cb)
}

func voidWork(work func()) func() struct{} {
	return func() struct{} {
		work()
		return struct{}{}
	}
}

func (j *resultJob[T]) info() JobInfo { return j.meta }

func (j *resultJob[T]) finished() bool { return j.done.Load() }

func (j *resultJob[T]) elapsed() time.Duration { return j.took }

// run executes work on the calling goroutine. The deferred block is the
// completion guard: whichever way work exits, the outcome is published and
// then the finished flag is set.
func (j *resultJob[T]) run(s *System, work func() T) {
	var (
		o        outcome[T]
		returned bool
	)

	start := s.jobStarted()
	defer func() {
		if !returned {
			if r := recover(); r != nil {
				o.fault = newPanicError(r)
			} else {
				o.fault = ErrJobExited
			}
		}
		o.elapsed = time.Since(start)

		s.jobFinished(j.meta, o.fault, o.elapsed)

		j.ch <- o
		j.done.Store(true)
	}()

	s.runOnStart(j.meta)
	o.val = work()
	returned = true
}

func (j *resultJob[T]) deliver() (bool, error) {
	if j.taken {
		return false, nil
	}

	o := <-j.ch
	j.taken = true
	j.took = o.elapsed

	if o.fault != nil {
		return true, o.fault
	}

	j.value = o.val
	if j.callback != nil {
		j.callback(&j.value)
	}
	return true, nil
}
