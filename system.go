package jobsystem

import (
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
)

// System owns a set of in-flight jobs. Each job's computation is started on
// its own goroutine when it is submitted; its outcome is delivered later on
// the goroutine that owns the System, either by [System.Poll] or by the
// job's [Waiter].
//
// A System is not safe for concurrent use. Submit, Poll, HasPending and the
// Wait methods of its waiters must all be called from one goroutine (the
// host loop). The only state job goroutines touch is each job's finished
// flag, its one-shot outcome channel and the Running counter.
//
// Example usage:
//
//	js := jobsystem.New()
//	js.SubmitThen("save", save, func() { fmt.Println("saved") })
//	for js.HasPending() {
//	    js.Poll()
//	    render()
//	}
type System struct {
	cfg  config
	sem  *Semaphore
	inst instruments

	// jobs is in submission order, minus reaped entries.
	jobs    []job
	pending int

	running   atomic.Int64
	submitted int64
	delivered int64
	faulted   int64
	reaped    int64
}

// Stats is a point-in-time snapshot of a System's counters.
type Stats struct {
	Submitted int64 // jobs submitted
	Running   int64 // computations currently executing
	Delivered int64 // jobs whose outcome was extracted (including faults)
	Faulted   int64 // deliveries that surfaced a fault
	Reaped    int64 // jobs removed by Poll
	Pending   int   // jobs submitted but not yet reaped
}

// New creates an empty [System].
func New(opts ...Option) *System {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.meter == nil {
		cfg.meter = otel.Meter(meterName)
	}

	s := &System{
		cfg:  cfg,
		inst: newInstruments(cfg.meter),
	}
	if cfg.limit > 0 {
		s.sem = NewSemaphore(cfg.limit)
	}
	return s
}

// Submit starts work on a new goroutine and returns a [Waiter] bound to it.
// No callback is registered; the job is still reaped by [System.Poll].
func (s *System) Submit(name string, work func()) *Waiter {
	checkWork(work == nil)
	j := submit(s, newVoidJob(name, nil), voidWork(work))
	return &Waiter{s: s, j: j}
}

// SubmitThen starts work on a new goroutine and registers callback to run
// on the first [System.Poll] pass that finds the job finished.
func (s *System) SubmitThen(name string, work func(), callback func()) {
	checkWork(work == nil)
	submit(s, newVoidJob(name, callback), voidWork(work))
}

// SubmitValue starts work on a new goroutine and returns a [ValueWaiter]
// through which its value can be retrieved after delivery.
func SubmitValue[T any](s *System, name string, work func() T) *ValueWaiter[T] {
	checkWork(work == nil)
	j := submit(s, newResultJob[T](name, nil), work)
	return &ValueWaiter[T]{Waiter: Waiter{s: s, j: j}, rj: j}
}

// SubmitValueThen starts work on a new goroutine and registers callback to
// receive a pointer to its value on a later [System.Poll] pass.
func SubmitValueThen[T any](s *System, name string, work func() T, callback func(*T)) {
	checkWork(work == nil)
	submit(s, newResultJob(name, callback), work)
}

func submit[T any](s *System, j *resultJob[T], work func() T) *resultJob[T] {
	s.jobs = append(s.jobs, j)
	s.pending++
	s.submitted++
	s.inst.recordSubmit(j.meta)

	s.cfg.logger.Debug("job submitted",
		slog.String("job_id", j.meta.ID.String()),
		slog.String("job_name", j.meta.Name),
	)

	s.dispatch(func() { j.run(s, work) })
	return j
}

func checkWork(isNil bool) {
	if isNil {
		panic("jobsystem: nil work function")
	}
}

// Poll makes one pass over the tracked jobs in submission order. Every job
// that has finished is delivered and then removed; jobs still running are
// left for a later pass. Poll never blocks on a running job.
//
// Jobs submitted by callbacks during the pass are examined on the next pass.
//
// If a delivered job faulted, the pass stops there. By default the fault is
// re-raised with panic and the faulted job is removed silently by the next
// Poll; with [WithPanicAsError] the job is removed and Poll returns the
// fault as a [*JobError]. Jobs later in the pass are visited next time.
func (s *System) Poll() error {
	batch := s.jobs
	s.jobs = nil

	kept := batch[:0]
	next := 0
	defer func() {
		kept = append(kept, batch[next:]...)
		clear(batch[len(kept):])
		s.jobs = append(kept, s.jobs...)
	}()

	for ; next < len(batch); next++ {
		j := batch[next]
		if !j.finished() {
			kept = append(kept, j)
			continue
		}

		err := s.deliver(j, pathPoll)
		s.reap(j)
		if err != nil {
			next++
			return err
		}
	}
	return nil
}

// HasPending reports whether any submitted job has not been reaped yet.
// A host loop typically calls Poll until HasPending returns false.
func (s *System) HasPending() bool {
	return s.pending > 0
}

// Pending returns the number of jobs submitted but not yet reaped.
func (s *System) Pending() int {
	return s.pending
}

// Stats returns a snapshot of the system's counters. Like every other
// method it must be called from the owning goroutine.
func (s *System) Stats() Stats {
	return Stats{
		Submitted: s.submitted,
		Running:   s.running.Load(),
		Delivered: s.delivered,
		Faulted:   s.faulted,
		Reaped:    s.reaped,
		Pending:   s.pending,
	}
}

// deliver runs j's delivery and applies the fault policy. Counters and logs
// are updated before a fault is re-raised.
func (s *System) deliver(j job, path string) error {
	delivered, fault := j.deliver()
	if !delivered {
		return nil
	}

	info := j.info()
	s.delivered++
	s.inst.recordDelivery(info, path, fault)

	if fault == nil {
		s.cfg.logger.Debug("job delivered",
			slog.String("job_id", info.ID.String()),
			slog.String("job_name", info.Name),
			slog.String("path", path),
			slog.Duration("elapsed", j.elapsed()),
		)
		return nil
	}

	s.faulted++
	s.cfg.logger.Warn("job faulted",
		slog.String("job_id", info.ID.String()),
		slog.String("job_name", info.Name),
		slog.String("path", path),
		slog.Duration("elapsed", j.elapsed()),
		slog.Any("fault", faultValue(fault)),
	)

	if s.cfg.panicAsErr {
		return &JobError{Job: info, Err: fault}
	}
	panic(fault)
}

func (s *System) reap(j job) {
	s.pending--
	s.reaped++

	info := j.info()
	s.cfg.logger.Debug("job reaped",
		slog.String("job_id", info.ID.String()),
		slog.String("job_name", info.Name),
	)
}

// faultValue keeps stack traces out of log records.
func faultValue(fault error) any {
	if pe, ok := fault.(*PanicError); ok {
		return pe.Value
	}
	return fault
}

// jobStarted and jobFinished run on the job goroutine.
func (s *System) jobStarted() time.Time {
	s.running.Add(1)
	return time.Now()
}

func (s *System) runOnStart(info JobInfo) {
	if s.cfg.onStart != nil {
		s.cfg.onStart(info)
	}
}

func (s *System) jobFinished(info JobInfo, fault error, elapsed time.Duration) {
	s.running.Add(-1)
	s.inst.recordDuration(info, fault, elapsed)

	if s.cfg.onDone != nil {
		s.cfg.onDone(info, fault, elapsed)
	}
}
