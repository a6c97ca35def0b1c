package jobsystem

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
)

type config struct {
	limit      int
	panicAsErr bool
	logger     *slog.Logger
	meter      metric.Meter
	onStart    func(JobInfo)
	onDone     func(JobInfo, error, time.Duration)
}

// Option configures a [System].
type Option func(*config)

func defaultConfig() config {
	return config{
		logger: slog.Default(),
	}
}

// WithLimit sets the maximum number of job computations that may run at
// the same time. Each job still gets its own goroutine at submission, and
// Submit never blocks; goroutines beyond the limit wait for a free slot
// before running their computation.
//
// A limit of zero (the default) means unlimited concurrency.
// WithLimit panics if n is negative.
func WithLimit(n int) Option {
	return func(c *config) {
		if n < 0 {
			panic("jobsystem: limit must be non-negative")
		}
		c.limit = n
	}
}

// WithPanicAsError makes [System.Poll] and [Waiter.Wait] return a fault as
// a [*JobError] instead of re-raising it with panic.
func WithPanicAsError() Option {
	return func(c *config) {
		c.panicAsErr = true
	}
}

// WithLogger sets the structured logger. The default is [slog.Default].
// Submissions, deliveries and reaps are logged at debug level; delivered
// faults at warn level.
//
// WithLogger panics if l is nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("jobsystem: WithLogger requires a non-nil logger")
	}
	return func(c *config) {
		c.logger = l
	}
}

// WithMeter sets the OpenTelemetry meter used to create the system's
// instruments. By default the global MeterProvider is used, which is a
// noop unless the application installs one.
func WithMeter(m metric.Meter) Option {
	return func(c *config) {
		c.meter = m
	}
}

// WithOnStart registers a hook invoked when a job's computation begins.
// The hook runs on the job goroutine; a panic in it is recorded as the
// job's fault.
func WithOnStart(fn func(JobInfo)) Option {
	return func(c *config) {
		c.onStart = fn
	}
}

// WithOnDone registers a hook invoked when a job's computation ends, with
// its fault (nil on success) and wall-clock duration. The hook runs on the
// job goroutine before the job is visible as finished.
func WithOnDone(fn func(JobInfo, error, time.Duration)) Option {
	return func(c *config) {
		c.onDone = fn
	}
}
