package jobsystem

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name for jobsystem metrics.
const meterName = "github.com/baxromumarov/jobsystem"

// Delivery paths, recorded as the "path" attribute.
const (
	pathPoll = "poll"
	pathWait = "wait"
)

// instruments holds the system's OTel instruments. They are safe for
// concurrent use, so the duration histogram is recorded from job
// goroutines directly.
//
// Instruments:
//   - jobsystem.job.submitted (Int64Counter): jobs submitted.
//   - jobsystem.job.delivered (Int64Counter): deliveries, with attributes
//     path ("poll" or "wait") and status ("ok" or "fault").
//   - jobsystem.job.duration (Float64Histogram): computation time in
//     seconds, with attribute status.
type instruments struct {
	submitted metric.Int64Counter
	delivered metric.Int64Counter
	duration  metric.Float64Histogram
}

func newInstruments(meter metric.Meter) instruments {
	// On error the API hands back noop instruments, so the errors are
	// dropped.
	submitted, _ := meter.Int64Counter(
		"jobsystem.job.submitted",
		metric.WithDescription("Total number of jobs submitted"),
		metric.WithUnit("{job}"),
	)
	delivered, _ := meter.Int64Counter(
		"jobsystem.job.delivered",
		metric.WithDescription("Total number of job deliveries"),
		metric.WithUnit("{delivery}"),
	)
	duration, _ := meter.Float64Histogram(
		"jobsystem.job.duration",
		metric.WithDescription("Duration of job computations in seconds"),
		metric.WithUnit("s"),
	)

	return instruments{
		submitted: submitted,
		delivered: delivered,
		duration:  duration,
	}
}

func (in instruments) recordSubmit(info JobInfo) {
	in.submitted.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("job_name", info.Name)),
	)
}

func (in instruments) recordDelivery(info JobInfo, path string, fault error) {
	in.delivered.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("job_name", info.Name),
		attribute.String("path", path),
		attribute.String("status", status(fault)),
	))
}

func (in instruments) recordDuration(info JobInfo, fault error, elapsed time.Duration) {
	in.duration.Record(context.Background(), elapsed.Seconds(), metric.WithAttributes(
		attribute.String("job_name", info.Name),
		attribute.String("status", status(fault)),
	))
}

func status(fault error) string {
	if fault != nil {
		return "fault"
	}
	return "ok"
}
