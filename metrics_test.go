package jobsystem

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func setupTestMeter() (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	return reader, mp
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumWhere adds up the data points of an Int64 sum whose attributes
// contain every key/value in match.
func sumWhere(t *testing.T, m *metricdata.Metrics, match ...attribute.KeyValue) int64 {
	t.Helper()
	require.NotNil(t, m)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected Sum[int64], got %T", m.Data)

	var total int64
	for _, dp := range sum.DataPoints {
		matched := true
		for _, kv := range match {
			v, found := dp.Attributes.Value(kv.Key)
			if !found || v.Emit() != kv.Value.Emit() {
				matched = false
				break
			}
		}
		if matched {
			total += dp.Value
		}
	}
	return total
}

func TestMetricsRecordLifecycle(t *testing.T) {
	reader, mp := setupTestMeter()
	js := New(
		WithLogger(quietLogger()),
		WithMeter(mp.Meter("test")),
		WithPanicAsError(),
	)

	w := SubmitValue(js, "waited", func() int { return 1 })
	js.SubmitThen("polled", func() {}, func() {})
	bad := js.Submit("bad", func() { panic("x") })

	require.NoError(t, w.Wait())
	require.Error(t, bad.Wait())
	pollUntilIdle(t, js)

	rm := collectMetrics(t, reader)

	submitted := findMetric(rm, "jobsystem.job.submitted")
	assert.Equal(t, int64(3), sumWhere(t, submitted))

	delivered := findMetric(rm, "jobsystem.job.delivered")
	assert.Equal(t, int64(3), sumWhere(t, delivered))
	assert.Equal(t, int64(2), sumWhere(t, delivered, attribute.String("path", "wait")))
	assert.Equal(t, int64(1), sumWhere(t, delivered, attribute.String("path", "poll")))
	assert.Equal(t, int64(1), sumWhere(t, delivered,
		attribute.String("status", "fault"), attribute.String("job_name", "bad")))

	duration := findMetric(rm, "jobsystem.job.duration")
	require.NotNil(t, duration)
	hist, ok := duration.Data.(metricdata.Histogram[float64])
	require.True(t, ok, "expected Histogram[float64], got %T", duration.Data)

	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(3), count)
}

func TestDefaultMeterIsNoop(t *testing.T) {
	js := New(WithLogger(quietLogger()))
	js.Submit("noop", func() {})
	pollUntilIdle(t, js)
	assert.Equal(t, int64(1), js.Stats().Delivered)
}
