package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the parse metric instruments.
type Metrics struct {
	parseDuration metric.Float64Histogram
	parseCount    metric.Int64Counter
	errorCount    metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with the given MeterProvider.
func NewMetrics(mp metric.MeterProvider) *Metrics {
	meter := mp.Meter(MeterName)
	m := &Metrics{}

	// Instrument creation only fails on invalid names or options; fall back to a
	// bare instrument so recording never hits a nil.
	var err error

	m.parseDuration, err = meter.Float64Histogram(
		"sqlexpr.parse.duration",
		metric.WithDescription("Duration of expression parses in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		m.parseDuration, _ = meter.Float64Histogram("sqlexpr.parse.duration")
	}

	m.parseCount, err = meter.Int64Counter(
		"sqlexpr.parse.count",
		metric.WithDescription("Total number of expression parses"),
		metric.WithUnit("{parse}"),
	)
	if err != nil {
		m.parseCount, _ = meter.Int64Counter("sqlexpr.parse.count")
	}

	m.errorCount, err = meter.Int64Counter(
		"sqlexpr.parse.error.count",
		metric.WithDescription("Total number of expression syntax errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		m.errorCount, _ = meter.Int64Counter("sqlexpr.parse.error.count")
	}

	return m
}

// RecordParse records metrics for a completed parse.
func (m *Metrics) RecordParse(ctx context.Context, success bool, duration time.Duration) {
	outcome := OutcomeSuccess
	if !success {
		outcome = OutcomeFailure
	}
	attrs := metric.WithAttributes(OutcomeAttr(outcome))
	m.parseDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	m.parseCount.Add(ctx, 1, attrs)
}

// RecordError records a syntax error by kind.
func (m *Metrics) RecordError(ctx context.Context, kind string) {
	m.errorCount.Add(ctx, 1, metric.WithAttributes(ErrorKindAttr(kind)))
}
