// Package observe exports detector timings as OpenTelemetry metrics.
//
// The harness records one histogram observation per timing sample. Wire
// a real MeterProvider to ship them anywhere the OTel SDK can export to;
// the default is a noop meter.
package observe

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// ScopeName is the instrumentation scope the instruments are created under.
const ScopeName = "github.com/lguimbarda/dupbench/dupes"

// Metric names.
const (
	DurationMetric = "dupes.detect.duration"
	SamplesMetric  = "dupes.detect.samples"
	AllocsMetric   = "dupes.detect.allocs"
)

// Labels identify what a sample measured.
type Labels struct {
	Strategy string
	Library  string
	Policy   string
	Length   int
}

func (l Labels) attributes() metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("strategy", l.Strategy),
		attribute.String("library", l.Library),
		attribute.String("policy", l.Policy),
		attribute.Int("length", l.Length),
	)
}

// Instruments holds the OTel instruments for detector measurements.
type Instruments struct {
	duration metric.Float64Histogram
	samples  metric.Int64Counter
	allocs   metric.Float64Histogram
}

// New creates the instruments on meter.
func New(meter metric.Meter) (*Instruments, error) {
	duration, err := meter.Float64Histogram(DurationMetric,
		metric.WithDescription("time per detector call"),
		metric.WithUnit("ns"))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", DurationMetric, err)
	}
	samples, err := meter.Int64Counter(SamplesMetric,
		metric.WithDescription("count of timing samples taken"))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", SamplesMetric, err)
	}
	allocs, err := meter.Float64Histogram(AllocsMetric,
		metric.WithDescription("heap allocations per detector call"))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", AllocsMetric, err)
	}
	return &Instruments{duration: duration, samples: samples, allocs: allocs}, nil
}

// Noop returns instruments backed by the noop meter provider.
func Noop() *Instruments {
	ins, err := New(noop.NewMeterProvider().Meter(ScopeName))
	if err != nil {
		// The noop meter never fails.
		panic(err)
	}
	return ins
}

// RecordSample records one timing sample in nanoseconds per call.
func (i *Instruments) RecordSample(ctx context.Context, labels Labels, nsPerOp float64) {
	opt := labels.attributes()
	i.duration.Record(ctx, nsPerOp, opt)
	i.samples.Add(ctx, 1, opt)
}

// RecordAllocs records the allocations per call measured for a detector.
func (i *Instruments) RecordAllocs(ctx context.Context, labels Labels, allocsPerOp float64) {
	i.allocs.Record(ctx, allocsPerOp, labels.attributes())
}
