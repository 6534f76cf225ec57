package bench

import (
	"context"
	"math"
	"time"

	"github.com/lguimbarda/dupbench/dupes/detect"
	"github.com/lguimbarda/dupbench/dupes/observe"
	"github.com/valyala/histogram"
)

// timing is the outcome of sampling one detector on one array.
type timing struct {
	result     bool
	iterations int
	mean       float64
	min        float64
	max        float64
	p50        float64
	p90        float64
	p99        float64
}

// calibrate doubles the number of calls until one batch takes at least
// the sample target.
func calibrate(fn detect.Func[int], items []int, cfg Config) int {
	n := 1
	for n < cfg.MaxIterations {
		start := time.Now()
		for i := 0; i < n; i++ {
			fn(items)
		}
		if time.Since(start) >= cfg.SampleTarget {
			break
		}
		n *= 2
	}
	return min(n, cfg.MaxIterations)
}

// sample times fn over items. Every sample is n calls; the recorded value
// is nanoseconds per call.
func sample(ctx context.Context, fn detect.Func[int], items []int, labels observe.Labels, cfg Config) (timing, error) {
	var t timing
	for i := 0; i < cfg.Warmup; i++ {
		t.result = fn(items)
	}

	n := calibrate(fn, items, cfg)
	h := histogram.GetFast()
	defer histogram.PutFast(h)

	t.iterations = n
	t.min = math.Inf(1)
	var sum float64
	for s := 0; s < cfg.Samples; s++ {
		if err := ctx.Err(); err != nil {
			return timing{}, err
		}

		start := time.Now()
		for i := 0; i < n; i++ {
			t.result = fn(items)
		}
		ns := float64(time.Since(start).Nanoseconds()) / float64(n)

		h.Update(ns)
		cfg.Recorder.RecordSample(ctx, labels, ns)
		sum += ns
		t.min = min(t.min, ns)
		t.max = max(t.max, ns)
	}

	t.mean = sum / float64(cfg.Samples)
	t.p50 = h.Quantile(0.5)
	t.p90 = h.Quantile(0.9)
	t.p99 = h.Quantile(0.99)
	return t, nil
}
