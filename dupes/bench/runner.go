package bench

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/destel/rill"
	"github.com/lguimbarda/dupbench/dupes/detect"
	"github.com/lguimbarda/dupbench/dupes/gen"
	"github.com/lguimbarda/dupbench/dupes/observe"
)

// Measurement is the outcome of one detector on one Case.
type Measurement struct {
	Case
	Detector string          `json:"detector"`
	Strategy detect.Strategy `json:"strategy"`
	Library  detect.Library  `json:"library"`
	Baseline bool            `json:"baseline"`

	// Result is the detector's answer for the generated array.
	Result     bool `json:"result"`
	Iterations int  `json:"iterations"`
	Samples    int  `json:"samples"`

	MeanNs float64 `json:"mean_ns"`
	MinNs  float64 `json:"min_ns"`
	MaxNs  float64 `json:"max_ns"`
	P50Ns  float64 `json:"p50_ns"`
	P90Ns  float64 `json:"p90_ns"`
	P99Ns  float64 `json:"p99_ns"`

	AllocsPerOp float64 `json:"allocs_per_op"`
	ItemsPerSec float64 `json:"items_per_sec"`
	// Ratio is MeanNs divided by the baseline's MeanNs for the same Case.
	Ratio float64 `json:"ratio"`
}

func (m Measurement) labels() observe.Labels {
	return observe.Labels{
		Strategy: m.Strategy.String(),
		Library:  string(m.Library),
		Policy:   m.Policy.String(),
		Length:   m.Length,
	}
}

// job is a generated Case waiting to be timed.
type job struct {
	index int
	c     Case
	items []int
}

// caseSeed derives a per-Case seed so that a Case gets the same array no
// matter how many Cases run or in which order. Zero would make the
// generator pick a random seed, so it is skipped.
func caseSeed(base uint32, index int) uint32 {
	seed := base ^ (uint32(index+1) * 0x9e3779b9)
	if seed == 0 {
		seed = 1
	}
	return seed
}

// Run measures every detector on every Case and returns the measurements
// ordered by Case, then by detector. A Case whose detectors disagree
// fails the run with detect.ErrDisagreement.
func Run(ctx context.Context, cases []Case, opts ...Option) ([]Measurement, error) {
	cfg := applyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	detectors := detect.Core[int]()
	if cfg.Linq {
		detectors = detect.All[int]()
	}

	jobs, err := prepare(cases, detectors, cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([][]Measurement, len(jobs))
	err = rill.ForEach(rill.FromSlice(jobs, nil), cfg.Parallelism, func(j job) error {
		ms, err := timeJob(ctx, j, detectors, cfg)
		if err != nil {
			return fmt.Errorf("case %v: %w", j.c, err)
		}
		results[j.index] = ms
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, j := range jobs {
		countAllocs(ctx, j, detectors, results[j.index], cfg)
	}

	var out []Measurement
	for _, ms := range results {
		out = append(out, ms...)
	}
	cfg.Logger.Info("run complete",
		slog.Int("cases", len(jobs)),
		slog.Int("detectors", len(detectors)),
		slog.Int("parallelism", cfg.Parallelism),
		slog.Duration("elapsed", time.Since(start)))
	return out, nil
}

// prepare generates every Case and checks that the detectors agree on it.
func prepare(cases []Case, detectors []detect.Detector[int], cfg Config) ([]job, error) {
	jobs := make([]job, len(cases))
	for i, c := range cases {
		items, err := gen.New(caseSeed(cfg.Seed, i)).Generate(c.Length, c.Policy)
		if err != nil {
			return nil, fmt.Errorf("case %v: %w", c, err)
		}
		if _, err := detect.AgreeAmong(items, detectors); err != nil {
			return nil, fmt.Errorf("case %v: %w", c, err)
		}
		jobs[i] = job{index: i, c: c, items: items}
	}
	return jobs, nil
}

func timeJob(ctx context.Context, j job, detectors []detect.Detector[int], cfg Config) ([]Measurement, error) {
	ms := make([]Measurement, 0, len(detectors))
	var baselineMean float64
	for _, d := range detectors {
		m := Measurement{
			Case:     j.c,
			Detector: d.Name(),
			Strategy: d.Strategy,
			Library:  d.Library,
			Baseline: d.Baseline,
			Samples:  cfg.Samples,
		}

		t, err := sample(ctx, d.Fn, j.items, m.labels(), cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Name(), err)
		}
		m.Result = t.result
		m.Iterations = t.iterations
		m.MeanNs, m.MinNs, m.MaxNs = t.mean, t.min, t.max
		m.P50Ns, m.P90Ns, m.P99Ns = t.p50, t.p90, t.p99
		if t.mean > 0 {
			m.ItemsPerSec = float64(j.c.Length) / (t.mean / float64(time.Second))
		}
		if d.Baseline {
			baselineMean = t.mean
		}
		ms = append(ms, m)

		cfg.Logger.Debug("detector measured",
			slog.String("case", j.c.String()),
			slog.String("detector", d.Name()),
			slog.Float64("mean_ns", t.mean),
			slog.Int("iterations", t.iterations))
	}

	if baselineMean > 0 {
		for i := range ms {
			ms[i].Ratio = ms[i].MeanNs / baselineMean
		}
	}
	return ms, nil
}

// countAllocs fills AllocsPerOp. The runtime's allocation counters are
// process-wide, so this runs after all timing is done, one Case at a time.
func countAllocs(ctx context.Context, j job, detectors []detect.Detector[int], ms []Measurement, cfg Config) {
	for i, d := range detectors {
		allocs := testing.AllocsPerRun(cfg.AllocRuns, func() {
			d.Fn(j.items)
		})
		ms[i].AllocsPerOp = allocs
		cfg.Recorder.RecordAllocs(ctx, ms[i].labels(), allocs)
	}
}
