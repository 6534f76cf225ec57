package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/lguimbarda/dupbench/dupes/observe"
)

// Defaults for Config.
const (
	DefaultSeed          = 0x5eed
	DefaultSamples       = 15
	DefaultWarmup        = 3
	DefaultSampleTarget  = 2 * time.Millisecond
	DefaultMaxIterations = 1 << 24
	DefaultAllocRuns     = 10
)

// ErrInvalidConfig is returned by Run for an unusable configuration.
var ErrInvalidConfig = errors.New("invalid bench config")

// Recorder receives every timing sample and allocation measurement.
// *observe.Instruments implements it.
type Recorder interface {
	RecordSample(ctx context.Context, labels observe.Labels, nsPerOp float64)
	RecordAllocs(ctx context.Context, labels observe.Labels, allocsPerOp float64)
}

// Config controls how a run samples each detector.
type Config struct {
	// Seed is the base seed; each Case derives its own from it.
	Seed uint32
	// Samples is the number of timing samples per detector and Case.
	Samples int
	// Warmup is the number of untimed calls before calibration.
	Warmup int
	// SampleTarget is the minimum duration of one sample. The number of
	// calls per sample is doubled until a sample takes this long.
	SampleTarget time.Duration
	// MaxIterations caps the calls per sample.
	MaxIterations int
	// AllocRuns is the number of calls averaged when counting allocations.
	AllocRuns int
	// Parallelism is the number of Cases timed at once.
	Parallelism int
	// Linq adds the go-linq renditions to the detectors under test.
	Linq bool

	Logger   *slog.Logger
	Recorder Recorder
}

// Option is a functional option for configuring a run.
type Option func(*Config)

// WithSeed sets the base seed.
func WithSeed(seed uint32) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithSamples sets the number of timing samples per detector.
func WithSamples(n int) Option {
	return func(c *Config) { c.Samples = n }
}

// WithWarmup sets the number of untimed calls before measuring.
func WithWarmup(n int) Option {
	return func(c *Config) { c.Warmup = n }
}

// WithSampleTarget sets the minimum duration of one sample.
func WithSampleTarget(d time.Duration) Option {
	return func(c *Config) { c.SampleTarget = d }
}

// WithMaxIterations caps the calls per sample.
func WithMaxIterations(n int) Option {
	return func(c *Config) { c.MaxIterations = n }
}

// WithAllocRuns sets the number of calls averaged when counting allocations.
func WithAllocRuns(n int) Option {
	return func(c *Config) { c.AllocRuns = n }
}

// WithParallelism times up to n Cases concurrently. Allocation counts are
// always taken sequentially afterwards, since the runtime's counters are
// process-wide.
func WithParallelism(n int) Option {
	return func(c *Config) { c.Parallelism = n }
}

// WithLinq includes the go-linq detector renditions.
func WithLinq(enabled bool) Option {
	return func(c *Config) { c.Linq = enabled }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithRecorder sets where samples are reported, e.g. OTel instruments.
func WithRecorder(r Recorder) Option {
	return func(c *Config) { c.Recorder = r }
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Seed:          DefaultSeed,
		Samples:       DefaultSamples,
		Warmup:        DefaultWarmup,
		SampleTarget:  DefaultSampleTarget,
		MaxIterations: DefaultMaxIterations,
		AllocRuns:     DefaultAllocRuns,
		Parallelism:   1,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		Recorder:      observe.Noop(),
	}
}

func applyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Samples < 1:
		return fmt.Errorf("%w: samples must be at least 1, got %d", ErrInvalidConfig, c.Samples)
	case c.Warmup < 0:
		return fmt.Errorf("%w: warmup must not be negative, got %d", ErrInvalidConfig, c.Warmup)
	case c.SampleTarget <= 0:
		return fmt.Errorf("%w: sample target must be positive, got %v", ErrInvalidConfig, c.SampleTarget)
	case c.MaxIterations < 1:
		return fmt.Errorf("%w: max iterations must be at least 1, got %d", ErrInvalidConfig, c.MaxIterations)
	case c.AllocRuns < 1:
		return fmt.Errorf("%w: alloc runs must be at least 1, got %d", ErrInvalidConfig, c.AllocRuns)
	case c.Parallelism < 1:
		return fmt.Errorf("%w: parallelism must be at least 1, got %d", ErrInvalidConfig, c.Parallelism)
	case c.Logger == nil:
		return fmt.Errorf("%w: nil logger", ErrInvalidConfig)
	case c.Recorder == nil:
		return fmt.Errorf("%w: nil recorder", ErrInvalidConfig)
	}
	return nil
}
