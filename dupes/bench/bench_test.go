package bench

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/lguimbarda/dupbench/dupes/detect"
	"github.com/lguimbarda/dupbench/dupes/gen"
	"github.com/lguimbarda/dupbench/dupes/observe"
)

// quick keeps runs short: a couple of tiny samples per detector.
var quick = []Option{
	WithSamples(2),
	WithWarmup(1),
	WithSampleTarget(time.Microsecond),
	WithMaxIterations(4),
	WithAllocRuns(1),
}

type countingRecorder struct {
	mu      sync.Mutex
	samples map[string]int
	allocs  int
}

func (r *countingRecorder) RecordSample(_ context.Context, l observe.Labels, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.samples == nil {
		r.samples = make(map[string]int)
	}
	r.samples[l.Strategy+"/"+l.Library]++
}

func (r *countingRecorder) RecordAllocs(context.Context, observe.Labels, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.allocs++
}

func TestMatrix(t *testing.T) {
	got := Matrix([]int{1, 10}, []gen.Policy{gen.Near, gen.Far})
	want := []Case{
		{Length: 1, Policy: gen.Near},
		{Length: 1, Policy: gen.Far},
		{Length: 10, Policy: gen.Near},
		{Length: 10, Policy: gen.Far},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Matrix() mismatch (-want +got):\n%s", diff)
	}
	if got := len(DefaultMatrix()); got != 20 {
		t.Errorf("DefaultMatrix() has %d cases, want 20", got)
	}
}

func TestRun(t *testing.T) {
	cases := Matrix([]int{0, 1, 10, 100}, append(DefaultPolicies, FixedValuePolicies...))
	rec := &countingRecorder{}

	ms, err := Run(context.Background(), cases, append(quick, WithRecorder(rec))...)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	core := detect.Core[int]()
	if len(ms) != len(cases)*len(core) {
		t.Fatalf("Run() returned %d measurements, want %d", len(ms), len(cases)*len(core))
	}

	for i, m := range ms {
		c := cases[i/len(core)]
		d := core[i%len(core)]
		if m.Case != c || m.Detector != d.Name() {
			t.Fatalf("measurement %d is %v %s, want %v %s", i, m.Case, m.Detector, c, d.Name())
		}

		wantDup := c.Length >= 2 && (c.Policy == gen.Near || c.Policy == gen.Far || c.Policy == gen.FixedValueFalse)
		if m.Result != wantDup {
			t.Errorf("%v %s: Result = %t, want %t", c, m.Detector, m.Result, wantDup)
		}
		if m.Samples != 2 || m.Iterations < 1 || m.Iterations > 4 {
			t.Errorf("%v %s: samples=%d iterations=%d", c, m.Detector, m.Samples, m.Iterations)
		}
		if m.MinNs > m.MeanNs || m.MeanNs > m.MaxNs {
			t.Errorf("%v %s: min %.1f mean %.1f max %.1f out of order", c, m.Detector, m.MinNs, m.MeanNs, m.MaxNs)
		}
		if m.Baseline != (d.Strategy == detect.EarlyExitSet) {
			t.Errorf("%v %s: Baseline = %t", c, m.Detector, m.Baseline)
		}
		if m.Baseline && m.MeanNs > 0 && m.Ratio != 1 {
			t.Errorf("%v baseline Ratio = %f, want 1", c, m.Ratio)
		}
	}

	for _, d := range core {
		if got, want := rec.samples[d.Strategy.String()+"/"+string(d.Library)], 2*len(cases); got != want {
			t.Errorf("recorder saw %d samples for %s, want %d", got, d.Name(), want)
		}
	}
	if rec.allocs != len(ms) {
		t.Errorf("recorder saw %d alloc records, want %d", rec.allocs, len(ms))
	}
}

func TestRunGroupCountAllocatesOnEarlyDuplicate(t *testing.T) {
	ms, err := Run(context.Background(), []Case{{Length: 1000, Policy: gen.Near}}, quick...)
	if err != nil {
		t.Fatal(err)
	}
	byStrategy := make(map[detect.Strategy]Measurement)
	for _, m := range ms {
		byStrategy[m.Strategy] = m
	}
	// The early-exit set stops after two elements; grouping builds every group.
	if set, group := byStrategy[detect.EarlyExitSet], byStrategy[detect.GroupCount]; group.AllocsPerOp <= set.AllocsPerOp {
		t.Errorf("GroupCount allocs/op %.0f not above EarlyExitSet %.0f", group.AllocsPerOp, set.AllocsPerOp)
	}
}

func TestRunParallelMatchesSequential(t *testing.T) {
	cases := Matrix([]int{10, 100}, DefaultPolicies)

	seq, err := Run(context.Background(), cases, append(quick, WithLinq(true))...)
	if err != nil {
		t.Fatal(err)
	}
	par, err := Run(context.Background(), cases, append(quick, WithLinq(true), WithParallelism(4))...)
	if err != nil {
		t.Fatal(err)
	}

	if len(seq) != len(cases)*7 {
		t.Fatalf("Run(WithLinq) returned %d measurements, want %d", len(seq), len(cases)*7)
	}
	type key struct {
		Case     Case
		Detector string
		Result   bool
	}
	keys := func(ms []Measurement) []key {
		out := make([]key, len(ms))
		for i, m := range ms {
			out[i] = key{m.Case, m.Detector, m.Result}
		}
		return out
	}
	if diff := cmp.Diff(keys(seq), keys(par)); diff != "" {
		t.Errorf("parallel run differs from sequential (-seq +par):\n%s", diff)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		cases   []Case
		opts    []Option
		wantErr error
	}{
		{name: "zero samples", opts: []Option{WithSamples(0)}, wantErr: ErrInvalidConfig},
		{name: "negative warmup", opts: []Option{WithWarmup(-1)}, wantErr: ErrInvalidConfig},
		{name: "zero target", opts: []Option{WithSampleTarget(0)}, wantErr: ErrInvalidConfig},
		{name: "zero iterations", opts: []Option{WithMaxIterations(0)}, wantErr: ErrInvalidConfig},
		{name: "zero alloc runs", opts: []Option{WithAllocRuns(0)}, wantErr: ErrInvalidConfig},
		{name: "zero parallelism", opts: []Option{WithParallelism(0)}, wantErr: ErrInvalidConfig},
		{name: "nil logger", opts: []Option{WithLogger(nil)}, wantErr: ErrInvalidConfig},
		{name: "nil recorder", opts: []Option{WithRecorder(nil)}, wantErr: ErrInvalidConfig},
		{name: "negative length", cases: []Case{{Length: -1, Policy: gen.Near}}, wantErr: gen.ErrInvalidArgument},
		{name: "unknown policy", cases: []Case{{Length: 3, Policy: 0}}, wantErr: gen.ErrInvalidConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), tt.cases, append(quick, tt.opts...)...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, []Case{{Length: 10, Policy: gen.Far}}, quick...)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestCaseSeed(t *testing.T) {
	seen := make(map[uint32]bool)
	for i := 0; i < 100; i++ {
		s := caseSeed(DefaultSeed, i)
		if s == 0 {
			t.Fatalf("caseSeed(%d) = 0", i)
		}
		if seen[s] {
			t.Fatalf("caseSeed(%d) repeats %#x", i, s)
		}
		seen[s] = true
	}
}

func sampleMeasurements() []Measurement {
	return []Measurement{
		{
			Case:     Case{Length: 1000, Policy: gen.Near},
			Detector: "EarlyExitSet/native", Strategy: detect.EarlyExitSet, Library: detect.LibraryNative,
			Baseline: true, Result: true, Iterations: 8, Samples: 3,
			MeanNs: 120, MinNs: 100, MaxNs: 150, P50Ns: 118, P90Ns: 140, P99Ns: 150,
			AllocsPerOp: 2, ItemsPerSec: 8.3e9, Ratio: 1,
		},
		{
			Case:     Case{Length: 1000, Policy: gen.Near},
			Detector: "GroupCount/lo", Strategy: detect.GroupCount, Library: detect.LibraryLo,
			Result: true, Iterations: 8, Samples: 3,
			MeanNs: 36000, MinNs: 35000, MaxNs: 38000, P50Ns: 35900, P90Ns: 37000, P99Ns: 38000,
			AllocsPerOp: 1012, ItemsPerSec: 2.7e7, Ratio: 300,
		},
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, sampleMeasurements()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"policy": "Near"`) || !strings.Contains(buf.String(), `"strategy": "GroupCount"`) {
		t.Errorf("JSON does not encode enums by name:\n%s", buf.String())
	}

	var back []Measurement
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sampleMeasurements(), back); diff != "" {
		t.Errorf("JSON round trip mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("WriteJSON(nil) = %q, want []", got)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatCSV, sampleMeasurements()); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d CSV records, want 3", len(records))
	}
	if diff := cmp.Diff(CSVHeader, records[0]); diff != "" {
		t.Errorf("CSV header mismatch (-want +got):\n%s", diff)
	}
	if records[2][2] != "GroupCount/lo" || records[2][1] != "Near" || records[2][17] != "300.000" {
		t.Errorf("unexpected CSV row: %v", records[2])
	}
}

func TestWriteTable(t *testing.T) {
	ms := sampleMeasurements()
	ms = append(ms, Measurement{Case: Case{Length: 10, Policy: gen.Far}, Detector: "EarlyExitSet/native", Baseline: true, Ratio: 1})

	var buf bytes.Buffer
	if err := Write(&buf, FormatTable, ms); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Detector", "GroupCount/lo", "1,000", "300.00", "120 ns"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	// header, two rows, separator, one row
	if got := strings.Count(out, "\n"); got != 5 {
		t.Errorf("table has %d lines, want 5:\n%s", got, out)
	}

	if err := Write(&buf, Format("xml"), ms); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Write(xml) error = %v, want ErrInvalidConfig", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr error
	}{
		{name: "", want: FormatTable},
		{name: "table", want: FormatTable},
		{name: "JSON", want: FormatJSON},
		{name: "csv", want: FormatCSV},
		{name: "xml", wantErr: ErrInvalidConfig},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.name)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ParseFormat(%q) error = %v, want %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCheck(t *testing.T) {
	items, verdicts, err := Check(Case{Length: 50, Policy: gen.Far}, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 50 || items[0] != items[49] {
		t.Errorf("Check() generated %v", items)
	}
	if len(verdicts) != len(detect.All[int]()) {
		t.Fatalf("Check() returned %d verdicts", len(verdicts))
	}
	for _, v := range verdicts {
		if !v.Result {
			t.Errorf("%s = false on a Far array", v.Detector)
		}
	}

	if _, _, err := Check(Case{Length: -5, Policy: gen.Far}, 7); !errors.Is(err, gen.ErrInvalidArgument) {
		t.Errorf("Check(-5) error = %v, want ErrInvalidArgument", err)
	}
}
