package detect

import (
	"errors"
	"testing"
)

func TestDetectorsEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		want  bool
	}{
		{name: "nil", items: nil, want: false},
		{name: "empty", items: []int{}, want: false},
		{name: "single", items: []int{7}, want: false},
		{name: "pair equal", items: []int{3, 3}, want: true},
		{name: "pair distinct", items: []int{3, 4}, want: false},
		{name: "duplicate at front", items: []int{1, 1, 2, 3, 4}, want: true},
		{name: "duplicate far apart", items: []int{4, 1, 2, 3, 4}, want: true},
		{name: "all equal", items: []int{9, 9, 9, 9}, want: true},
		{name: "negative values", items: []int{-1, 0, 1, -1}, want: true},
		{name: "distinct", items: []int{5, 3, 8, 1, 0}, want: false},
	}

	for _, d := range All[int]() {
		for _, tt := range tests {
			t.Run(d.Name()+"/"+tt.name, func(t *testing.T) {
				if got := d.Fn(tt.items); got != tt.want {
					t.Errorf("%s(%v) = %t, want %t", d.Name(), tt.items, got, tt.want)
				}
			})
		}
	}
}

func TestDetectorsGenericOverElementType(t *testing.T) {
	type point struct{ x, y int }

	for _, d := range All[string]() {
		if !d.Fn([]string{"a", "b", "a"}) {
			t.Errorf("%s on strings missed a duplicate", d.Name())
		}
	}
	for _, d := range All[point]() {
		if d.Fn([]point{{1, 2}, {2, 1}}) {
			t.Errorf("%s on structs reported a false duplicate", d.Name())
		}
		if !d.Fn([]point{{1, 2}, {0, 0}, {1, 2}}) {
			t.Errorf("%s on structs missed a duplicate", d.Name())
		}
	}
}

func TestDetectorsDoNotMutateInput(t *testing.T) {
	items := []int{5, 1, 4, 1, 3}
	orig := append([]int(nil), items...)

	for _, d := range All[int]() {
		first := d.Fn(items)
		second := d.Fn(items)
		if first != second {
			t.Errorf("%s not idempotent: %t then %t", d.Name(), first, second)
		}
		for i := range items {
			if items[i] != orig[i] {
				t.Fatalf("%s mutated its input: %v", d.Name(), items)
			}
		}
	}
}

func TestRegistry(t *testing.T) {
	core := Core[int]()
	if len(core) != 4 {
		t.Fatalf("Core() has %d detectors, want 4", len(core))
	}
	for i, s := range Strategies() {
		if core[i].Strategy != s {
			t.Errorf("Core()[%d] = %v, want %v", i, core[i].Strategy, s)
		}
	}
	if !core[0].Baseline {
		t.Error("EarlyExitSet is not marked as the baseline")
	}
	for _, d := range All[int]()[1:] {
		if d.Baseline {
			t.Errorf("%s is marked as baseline", d.Name())
		}
	}
	if got := len(All[int]()); got != 7 {
		t.Errorf("All() has %d detectors, want 7", got)
	}
	if got := Linq[int]()[1].Name(); got != "GroupCount/go-linq" {
		t.Errorf("Name() = %q", got)
	}
}

func TestFor(t *testing.T) {
	for _, s := range Strategies() {
		fn, err := For[int](s)
		if err != nil {
			t.Fatalf("For(%v) error = %v", s, err)
		}
		if !fn([]int{2, 2}) {
			t.Errorf("For(%v) missed a duplicate", s)
		}
	}
	if _, err := For[int](Strategy(0)); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("For(0) error = %v, want ErrUnknownStrategy", err)
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range Strategies() {
		got, err := ParseStrategy(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStrategy(%q) = %v, %v", s.String(), got, err)
		}
	}
	if got, err := ParseStrategy("groupcount"); err != nil || got != GroupCount {
		t.Errorf("ParseStrategy(groupcount) = %v, %v", got, err)
	}
	if _, err := ParseStrategy("bogosort"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("ParseStrategy(bogosort) error = %v, want ErrUnknownStrategy", err)
	}
	if got := Strategy(42).String(); got != "Strategy(42)" {
		t.Errorf("Strategy(42).String() = %q", got)
	}
}

func TestAgreeReportsDisagreement(t *testing.T) {
	liar := Detector[int]{
		Strategy: GroupCount,
		Library:  "liar",
		Fn:       func([]int) bool { return true },
	}
	detectors := append(Core[int](), liar)

	got, err := AgreeAmong([]int{1, 2, 3}, detectors)
	if !errors.Is(err, ErrDisagreement) {
		t.Fatalf("AgreeAmong() error = %v, want ErrDisagreement", err)
	}
	if got {
		t.Error("AgreeAmong() should return the reference answer")
	}

	if got, err := AgreeAmong([]int{1}, nil); got || err != nil {
		t.Errorf("AgreeAmong(nil detectors) = %t, %v", got, err)
	}
}
