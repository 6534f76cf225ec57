package detect

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy names one of the four duplicate-detection algorithms.
type Strategy int

const (
	EarlyExitSet Strategy = iota + 1
	EarlyExitExistential
	GroupCount
	CountDistinct
)

// Library names the code a detector is written against.
type Library string

const (
	LibraryNative Library = "native"
	LibraryLo     Library = "lo"
	LibraryLinq   Library = "go-linq"
)

var (
	// ErrUnknownStrategy is returned for a Strategy outside the four above.
	ErrUnknownStrategy = errors.New("unknown strategy")
	// ErrDisagreement is returned by Agree when detectors answer differently.
	ErrDisagreement = errors.New("detectors disagree")
)

var strategyNames = map[Strategy]string{
	EarlyExitSet:         "EarlyExitSet",
	EarlyExitExistential: "EarlyExitExistential",
	GroupCount:           "GroupCount",
	CountDistinct:        "CountDistinct",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Valid reports whether s is one of the four strategies.
func (s Strategy) Valid() bool {
	_, ok := strategyNames[s]
	return ok
}

// Strategies returns the four strategies, baseline first.
func Strategies() []Strategy {
	return []Strategy{EarlyExitSet, EarlyExitExistential, GroupCount, CountDistinct}
}

// ParseStrategy resolves a strategy name, ignoring case.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies() {
		if strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Detector is a named, runnable detector.
type Detector[T comparable] struct {
	Strategy Strategy
	Library  Library
	Baseline bool
	Fn       Func[T]
}

// Name identifies the detector in reports, e.g. "GroupCount/go-linq".
func (d Detector[T]) Name() string {
	return d.Strategy.String() + "/" + string(d.Library)
}

// Core returns the four strategies in their primary rendition.
func Core[T comparable]() []Detector[T] {
	return []Detector[T]{
		{Strategy: EarlyExitSet, Library: LibraryNative, Baseline: true, Fn: UsingSetLoop[T]},
		{Strategy: EarlyExitExistential, Library: LibraryLo, Fn: UsingSetAny[T]},
		{Strategy: GroupCount, Library: LibraryLo, Fn: UsingGroupBy[T]},
		{Strategy: CountDistinct, Library: LibraryLo, Fn: UsingDistinct[T]},
	}
}

// Linq returns the go-linq renditions of the three declarative strategies.
func Linq[T comparable]() []Detector[T] {
	return []Detector[T]{
		{Strategy: EarlyExitExistential, Library: LibraryLinq, Fn: UsingLinqAny[T]},
		{Strategy: GroupCount, Library: LibraryLinq, Fn: UsingLinqGroupBy[T]},
		{Strategy: CountDistinct, Library: LibraryLinq, Fn: UsingLinqDistinct[T]},
	}
}

// All returns every registered detector: Core followed by Linq.
func All[T comparable]() []Detector[T] {
	return append(Core[T](), Linq[T]()...)
}

// For returns the primary rendition of a strategy.
func For[T comparable](s Strategy) (Func[T], error) {
	for _, d := range Core[T]() {
		if d.Strategy == s {
			return d.Fn, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, s)
}

// Agree runs every detector in All against items. It returns the common
// answer, or ErrDisagreement naming the detectors that differ from the
// baseline.
func Agree[T comparable](items []T) (bool, error) {
	return AgreeAmong(items, All[T]())
}

// AgreeAmong is Agree over a chosen set of detectors. The first detector
// is the reference.
func AgreeAmong[T comparable](items []T, detectors []Detector[T]) (bool, error) {
	if len(detectors) == 0 {
		return false, nil
	}
	want := detectors[0].Fn(items)
	var dissent []string
	for _, d := range detectors[1:] {
		if got := d.Fn(items); got != want {
			dissent = append(dissent, fmt.Sprintf("%s=%t", d.Name(), got))
		}
	}
	if len(dissent) > 0 {
		return want, fmt.Errorf("%w: %s=%t, %s",
			ErrDisagreement, detectors[0].Name(), want, strings.Join(dissent, ", "))
	}
	return want, nil
}

// MarshalText encodes the strategy by name.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a strategy name accepted by ParseStrategy.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
