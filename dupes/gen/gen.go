// Package gen builds the synthetic integer arrays the detectors are
// measured against. Each Policy places duplicates differently so the
// early-exit strategies can be compared with the full-pass ones.
package gen

import (
	"errors"
	"fmt"
	"time"

	"github.com/lguimbarda/dupbench/dupes/core"
	"github.com/samber/lo"
	"github.com/valyala/fastrand"
)

var (
	// ErrInvalidArgument is returned for a negative length.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidConfiguration is returned for an unknown policy.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Generator draws random values from a seeded source, so the same seed
// always produces the same arrays. A Generator is not safe for concurrent
// use.
type Generator struct {
	rng fastrand.RNG
}

// New returns a Generator seeded with seed.
func New(seed uint32) *Generator {
	g := &Generator{}
	g.rng.Seed(seed)
	return g
}

// Generate returns an array of the given length populated according to
// policy, using a clock-seeded Generator.
func Generate(length int, policy Policy) ([]int, error) {
	return New(uint32(time.Now().UnixNano())).Generate(length, policy)
}

// MustGenerate is like Generate but panics on error. It is meant for
// benchmark setup where the arguments are constants.
func (g *Generator) MustGenerate(length int, policy Policy) []int {
	items, err := g.Generate(length, policy)
	if err != nil {
		panic(err)
	}
	return items
}

// Generate returns an array of the given length populated according to
// policy.
func (g *Generator) Generate(length int, policy Policy) ([]int, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrInvalidArgument, length)
	}

	switch policy {
	case NoDuplicates:
		return lo.Range(length), nil
	case Random:
		return lo.Times(length, func(int) int { return g.next() }), nil
	case Near:
		items := lo.Range(length)
		if length >= 2 {
			items[0] = items[1]
		}
		return items, nil
	case Far:
		items := lo.Range(length)
		if length >= 2 {
			items[0] = items[length-1]
		}
		return items, nil
	case FixedValueFalse, FixedValueTrue:
		r := g.next()
		return lo.Times(length, func(int) int {
			if policy == FixedValueFalse {
				return r
			}
			return g.next()
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown policy %v", ErrInvalidConfiguration, policy)
	}
}

// Stream returns the same array Generate would, as a stream.
func (g *Generator) Stream(length int, policy Policy) (core.Stream[int], error) {
	items, err := g.Generate(length, policy)
	if err != nil {
		return nil, err
	}
	return core.FromSlice(items), nil
}

// next draws a non-negative value from the full 32-bit range.
func (g *Generator) next() int {
	return int(g.rng.Uint32())
}
