// Package benchmarks times the duplicate detectors with go test -bench.
//
// Run with: go test ./benchmarks -bench . -benchmem
//
// Sub-benchmark names are Strategy/library/Policy/length, so a single
// strategy or policy can be selected with -bench, e.g.
// -bench 'Detectors/GroupCount/lo/Near'.
package benchmarks

import (
	"github.com/lguimbarda/dupbench/dupes/gen"
)

// Benchmark data sizes, matching the default run matrix.
var lengths = []int{1, 10, 100, 1_000, 10_000}

const seed = 0x5eed

// generate builds the array for one benchmark case.
func generate(length int, policy gen.Policy) []int {
	return gen.New(seed).MustGenerate(length, policy)
}

// sink keeps detector results alive so calls are not optimized away.
var sink bool
