// Package bench runs the duplicate detectors against generated arrays and
// reports timing statistics per detector, array length and policy.
//
// A run is an explicit table of Cases. Each Case is generated once; every
// detector then reads the same immutable array, so Cases are independent
// and may run in parallel.
package bench

import (
	"fmt"

	"github.com/lguimbarda/dupbench/dupes/gen"
)

// DefaultLengths are the array lengths measured when none are given.
var DefaultLengths = []int{1, 10, 100, 1000, 10000}

// DefaultPolicies place zero or one duplicate pair.
var DefaultPolicies = []gen.Policy{gen.NoDuplicates, gen.Random, gen.Near, gen.Far}

// FixedValuePolicies compare an all-equal array with an all-random one.
var FixedValuePolicies = []gen.Policy{gen.FixedValueFalse, gen.FixedValueTrue}

// Case is one (length, policy) configuration.
type Case struct {
	Length int        `json:"length"`
	Policy gen.Policy `json:"policy"`
}

func (c Case) String() string {
	return fmt.Sprintf("%v/%d", c.Policy, c.Length)
}

// Matrix returns every combination of lengths and policies, lengths in
// the outer loop.
func Matrix(lengths []int, policies []gen.Policy) []Case {
	cases := make([]Case, 0, len(lengths)*len(policies))
	for _, length := range lengths {
		for _, policy := range policies {
			cases = append(cases, Case{Length: length, Policy: policy})
		}
	}
	return cases
}

// DefaultMatrix is Matrix(DefaultLengths, DefaultPolicies).
func DefaultMatrix() []Case {
	return Matrix(DefaultLengths, DefaultPolicies)
}
