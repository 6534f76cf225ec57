package detect

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func propertyParameters() *gopter.TestParameters {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	params.Rng.Seed(1234)
	return params
}

func TestPropertyDetectorsAgree(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	// Small value range so that duplicates are common.
	properties.Property("all detectors agree", prop.ForAll(
		func(items []int) bool {
			_, err := Agree(items)
			return err == nil
		},
		gen.SliceOf(gen.IntRange(0, 20)),
	))

	properties.Property("agree with a count of distinct values", prop.ForAll(
		func(items []int) bool {
			distinct := make(map[int]struct{}, len(items))
			for _, v := range items {
				distinct[v] = struct{}{}
			}
			want := len(distinct) < len(items)
			for _, d := range All[int]() {
				if d.Fn(items) != want {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(-50, 50)),
	))

	properties.Property("doubling any element creates a duplicate", prop.ForAll(
		func(items []int, v int) bool {
			withDup := append(append([]int{v}, items...), v)
			for _, d := range All[int]() {
				if !d.Fn(withDup) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int()),
		gen.Int(),
	))

	properties.Property("singletons never contain a duplicate", prop.ForAll(
		func(v int) bool {
			for _, d := range All[int]() {
				if d.Fn([]int{v}) {
					return false
				}
			}
			return true
		},
		gen.Int(),
	))

	properties.TestingRun(t)
}
