// Package detect implements four ways of answering whether a sequence
// contains two equal values. They agree on every input; what differs is
// how much work each does before it can answer, which is what the
// benchmarks measure:
//
//   - UsingSetLoop builds a set in a plain loop and returns on the first
//     collision. It is the baseline.
//   - UsingSetAny is the same algorithm written as an existential scan.
//   - UsingGroupBy groups every element before looking for a group of
//     two or more. It always consumes the whole input.
//   - UsingDistinct compares the element count with the distinct count.
//     It enumerates the input twice.
//
// The go-linq renditions express the three declarative strategies through
// github.com/ahmetb/go-linq/v3, which is the closest Go analogue of a
// LINQ pipeline.
package detect

import (
	"github.com/samber/lo"
)

// Func is the shared shape of every detector.
type Func[T comparable] func(items []T) bool

// UsingSetLoop returns true as soon as an element is already in the set
// of elements seen so far.
func UsingSetLoop[T comparable](items []T) bool {
	seen := make(map[T]struct{})
	for _, item := range items {
		if _, ok := seen[item]; ok {
			return true
		}
		seen[item] = struct{}{}
	}
	return false
}

// UsingSetAny scans for the first element that was seen before.
func UsingSetAny[T comparable](items []T) bool {
	seen := make(map[T]struct{})
	return lo.SomeBy(items, func(item T) bool {
		if _, ok := seen[item]; ok {
			return true
		}
		seen[item] = struct{}{}
		return false
	})
}

// UsingGroupBy partitions items into groups of equal values and reports
// whether any group holds more than one element.
func UsingGroupBy[T comparable](items []T) bool {
	groups := lo.GroupBy(items, func(item T) T { return item })
	return lo.SomeBy(lo.Values(groups), func(group []T) bool {
		return len(group) > 1
	})
}

// UsingDistinct reports whether the number of distinct elements is smaller
// than the number of elements.
func UsingDistinct[T comparable](items []T) bool {
	return len(items) != len(lo.Uniq(items))
}
