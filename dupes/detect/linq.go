package detect

import (
	"github.com/ahmetb/go-linq/v3"
)

// UsingLinqAny is UsingSetAny over a go-linq query.
func UsingLinqAny[T comparable](items []T) bool {
	seen := make(map[T]struct{})
	return linq.From(items).AnyWith(func(v interface{}) bool {
		item := v.(T)
		if _, ok := seen[item]; ok {
			return true
		}
		seen[item] = struct{}{}
		return false
	})
}

// UsingLinqGroupBy is UsingGroupBy over a go-linq query.
func UsingLinqGroupBy[T comparable](items []T) bool {
	identity := func(v interface{}) interface{} { return v }
	return linq.From(items).
		GroupBy(identity, identity).
		AnyWith(func(g interface{}) bool {
			return len(g.(linq.Group).Group) > 1
		})
}

// UsingLinqDistinct is UsingDistinct over a go-linq query. The query is
// iterated twice, once per count.
func UsingLinqDistinct[T comparable](items []T) bool {
	q := linq.From(items)
	return q.Count() != q.Distinct().Count()
}
