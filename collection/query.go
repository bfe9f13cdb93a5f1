package collection

import (
	"strings"
)

// FilterAll is the reserved filter key that bypasses categorical filtering.
const FilterAll = "all"

// Query derives a filtered projection of a collection from a search term and
// a categorical filter key. It is a pure function over the input slice:
// insertion order is preserved and nothing is cached, which is fine at the
// expected cardinality of a few hundred entities.
type Query[T any] struct {
	// SearchFields lists the strings the search term is matched against,
	// case-insensitively, as substrings. Nil disables search.
	SearchFields func(T) []string
	// FilterField yields the categorical key compared against the active
	// filter. Nil disables filtering.
	FilterField func(T) string
}

// Apply returns the items matching both the search term and the filter key.
// An empty term matches everything, as does the FilterAll key.
func (q Query[T]) Apply(items []T, term, filter string) []T {
	out := make([]T, 0, len(items))
	term = strings.ToLower(strings.TrimSpace(term))

	for _, item := range items {
		if !q.matchesSearch(item, term) {
			continue
		}
		if !q.matchesFilter(item, filter) {
			continue
		}
		out = append(out, item)
	}

	return out
}

func (q Query[T]) matchesSearch(item T, term string) bool {
	if term == "" || q.SearchFields == nil {
		return true
	}
	for _, field := range q.SearchFields(item) {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (q Query[T]) matchesFilter(item T, filter string) bool {
	if filter == "" || filter == FilterAll || q.FilterField == nil {
		return true
	}
	return q.FilterField(item) == filter
}
