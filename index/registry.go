package index

import (
	"sort"

	"github.com/dbuik1/talkingscores/util"
)

// Ref identifies one occurrence of a canonical value: the value's id in
// first-seen order and the 0-based rank of this occurrence within its bucket.
type Ref struct {
	ID      int
	Ordinal int
}

// NoRef marks an attribute category that does not apply to an event.
var NoRef = Ref{ID: -1, Ordinal: -1}

// Registry is an insertion-ordered reverse index for one attribute category.
// Canonical values are kept in first-seen order; each value id maps to the
// list of positions it occurs at, and every position maps back to exactly one
// Ref. len(values) always equals the number of buckets.
type Registry[K comparable] struct {
	values  []K
	ids     map[K]int
	buckets map[int][]int
	refs    map[int]Ref
}

func NewRegistry[K comparable]() *Registry[K] {
	return &Registry[K]{
		ids:     make(map[K]int),
		buckets: make(map[int][]int),
		refs:    make(map[int]Ref),
	}
}

// Add records value at position and returns the occurrence's Ref.
func (r *Registry[K]) Add(value K, position int) Ref {
	id, ok := r.ids[value]
	if !ok {
		id = len(r.values)
		r.values = append(r.values, value)
		r.ids[value] = id
	}
	r.buckets[id] = append(r.buckets[id], position)
	ref := Ref{ID: id, Ordinal: len(r.buckets[id]) - 1}
	r.refs[position] = ref
	return ref
}

// Len is the number of canonical values.
func (r *Registry[K]) Len() int { return len(r.values) }

// Value returns the canonical value for an id.
func (r *Registry[K]) Value(id int) K { return r.values[id] }

// Bucket returns every position at which the id'th canonical value occurs,
// in ascending position order.
func (r *Registry[K]) Bucket(id int) []int { return r.buckets[id] }

// At returns the Ref recorded for a position.
func (r *Registry[K]) At(position int) (Ref, bool) {
	ref, ok := r.refs[position]
	return ref, ok
}

// Positions returns every registered position in ascending order.
func (r *Registry[K]) Positions() []int {
	return util.SortedKeys(r.refs)
}

// ValueCount pairs a canonical value with its occurrence count.
type ValueCount[K comparable] struct {
	Value K
	Count int
}

// CountValues returns every canonical value with its occurrence count,
// sorted descending by count with first-seen order breaking ties.
func (r *Registry[K]) CountValues() []ValueCount[K] {
	counts := make([]ValueCount[K], len(r.values))
	for id, v := range r.values {
		counts[id] = ValueCount[K]{Value: v, Count: len(r.buckets[id])}
	}
	// stable keeps first-seen order on equal counts
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// SectionRegistry is the measure-level registry for one comparison policy.
// Positions are measure numbers exactly as the score reports them (1-based,
// 0 allowed for a pickup bar).
type SectionRegistry = Registry[string]
