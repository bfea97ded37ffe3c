// Package repetition finds structural repetition across a part's measures:
// maximal runs of consecutively repeating measure blocks, plus the leftover
// individually repeated measures not absorbed into any block.
package repetition

import (
	"sort"

	"github.com/dbuik1/talkingscores/index"
)

// Range is one occurrence of a repeated block, inclusive measure numbers.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int { return r.End - r.Start + 1 }

func (r Range) Contains(measure int) bool {
	return r.Start <= measure && measure <= r.End
}

// Group is every occurrence of one repeated block. All ranges have the same
// length, are sorted by start measure and do not overlap; a group always has
// at least two occurrences.
type Group []Range

// Result bundles the repetition found under one comparison policy.
type Result struct {
	Groups []Group
	// Singletons maps a repeated measure's first occurrence to its later
	// occurrences, for measures not claimed by any group.
	Singletons map[int][]int
}

// Analyse runs the detector for one policy. full is the full-match registry;
// with excludeFullMatches set, positions already explained by an exact repeat
// are dropped from the singleton pass (used for the rhythm-only and
// interval-only policies).
func Analyse(reg, full *index.SectionRegistry, excludeFullMatches bool) Result {
	groups := DetectGroups(reg)
	lists := RepeatedPositions(reg, full, excludeFullMatches)
	return Result{
		Groups:     groups,
		Singletons: SingletonRepeats(lists, groups),
	}
}

// NextOccurrence returns the next later position sharing pos's canonical
// class, or -1 when pos is the last occurrence.
func NextOccurrence(reg *index.SectionRegistry, pos int) int {
	ref, ok := reg.At(pos)
	if !ok {
		return -1
	}
	bucket := reg.Bucket(ref.ID)
	if ref.Ordinal+1 < len(bucket) {
		return bucket[ref.Ordinal+1]
	}
	return -1
}

// RepeatedPositions returns every occurrence bucket with at least two
// positions. With excludeFullMatches set, a position is kept only when its
// full-match class is a singleton, i.e. the measure is not already an exact
// copy of another.
func RepeatedPositions(reg, full *index.SectionRegistry, excludeFullMatches bool) [][]int {
	var lists [][]int
	for id := 0; id < reg.Len(); id++ {
		bucket := reg.Bucket(id)
		if len(bucket) < 2 {
			continue
		}
		var positions []int
		for _, pos := range bucket {
			if excludeFullMatches && !fullMatchSingleton(full, pos) {
				continue
			}
			positions = append(positions, pos)
		}
		if len(positions) > 1 {
			lists = append(lists, positions)
		}
	}
	return lists
}

func fullMatchSingleton(full *index.SectionRegistry, pos int) bool {
	ref, ok := full.At(pos)
	if !ok {
		return true
	}
	return len(full.Bucket(ref.ID)) == 1
}

// DetectGroups finds maximal runs of consecutively repeating measure blocks.
// For each unclaimed position p with a next occurrence q at gap > 1, the
// block starting at p is extended while it repeats verbatim at p+gap. The
// scan is greedy: positions consumed by a detected block are skipped, which
// can hide a smaller repeated block nested inside an already-claimed range.
func DetectGroups(reg *index.SectionRegistry) []Group {
	var groups []Group
	skip := 0

	for _, pos := range reg.Positions() {
		if skip > 0 {
			skip--
			continue
		}
		next := NextOccurrence(reg, pos)
		if next < 0 {
			continue
		}
		gap := next - pos
		if gap <= 1 {
			continue
		}

		size := 1
		for size < gap && sameClass(reg, pos+size, pos+size+gap) {
			size++
		}
		size--
		if size <= 0 {
			continue
		}

		first := Range{Start: pos, End: pos + size}
		echo := Range{Start: pos + gap, End: pos + gap + size}
		if gi := findGroup(groups, first); gi >= 0 {
			groups[gi] = append(groups[gi], echo)
		} else {
			groups = append(groups, Group{first, echo})
		}
		skip = size
	}
	return groups
}

func sameClass(reg *index.SectionRegistry, a, b int) bool {
	ra, ok := reg.At(a)
	if !ok {
		return false
	}
	rb, ok := reg.At(b)
	if !ok {
		return false
	}
	return ra.ID == rb.ID
}

func findGroup(groups []Group, r Range) int {
	for i, group := range groups {
		for _, occurrence := range group {
			if occurrence == r {
				return i
			}
		}
	}
	return -1
}

// InAnyGroup reports whether a measure falls inside any occurrence range.
func InAnyGroup(measure int, groups []Group) bool {
	for _, group := range groups {
		for _, r := range group {
			if r.Contains(measure) {
				return true
			}
		}
	}
	return false
}

// SingletonRepeats keeps, from each multi-occurrence position list, the
// positions not claimed by any group. Lists with fewer than two unclaimed
// positions vanish, so no measure ever appears both in a group and here.
func SingletonRepeats(lists [][]int, groups []Group) map[int][]int {
	out := make(map[int][]int)
	for _, positions := range lists {
		var free []int
		for _, pos := range positions {
			if !InAnyGroup(pos, groups) {
				free = append(free, pos)
			}
		}
		if len(free) > 1 {
			sort.Ints(free)
			out[free[0]] = free[1:]
		}
	}
	return out
}
