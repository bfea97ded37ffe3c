package index

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dbuik1/talkingscores/model"
)

// Policy selects which attributes two measures are compared on.
type Policy int

const (
	PolicyFull Policy = iota
	PolicyRhythm
	PolicyIntervals
)

// EventIndex is the per-event fingerprint produced by the indexer. Each Ref
// points into the attribute registry for that category; NoRef means the
// category does not apply to this event.
type EventIndex struct {
	Position int
	Type     model.EventType

	PitchNumber Ref
	PitchName   Ref
	Interval    Ref
	HasInterval bool

	RhythmNote  Ref
	RhythmChord Ref
	RhythmRest  Ref

	ChordPitches   Ref
	ChordIntervals Ref
	ChordName      Ref

	// one comparison token per policy, fixed at indexing time
	tokens [3]string
}

// Section is one measure's events in order. It is built while the measure is
// scanned and frozen once the measure boundary is crossed.
type Section struct {
	Events []EventIndex
}

// Key is the section's fingerprint under a policy. Two sections are
// equivalent under a policy exactly when their keys are equal.
func (s *Section) Key(p Policy) string {
	tokens := make([]string, len(s.Events))
	for i, e := range s.Events {
		tokens[i] = e.tokens[p]
	}
	return strings.Join(tokens, "|")
}

// HasIntervals reports whether any event in the section carries a melodic
// interval. Sections without intervals are not registered under
// PolicyIntervals.
func (s *Section) HasIntervals() bool {
	for _, e := range s.Events {
		if e.HasInterval {
			return true
		}
	}
	return false
}

// Compare reports whether two sections match under a policy. Symmetric and
// reflexive for all policies.
func Compare(a, b *Section, p Policy) bool {
	return a.Key(p) == b.Key(p)
}

// ql formats a quarter length for use in fingerprint keys.
func ql(d float64) string {
	return strconv.FormatFloat(d, 'g', -1, 64)
}

func pitchKey(pitches []model.Pitch) string {
	midis := make([]int, len(pitches))
	for i, p := range pitches {
		midis[i] = int(p.Midi)
	}
	return joinInts(sortedInts(midis))
}

func intervalKey(intervals []int) string {
	return joinInts(intervals)
}

func sortedInts(nums []int) []int {
	out := make([]int, len(nums))
	copy(out, nums)
	sort.Ints(out)
	return out
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}

// noteTokens builds the per-policy comparison tokens for a pitched note.
// Under PolicyRhythm notes and chords are interchangeable, so both use the
// "p" prefix; rests keep their own. Under PolicyIntervals only the melodic
// interval is compared.
func noteTokens(midi uint8, duration float64, interval int, hasInterval bool) [3]string {
	iv := "x"
	if hasInterval {
		iv = strconv.Itoa(interval)
	}
	return [3]string{
		"n:" + strconv.Itoa(int(midi)) + ":" + ql(duration),
		"p:" + ql(duration),
		"n:" + iv,
	}
}

// chordTokens: chords carry no interval semantics, so any two chords match
// under PolicyIntervals.
func chordTokens(pitches string, duration float64) [3]string {
	return [3]string{
		"c:" + pitches + ":" + ql(duration),
		"p:" + ql(duration),
		"c",
	}
}

func restTokens(duration float64) [3]string {
	d := ql(duration)
	return [3]string{"r:" + d, "r:" + d, "r"}
}

// unpitchedTokens: no rhythm is registered for unpitched notes, so under
// PolicyRhythm they compare like grace notes.
func unpitchedTokens() [3]string {
	return [3]string{"u", "p:0", "u"}
}
