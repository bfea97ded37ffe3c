// Package analyse drives the indexing, repetition detection and description
// rendering for whole parts and scores.
package analyse

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dbuik1/talkingscores/describe"
	"github.com/dbuik1/talkingscores/index"
	"github.com/dbuik1/talkingscores/model"
	"github.com/dbuik1/talkingscores/repetition"
	"github.com/dbuik1/talkingscores/util"
)

// Part analyses one instrumental part: one indexing scan, three repetition
// passes, then rendering on demand. A Part owns its registries exclusively;
// parts can be analysed independently.
type Part struct {
	cfg describe.Config
	idx *index.PartIndex

	full      repetition.Result
	rhythm    repetition.Result
	intervals repetition.Result

	countPitchNames    []describe.CountItem
	countIntervalsAbs  []describe.CountItem
	countRhythmNote    []describe.CountItem
	countRhythmRest    []describe.CountItem
	countRhythmChord   []describe.CountItem
	countChordNames    []describe.CountItem
	countNotesInChords []describe.CountItem
}

func NewPart(cfg describe.Config) *Part {
	return &Part{cfg: cfg}
}

// SetPart runs the full analysis over one part's event stream. Results are
// stored on the Part; nothing external is mutated.
func (p *Part) SetPart(part model.Part) {
	p.idx = index.IndexPart(part)
	p.full = repetition.Analyse(p.idx.Measures, p.idx.Measures, false)
	p.rhythm = repetition.Analyse(p.idx.MeasureRhythms, p.idx.Measures, true)
	p.intervals = repetition.Analyse(p.idx.MeasureIntervals, p.idx.Measures, true)
	p.buildCountLists()
}

// Index exposes the registries for inspection.
func (p *Part) Index() *index.PartIndex { return p.idx }

// Repetition returns the detected repetition for one policy.
func (p *Part) Repetition(policy index.Policy) repetition.Result {
	switch policy {
	case index.PolicyRhythm:
		return p.rhythm
	case index.PolicyIntervals:
		return p.intervals
	}
	return p.full
}

func (p *Part) buildCountLists() {
	idx := p.idx

	p.countPitchNames = nil
	for _, vc := range idx.PitchNames.CountValues() {
		p.countPitchNames = append(p.countPitchNames, describe.CountItem{Label: vc.Value, Count: vc.Count})
	}

	p.countChordNames = nil
	for _, vc := range idx.ChordNames.CountValues() {
		p.countChordNames = append(p.countChordNames, describe.CountItem{Label: vc.Value, Count: vc.Count})
	}

	p.countRhythmNote = p.durationCounts(idx.RhythmNotes)
	p.countRhythmRest = p.durationCounts(idx.RhythmRests)
	p.countRhythmChord = p.durationCounts(idx.RhythmChords)

	p.countNotesInChords = nil
	for _, size := range util.SortedKeys(idx.NotesInChords) {
		p.countNotesInChords = append(p.countNotesInChords, describe.CountItem{
			Label: strconv.Itoa(size),
			Count: idx.NotesInChords[size],
		})
	}
	sort.SliceStable(p.countNotesInChords, func(i, j int) bool {
		return p.countNotesInChords[i].Count > p.countNotesInChords[j].Count
	})

	p.countIntervalsAbs = nil
	for semitones, count := range idx.IntervalsAbs {
		if count == 0 {
			continue
		}
		name, ok := describe.IntervalName(semitones)
		if !ok {
			continue
		}
		p.countIntervalsAbs = append(p.countIntervalsAbs, describe.CountItem{Label: name, Count: count})
	}
	sort.SliceStable(p.countIntervalsAbs, func(i, j int) bool {
		return p.countIntervalsAbs[i].Count > p.countIntervalsAbs[j].Count
	})
}

func (p *Part) durationCounts(reg *index.Registry[float64]) []describe.CountItem {
	var items []describe.CountItem
	for _, vc := range reg.CountValues() {
		items = append(items, describe.CountItem{
			Label: describe.DurationName(vc.Value, p.cfg),
			Count: vc.Count,
		})
	}
	return items
}

// DescribeSummary words the part's overall content: proportions of chords,
// notes and rests weighted 50% by count and 150% by duration then averaged,
// with nested detail per category, plus accidental and grace-note sentences.
func (p *Part) DescribeSummary() string {
	idx := p.idx
	eventCount := idx.ChordCount + idx.NoteCount + idx.RestCount
	eventDuration := idx.ChordDuration + idx.NoteDuration + idx.RestDuration
	if eventCount == 0 || eventDuration == 0 {
		return ""
	}

	type category struct {
		name    string
		percent float64
		detail  func() string
	}
	categories := []category{
		{"chords", weighted(idx.ChordCount, eventCount, idx.ChordDuration, eventDuration), p.chordDetails},
		{"individual notes", weighted(idx.NoteCount, eventCount, idx.NoteDuration, eventDuration), p.noteDetails},
		{"rests", weighted(idx.RestCount, eventCount, idx.RestDuration, eventDuration), p.restDetails},
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].percent > categories[j].percent
	})

	var b strings.Builder
	for _, c := range categories {
		if c.percent > 1 {
			b.WriteString(describe.Percentage(c.percent) + " " + c.name + c.detail() + ", ")
		}
	}

	if idx.AccidentalCount > 1 && idx.PossibleAccidentalCount > 0 {
		percent := float64(idx.AccidentalCount) / float64(idx.PossibleAccidentalCount) * 100
		b.WriteString(describe.PercentageUncommon(percent) + " accidentals")
		if d := describe.Distribution(idx.AccidentalsInMeasures, idx.AccidentalCount); d != "" {
			b.WriteString(" (" + d + ")")
		}
		b.WriteString(", ")
	}
	if idx.GraceNoteCount > 1 && idx.PossibleAccidentalCount > 0 {
		percent := float64(idx.GraceNoteCount) / float64(idx.PossibleAccidentalCount) * 100
		b.WriteString(describe.PercentageUncommon(percent) + " grace notes")
		if d := describe.Distribution(idx.GraceNotesInMeasures, idx.GraceNoteCount); d != "" {
			b.WriteString(" (" + d + ")")
		}
		b.WriteString(". ")
	}

	return describe.CapitalizeFirst(describe.ReplaceEndWith(b.String(), ", ", ". "))
}

func weighted(count, totalCount int, duration, totalDuration float64) float64 {
	return (float64(count)/float64(totalCount)*50 + duration/totalDuration*150) / 2
}

func (p *Part) chordDetails() string {
	var parts []string
	if names := describe.CountList(p.countChordNames, p.idx.ChordCount); names != "" {
		parts = append(parts, names)
	}
	if durations := describe.CountList(p.countRhythmChord, p.idx.ChordCount); durations != "" {
		parts = append(parts, durations)
	}
	if sizes := describe.CountList(p.countNotesInChords, p.idx.ChordCount); sizes != "" {
		parts = append(parts, sizes+" notes")
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func (p *Part) noteDetails() string {
	var parts []string
	if durations := describe.CountList(p.countRhythmNote, p.idx.NoteCount); durations != "" {
		parts = append(parts, durations)
	}
	if pitches := describe.CountList(p.countPitchNames, p.idx.NoteCount); pitches != "" {
		parts = append(parts, pitches)
	}
	if intervals := p.intervalsDescription(); intervals != "" {
		parts = append(parts, intervals)
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func (p *Part) intervalsDescription() string {
	desc := describe.CountList(p.countIntervalsAbs, p.idx.IntervalCount)
	if desc == "" {
		desc = describe.CountListSeveral(p.countIntervalsAbs, p.idx.IntervalCount, "intervals")
	}
	if desc == "" {
		return ""
	}
	if p.idx.AscendingCount > p.idx.DescendingCount*2 {
		desc += ", mostly ascending"
	} else if p.idx.DescendingCount > p.idx.AscendingCount*2 {
		desc += ", mostly descending"
	}
	return desc
}

func (p *Part) restDetails() string {
	desc := describe.CountList(p.countRhythmRest, p.idx.RestCount)
	if desc == "" {
		return ""
	}
	dist := describe.Distribution(p.idx.RestsInMeasures, p.idx.RestCount)
	if dist == "" {
		return " (" + desc + ")"
	}
	return " (" + desc + " - " + dist + ")"
}
