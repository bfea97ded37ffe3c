package index

import "github.com/dbuik1/talkingscores/model"

// PartIndex holds every registry and statistic produced by one linear scan of
// a part's event stream. Attribute registries are keyed by event index;
// measure registries by measure number.
type PartIndex struct {
	// event-level canonical registry (full-match fingerprints)
	Events *Registry[string]

	// attribute registries
	PitchNumbers   *Registry[uint8]
	PitchNames     *Registry[string]
	Intervals      *Registry[int]
	RhythmNotes    *Registry[float64]
	RhythmChords   *Registry[float64]
	RhythmRests    *Registry[float64]
	ChordPitches   *Registry[string]
	ChordIntervals *Registry[string]
	ChordNames     *Registry[string]

	// measure registries, one per comparison policy
	Measures         *SectionRegistry
	MeasureRhythms   *SectionRegistry
	MeasureIntervals *SectionRegistry

	// Sections keeps each measure's frozen section by measure number.
	Sections map[int]*Section

	// MeasureFirstEvent maps each registered measure number to the event
	// index of its first event.
	MeasureFirstEvent map[int]int

	AccidentalsInMeasures map[int]int
	GraceNotesInMeasures  map[int]int
	RestsInMeasures       map[int]int

	// NotesInChords counts chords by size 2..10.
	NotesInChords map[int]int
	// IntervalsAbs buckets absolute melodic intervals 0..24 semitones.
	// Wider leaps are counted in IntervalCount only.
	IntervalsAbs [25]int

	NoteCount  int
	ChordCount int
	RestCount  int

	NoteDuration  float64
	ChordDuration float64
	RestDuration  float64

	IntervalCount   int
	AscendingCount  int
	DescendingCount int
	UnisonCount     int

	AccidentalCount         int
	GraceNoteCount          int
	PossibleAccidentalCount int
}

// MeasureCount is the number of measures actually registered.
func (x *PartIndex) MeasureCount() int { return len(x.MeasureFirstEvent) }

func newPartIndex() *PartIndex {
	return &PartIndex{
		Events:                NewRegistry[string](),
		PitchNumbers:          NewRegistry[uint8](),
		PitchNames:            NewRegistry[string](),
		Intervals:             NewRegistry[int](),
		RhythmNotes:           NewRegistry[float64](),
		RhythmChords:          NewRegistry[float64](),
		RhythmRests:           NewRegistry[float64](),
		ChordPitches:          NewRegistry[string](),
		ChordIntervals:        NewRegistry[string](),
		ChordNames:            NewRegistry[string](),
		Measures:              NewRegistry[string](),
		MeasureRhythms:        NewRegistry[string](),
		MeasureIntervals:      NewRegistry[string](),
		Sections:              make(map[int]*Section),
		MeasureFirstEvent:     make(map[int]int),
		AccidentalsInMeasures: make(map[int]int),
		GraceNotesInMeasures:  make(map[int]int),
		RestsInMeasures:       make(map[int]int),
		NotesInChords:         make(map[int]int),
	}
}

// indexer carries the per-measure accumulators of the scan.
type indexer struct {
	idx *PartIndex

	previousPitch  int // last pitched MIDI number, -1 when reset
	currentMeasure int
	section        *Section

	measureAccidentals int
	measureGraceNotes  int
	measureRests       int
}

// IndexPart scans a part's flattened events exactly once, producing one
// EventIndex per event and populating every registry. Events must arrive in
// score order; events with a negative measure number are skipped.
func IndexPart(part model.Part) *PartIndex {
	in := &indexer{
		idx:            newPartIndex(),
		previousPitch:  -1,
		currentMeasure: -1,
		section:        &Section{},
	}

	eventIndex := 0
	for _, event := range part.Events {
		if event.Measure < 0 {
			continue
		}
		if event.Measure > in.currentMeasure {
			in.finishMeasure()
			in.currentMeasure = event.Measure
			in.idx.MeasureFirstEvent[event.Measure] = eventIndex
		}

		ei := newEventIndex(eventIndex, event.Type)
		switch event.Type {
		case model.EventRest:
			in.indexRest(&ei, event)
		case model.EventChord:
			in.indexChord(&ei, event)
		case model.EventNote:
			in.indexNote(&ei, event)
		case model.EventUnpitched:
			ei.tokens = unpitchedTokens()
			in.previousPitch = -1
		}

		in.idx.Events.Add(ei.tokens[PolicyFull], eventIndex)
		in.section.Events = append(in.section.Events, ei)
		eventIndex++
	}
	in.finishMeasure()

	return in.idx
}

func (in *indexer) indexRest(ei *EventIndex, event model.Event) {
	ei.RhythmRest = in.idx.RhythmRests.Add(event.Duration, ei.Position)
	ei.tokens = restTokens(event.Duration)

	in.idx.RestDuration += event.Duration
	in.idx.RestCount++
	in.measureRests++
	in.previousPitch = -1
}

func (in *indexer) indexChord(ei *EventIndex, event model.Event) {
	idx := in.idx

	if event.IsGrace() {
		idx.GraceNoteCount += len(event.Pitches)
		in.measureGraceNotes += len(event.Pitches)
	} else {
		ei.RhythmChord = idx.RhythmChords.Add(event.Duration, ei.Position)
	}

	if len(event.Pitches) <= 10 {
		idx.NotesInChords[len(event.Pitches)]++
	}

	pitches := pitchKey(event.Pitches)
	ei.ChordPitches = idx.ChordPitches.Add(pitches, ei.Position)

	intervals := chordIntervalFingerprint(event.Pitches)
	ei.ChordIntervals = idx.ChordIntervals.Add(intervalKey(intervals), ei.Position)
	ei.ChordName = idx.ChordNames.Add(ChordCommonName(intervals), ei.Position)

	for _, p := range event.Pitches {
		if p.Accidental {
			idx.AccidentalCount++
			in.measureAccidentals++
		}
	}
	idx.PossibleAccidentalCount += len(event.Pitches)

	ei.tokens = chordTokens(pitches, event.Duration)
	idx.ChordDuration += event.Duration
	idx.ChordCount++
	in.previousPitch = -1
}

func (in *indexer) indexNote(ei *EventIndex, event model.Event) {
	idx := in.idx
	p := event.Pitches[0]

	if p.Accidental {
		idx.AccidentalCount++
		in.measureAccidentals++
	}
	idx.PossibleAccidentalCount++

	ei.PitchNumber = idx.PitchNumbers.Add(p.Midi, ei.Position)
	ei.PitchName = idx.PitchNames.Add(p.Name, ei.Position)

	interval := 0
	if in.previousPitch > -1 {
		interval = int(p.Midi) - in.previousPitch
		ei.Interval = idx.Intervals.Add(interval, ei.Position)
		ei.HasInterval = true

		switch {
		case interval > 0:
			idx.AscendingCount++
		case interval < 0:
			idx.DescendingCount++
		default:
			idx.UnisonCount++
		}
		idx.IntervalCount++

		if abs := absInt(interval); abs < len(idx.IntervalsAbs) {
			idx.IntervalsAbs[abs]++
		}
	}

	if event.IsGrace() {
		idx.GraceNoteCount++
		in.measureGraceNotes++
	} else {
		ei.RhythmNote = idx.RhythmNotes.Add(event.Duration, ei.Position)
	}

	ei.tokens = noteTokens(p.Midi, event.Duration, interval, ei.HasInterval)
	idx.NoteDuration += event.Duration
	idx.NoteCount++
	in.previousPitch = int(p.Midi)
}

// finishMeasure freezes the just-completed section into the three policy
// registries and resets the per-measure accumulators.
func (in *indexer) finishMeasure() {
	if len(in.section.Events) == 0 {
		return
	}
	idx := in.idx
	measure := in.currentMeasure

	idx.AccidentalsInMeasures[measure] = in.measureAccidentals
	idx.GraceNotesInMeasures[measure] = in.measureGraceNotes
	idx.RestsInMeasures[measure] = in.measureRests

	idx.Sections[measure] = in.section
	idx.Measures.Add(in.section.Key(PolicyFull), measure)
	idx.MeasureRhythms.Add(in.section.Key(PolicyRhythm), measure)
	if in.section.HasIntervals() {
		idx.MeasureIntervals.Add(in.section.Key(PolicyIntervals), measure)
	}

	in.section = &Section{}
	in.previousPitch = -1
	in.measureAccidentals = 0
	in.measureGraceNotes = 0
	in.measureRests = 0
}

// newEventIndex starts every category at NoRef; the indexer overwrites the
// categories that apply.
func newEventIndex(position int, t model.EventType) EventIndex {
	return EventIndex{
		Position:       position,
		Type:           t,
		PitchNumber:    NoRef,
		PitchName:      NoRef,
		Interval:       NoRef,
		RhythmNote:     NoRef,
		RhythmChord:    NoRef,
		RhythmRest:     NoRef,
		ChordPitches:   NoRef,
		ChordIntervals: NoRef,
		ChordName:      NoRef,
	}
}

// chordIntervalFingerprint is the ascending semitone offset of every pitch
// above the lowest, sorted. A major triad in root position is [4 7].
func chordIntervalFingerprint(pitches []model.Pitch) []int {
	if len(pitches) == 0 {
		return nil
	}
	midis := make([]int, len(pitches))
	for i, p := range pitches {
		midis[i] = int(p.Midi)
	}
	midis = sortedInts(midis)
	intervals := make([]int, 0, len(midis)-1)
	for _, m := range midis[1:] {
		intervals = append(intervals, m-midis[0])
	}
	return intervals
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
