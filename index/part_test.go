package index

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dbuik1/talkingscores/model"
)

func note(measure int, beat, duration float64, midi uint8, name string) model.Event {
	return model.NewNote(measure, beat, duration, model.Pitch{Midi: midi, Name: name})
}

func TestIdenticalMeasuresShareOneCanonicalSection(t *testing.T) {
	part := model.Part{Events: []model.Event{
		note(1, 1, 1, 60, "C"), note(1, 2, 1, 64, "E"),
		note(2, 1, 1, 60, "C"), note(2, 2, 1, 64, "E"),
	}}
	idx := IndexPart(part)

	assert := assert.New(t)
	assert.Equal(1, idx.Measures.Len())
	assert.Equal([]int{1, 2}, idx.Measures.Bucket(0))
	assert.Equal(1, idx.MeasureRhythms.Len())
	assert.Equal(2, idx.MeasureCount())
}

func TestSamePitchesWithDifferentDurationsMatchOnIntervalsOnly(t *testing.T) {
	part := model.Part{Events: []model.Event{
		note(1, 1, 1, 60, "C"), note(1, 2, 1, 64, "E"),
		note(2, 1, 0.5, 60, "C"), note(2, 2, 0.5, 64, "E"),
	}}
	idx := IndexPart(part)

	assert := assert.New(t)
	assert.Equal(2, idx.Measures.Len())
	assert.Equal(2, idx.MeasureRhythms.Len())
	assert.Equal(1, idx.MeasureIntervals.Len())
}

func TestNoteAndChordWithSameDurationMatchOnRhythm(t *testing.T) {
	part := model.Part{Events: []model.Event{
		note(1, 1, 1, 60, "C"),
		model.NewChord(2, 1, 1,
			model.Pitch{Midi: 60, Name: "C"},
			model.Pitch{Midi: 64, Name: "E"},
			model.Pitch{Midi: 67, Name: "G"}),
	}}
	idx := IndexPart(part)

	assert := assert.New(t)
	assert.Equal(2, idx.Measures.Len())
	assert.Equal(1, idx.MeasureRhythms.Len())
}

func TestCompareIsSymmetricAndReflexive(t *testing.T) {
	part := model.Part{Events: []model.Event{
		note(1, 1, 1, 60, "C"), note(1, 2, 1, 62, "D"),
		note(2, 1, 1, 64, "E"), note(2, 2, 1, 66, "F#"),
	}}
	idx := IndexPart(part)
	a, b := idx.Sections[1], idx.Sections[2]

	assert := assert.New(t)
	for _, p := range []Policy{PolicyFull, PolicyRhythm, PolicyIntervals} {
		assert.True(Compare(a, a, p))
		assert.Equal(Compare(a, b, p), Compare(b, a, p))
	}
	// same +2 semitone steps from different starting pitches
	assert.False(Compare(a, b, PolicyFull))
	assert.True(Compare(a, b, PolicyIntervals))
}

func TestChordsAlwaysMatchUnderIntervals(t *testing.T) {
	part := model.Part{Events: []model.Event{
		model.NewChord(1, 1, 1, model.Pitch{Midi: 60}, model.Pitch{Midi: 64}, model.Pitch{Midi: 67}),
		model.NewChord(2, 1, 2, model.Pitch{Midi: 50}, model.Pitch{Midi: 57}),
	}}
	idx := IndexPart(part)

	assert := assert.New(t)
	assert.True(Compare(idx.Sections[1], idx.Sections[2], PolicyIntervals))
	assert.False(Compare(idx.Sections[1], idx.Sections[2], PolicyFull))
	// chord-only sections carry no intervals and are not registered
	assert.Equal(0, idx.MeasureIntervals.Len())
}

func TestNegativeMeasuresAreSkipped(t *testing.T) {
	part := model.Part{Events: []model.Event{
		note(-1, 1, 1, 60, "C"),
		note(1, 1, 1, 62, "D"),
	}}
	idx := IndexPart(part)

	assert := assert.New(t)
	assert.Equal(1, idx.NoteCount)
	assert.Equal(1, idx.MeasureCount())
}

func TestPickupMeasureZeroIsIndexed(t *testing.T) {
	part := model.Part{Events: []model.Event{
		note(0, 4, 0.5, 67, "G"),
		note(1, 1, 1, 60, "C"),
	}}
	idx := IndexPart(part)

	assert := assert.New(t)
	assert.Equal(2, idx.MeasureCount())
	_, ok := idx.Measures.At(0)
	assert.True(ok)
}

func TestGraceNotesCarryNoRhythm(t *testing.T) {
	part := model.Part{Events: []model.Event{
		note(1, 1, 0, 62, "D"),
		note(1, 1, 1, 60, "C"),
	}}
	idx := IndexPart(part)

	assert := assert.New(t)
	assert.Equal(1, idx.GraceNoteCount)
	assert.Equal(1, idx.RhythmNotes.Len())
	assert.Equal(1, idx.GraceNotesInMeasures[1])
}

func TestIntervalDirectionCounts(t *testing.T) {
	part := model.Part{Events: []model.Event{
		note(1, 1, 1, 60, "C"),
		note(1, 2, 1, 64, "E"),
		note(1, 3, 1, 64, "E"),
		note(1, 4, 1, 57, "A"),
	}}
	idx := IndexPart(part)

	assert := assert.New(t)
	assert.Equal(3, idx.IntervalCount)
	assert.Equal(1, idx.AscendingCount)
	assert.Equal(1, idx.DescendingCount)
	assert.Equal(1, idx.UnisonCount)
	assert.Equal(1, idx.IntervalsAbs[4])
	assert.Equal(1, idx.IntervalsAbs[7])
	assert.Equal(1, idx.IntervalsAbs[0])
}

func TestRestsResetTheMelodicInterval(t *testing.T) {
	part := model.Part{Events: []model.Event{
		note(1, 1, 1, 60, "C"),
		model.NewRest(1, 2, 1),
		note(1, 3, 1, 64, "E"),
	}}
	idx := IndexPart(part)

	assert := assert.New(t)
	assert.Equal(0, idx.IntervalCount)
	assert.Equal(1, idx.RestsInMeasures[1])
}

func TestAccidentalsAreCountedAgainstPossible(t *testing.T) {
	part := model.Part{Events: []model.Event{
		note(1, 1, 1, 61, "C#"),
		model.NewChord(1, 2, 1,
			model.Pitch{Midi: 61, Name: "C#", Accidental: true},
			model.Pitch{Midi: 64, Name: "E"}),
	}}
	part.Events[0].Pitches[0].Accidental = true
	idx := IndexPart(part)

	assert := assert.New(t)
	assert.Equal(2, idx.AccidentalCount)
	assert.Equal(3, idx.PossibleAccidentalCount)
	assert.Equal(2, idx.AccidentalsInMeasures[1])
}
