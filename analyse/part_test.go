package analyse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dbuik1/talkingscores/describe"
	"github.com/dbuik1/talkingscores/model"
)

func note(measure int, beat, duration float64, midi uint8, name string) model.Event {
	return model.NewNote(measure, beat, duration, model.Pitch{Midi: midi, Name: name})
}

// two identical bars back to back
func twoIdenticalBars() model.Part {
	return model.Part{Events: []model.Event{
		note(1, 1, 1, 60, "C"), note(1, 2, 1, 64, "E"),
		note(2, 1, 1, 60, "C"), note(2, 2, 1, 64, "E"),
	}}
}

// bars 1-2 come back at bars 5-6, with unique bars between and after
func repeatedPhrasePart() model.Part {
	return model.Part{Events: []model.Event{
		note(1, 1, 1, 60, "C"), note(1, 2, 1, 62, "D"),
		note(2, 1, 1, 64, "E"), note(2, 2, 1, 65, "F"),
		note(3, 1, 1, 67, "G"),
		note(4, 1, 1, 69, "A"),
		note(5, 1, 1, 60, "C"), note(5, 2, 1, 62, "D"),
		note(6, 1, 1, 64, "E"), note(6, 2, 1, 65, "F"),
	}}
}

func analysedPart(t *testing.T, part model.Part) *Part {
	t.Helper()
	p := NewPart(describe.DefaultConfig())
	p.SetPart(part)
	return p
}

func TestRepeatedBarIsWordedAsUsedAllOfTheWayThrough(t *testing.T) {
	p := analysedPart(t, twoIdenticalBars())
	summary := p.DescribeRepetitionSummary()

	assert := assert.New(t)
	assert.Contains(summary, "The pitch and rhythm in bar 1 is used all of the way through. ")
	assert.Contains(summary, "There are 1 unique measures")
}

func TestRepeatedPhraseIsWordedWithItsCoverage(t *testing.T) {
	p := analysedPart(t, repeatedPhrasePart())
	summary := p.DescribeRepetitionSummary()

	// 4 of 6 bars are covered by the repeated phrase
	assert.Contains(t, summary,
		"The pitch and rhythm in bars 1 and 2 are used over half of the way through. ")
}

func TestRepetitionSummaryIsIdempotent(t *testing.T) {
	p := analysedPart(t, repeatedPhrasePart())
	assert.Equal(t, p.DescribeRepetitionSummary(), p.DescribeRepetitionSummary())
}

func TestSingleBarPartHasNoRepetitionStory(t *testing.T) {
	p := analysedPart(t, model.Part{Events: []model.Event{
		note(1, 1, 1, 60, "C"),
	}})
	assert.Equal(t, "", p.DescribeRepetitionSummary())
}

func TestRestOnlyPartSummarisesRests(t *testing.T) {
	p := analysedPart(t, model.Part{Events: []model.Event{
		model.NewRest(1, 1, 1),
		model.NewRest(2, 1, 1),
	}})
	summary := p.DescribeSummary()

	assert := assert.New(t)
	assert.Contains(summary, "rests")
	assert.Contains(summary, "all crotchets")
}

func TestSummaryStartsWithTheDominantCategory(t *testing.T) {
	p := analysedPart(t, twoIdenticalBars())
	summary := p.DescribeSummary()

	assert := assert.New(t)
	assert.Contains(summary, "All individual notes")
	assert.Contains(summary, "crotchets")
}

func TestRepetitionInContextCrossReferences(t *testing.T) {
	p := analysedPart(t, repeatedPhrasePart())
	ctx := p.DescribeRepetitionInContext()

	assert := assert.New(t)
	assert.Contains(ctx[1], "Bars 1 and 2 are used 1 more times. ")
	assert.Contains(ctx[5], "Bars 5 and 6 were first used at bar 1. ")
}

func TestSingleRepeatedBarContext(t *testing.T) {
	p := analysedPart(t, twoIdenticalBars())
	ctx := p.DescribeRepetitionInContext()

	assert := assert.New(t)
	assert.Equal("Bar 1 is used 1 more times. ", ctx[1])
	assert.Equal("Bar 2 was first used at bar 1. ", ctx[2])
}

func TestImmediateRepetitionFlagsExactCopies(t *testing.T) {
	p := analysedPart(t, twoIdenticalBars())
	immediate := p.DescribeImmediateRepetition()

	assert := assert.New(t)
	assert.Len(immediate, 1)
	assert.Equal("exact", immediate[2].Kind)
	assert.Equal("Same as previous bar.", immediate[2].Text)
}

func TestImmediateRepetitionFlagsRhythmCopies(t *testing.T) {
	p := analysedPart(t, model.Part{Events: []model.Event{
		note(1, 1, 1, 60, "C"), note(1, 2, 1, 64, "E"),
		note(2, 1, 1, 65, "F"), note(2, 2, 1, 67, "G"),
	}})
	immediate := p.DescribeImmediateRepetition()

	assert := assert.New(t)
	assert.Equal("rhythm", immediate[2].Kind)
	assert.Equal("Same rhythm as previous bar.", immediate[2].Text)
}

func TestUnpitchedOnlyPartSkipsIntervalWording(t *testing.T) {
	p := analysedPart(t, model.Part{Events: []model.Event{
		model.NewUnpitched(1, 1, 0.5),
		model.NewUnpitched(1, 2, 0.5),
		model.NewUnpitched(2, 1, 0.5),
		model.NewUnpitched(2, 2, 0.5),
	}})

	assert := assert.New(t)
	assert.Equal(0, p.Index().IntervalCount)
	assert.Equal(0, p.Index().MeasureIntervals.Len())
	assert.Contains(p.DescribeRepetitionSummary(), "0 measures have unique intervals")
}

func TestEmptyPartProducesNoSummary(t *testing.T) {
	p := analysedPart(t, model.Part{})

	assert := assert.New(t)
	assert.Equal("", p.DescribeSummary())
	assert.Equal("", p.DescribeRepetitionSummary())
	assert.Empty(p.DescribeRepetitionInContext())
}
