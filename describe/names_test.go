package describe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dbuik1/talkingscores/model"
)

func TestDurationNamesPerStyle(t *testing.T) {
	british := Config{RhythmDescription: RhythmBritish}
	american := Config{RhythmDescription: RhythmAmerican}
	none := Config{RhythmDescription: RhythmNone}

	assert := assert.New(t)
	assert.Equal("crotchets", DurationName(1, british))
	assert.Equal("quarter notes", DurationName(1, american))
	assert.Equal("1", DurationName(1, none))
	assert.Equal("dotted minims", DurationName(3, british))
	assert.Equal("grace notes", DurationName(0, british))
	// tuplet lengths stay numeric
	assert.Equal("0.3333333333333333", DurationName(1.0/3.0, british))
}

func TestDurationNameSingular(t *testing.T) {
	cfg := DefaultConfig()
	assert := assert.New(t)
	assert.Equal("crotchet", DurationNameSingular(1, cfg))
	assert.Equal("dotted minim", DurationNameSingular(3, cfg))
}

func TestIntervalNameRange(t *testing.T) {
	assert := assert.New(t)
	name, ok := IntervalName(0)
	assert.True(ok)
	assert.Equal("unison", name)

	name, ok = IntervalName(24)
	assert.True(ok)
	assert.Equal("2 octaves", name)

	_, ok = IntervalName(25)
	assert.False(ok)
}

func TestKeySignatureText(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("No sharps or flats", KeySignatureText(model.KeySignature{}))
	assert.Equal("1 sharp", KeySignatureText(model.KeySignature{Sharps: 1}))
	assert.Equal("3 sharps", KeySignatureText(model.KeySignature{Sharps: 3}))
	assert.Equal("1 flat", KeySignatureText(model.KeySignature{Sharps: -1}))
	assert.Equal("2 flats", KeySignatureText(model.KeySignature{Sharps: -2}))
}

func TestTimeSignatureText(t *testing.T) {
	assert.Equal(t, "3 4", TimeSignatureText(model.TimeSignature{Numerator: 3, Denominator: 4}))
}

func TestTempoText(t *testing.T) {
	cfg := DefaultConfig()
	assert := assert.New(t)

	plain := model.Tempo{BPM: 120, ReferentQL: 1}
	assert.Equal("120 bpm @ crotchet", TempoText(plain, cfg))

	marked := model.Tempo{BPM: 96.5, Text: "Allegro", ReferentQL: 1}
	assert.Equal("Allegro (96 bpm @ crotchet)", TempoText(marked, cfg))

	// missing bpm falls back to 120
	assert.Equal("120 bpm @ crotchet", TempoText(model.Tempo{ReferentQL: 1}, cfg))
}

func TestTempoReferentDotPlacement(t *testing.T) {
	dotted := model.Tempo{BPM: 60, ReferentQL: 1.5, ReferentDots: 1}

	before := Config{RhythmDescription: RhythmBritish, DotPosition: DotBefore}
	after := Config{RhythmDescription: RhythmBritish, DotPosition: DotAfter}

	assert := assert.New(t)
	assert.Equal("60 bpm @ dotted crotchet", TempoText(dotted, before))
	assert.Equal("60 bpm @ crotchet dotted", TempoText(dotted, after))
}
