// Package midifile reads standard MIDI files into the analysis model. Each
// track carrying notes becomes one part; simultaneous onsets become chords
// and gaps between notes become rests.
package midifile

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/dbuik1/talkingscores/model"
)

var pitchNames = [12]string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B"}

// ReadFile parses a standard MIDI file.
func ReadFile(path string) (*model.Score, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}
	return ReadBytes(dat)
}

// ReadBytes parses standard MIDI file contents.
func ReadBytes(dat []byte) (s *model.Score, e error) {
	// the smf reader panics on some malformed files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	mf, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("parsing midi file: %w", err)
	}
	return convert(mf), nil
}

type timedNote struct {
	on, off int64
	key     uint8
}

type meterChange struct {
	ticks int64
	num   uint8
	den   uint8
}

type tempoChange struct {
	ticks int64
	bpm   float64
}

// meterMap assigns measure numbers and beats to absolute tick positions.
type meterMap struct {
	ticksPerQuarter int64
	changes         []meterChange
}

func (mm *meterMap) locate(ticks int64) (measure int, beat float64) {
	measure = 1
	segStart := int64(0)
	segLen := mm.measureTicks(4, 4)
	for _, c := range mm.changes {
		if c.ticks > ticks {
			break
		}
		measure += int((c.ticks - segStart) / segLen)
		segStart = c.ticks
		segLen = mm.measureTicks(c.num, c.den)
	}
	measure += int((ticks - segStart) / segLen)
	within := (ticks - segStart) % segLen
	return measure, 1 + float64(within)/float64(mm.ticksPerQuarter)
}

func (mm *meterMap) measureTicks(num, den uint8) int64 {
	t := mm.ticksPerQuarter * int64(num) * 4 / int64(den)
	if t <= 0 {
		t = mm.ticksPerQuarter * 4
	}
	return t
}

func convert(mf *smf.SMF) *model.Score {
	score := &model.Score{}

	tpq := int64(480)
	if metric, ok := mf.TimeFormat.(smf.MetricTicks); ok {
		tpq = int64(metric.Ticks4th())
	}
	mm := &meterMap{ticksPerQuarter: tpq}

	type trackData struct {
		name  string
		notes []timedNote
	}
	var tracks []trackData
	var tempos []tempoChange

	for ti, events := range mf.Tracks {
		var td trackData
		var absTicks int64
		pressed := make(map[uint8]int64)
		for _, event := range events {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			var bpm float64
			var num, den, clocks, dsq uint8
			var name string
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				if velocity == 0 {
					closeNote(pressed, key, absTicks, &td.notes)
				} else if _, held := pressed[key]; !held {
					pressed[key] = absTicks
				}
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				closeNote(pressed, key, absTicks, &td.notes)
			case event.Message.GetMetaTempo(&bpm):
				tempos = append(tempos, tempoChange{ticks: absTicks, bpm: bpm})
			case event.Message.GetMetaTimeSig(&num, &den, &clocks, &dsq):
				mm.changes = append(mm.changes, meterChange{ticks: absTicks, num: num, den: den})
			case event.Message.GetMetaTrackName(&name):
				if td.name == "" {
					td.name = name
				}
				if ti == 0 && score.Title == "" {
					score.Title = name
				}
			}
		}
		// notes left hanging at end of track close at their onset
		for key, on := range pressed {
			td.notes = append(td.notes, timedNote{on: on, off: on, key: key})
		}
		tracks = append(tracks, td)
	}

	sort.SliceStable(mm.changes, func(i, j int) bool { return mm.changes[i].ticks < mm.changes[j].ticks })
	sort.SliceStable(tempos, func(i, j int) bool { return tempos[i].ticks < tempos[j].ticks })
	resolveChanges(mm, tempos, score)

	for ti, td := range tracks {
		if len(td.notes) == 0 {
			continue
		}
		name := td.name
		if name == "" {
			name = fmt.Sprintf("Track %d", ti+1)
		}
		part := buildPart(td.notes, name, mm)
		score.Instruments = append(score.Instruments, model.Instrument{
			Name:      name,
			StartPart: len(score.Parts),
			PartCount: 1,
			Selected:  true,
		})
		score.Parts = append(score.Parts, part)
	}
	return score
}

func closeNote(pressed map[uint8]int64, key uint8, offTicks int64, notes *[]timedNote) {
	on, held := pressed[key]
	if !held {
		return
	}
	delete(pressed, key)
	*notes = append(*notes, timedNote{on: on, off: offTicks, key: key})
}

// resolveChanges assigns measure numbers to the time signature and tempo
// changes collected during the track scan. Measures can only be located once
// the full meter map is known, so changes carry ticks until here.
func resolveChanges(mm *meterMap, tempos []tempoChange, score *model.Score) {
	for _, c := range mm.changes {
		measure, _ := mm.locate(c.ticks)
		score.TimeSignatures = append(score.TimeSignatures, model.TimeSignature{
			Measure: measure, Numerator: int(c.num), Denominator: int(c.den),
		})
	}
	for _, tc := range tempos {
		measure, _ := mm.locate(tc.ticks)
		score.Tempos = append(score.Tempos, model.Tempo{Measure: measure, BPM: tc.bpm, ReferentQL: 1})
	}
}

// buildPart orders a track's notes, groups shared onsets into chords and
// fills gaps with rests.
func buildPart(notes []timedNote, name string, mm *meterMap) model.Part {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].on != notes[j].on {
			return notes[i].on < notes[j].on
		}
		return notes[i].key < notes[j].key
	})

	part := model.Part{ID: name, Name: name}
	var cursor int64
	maxMeasure := 0

	for i := 0; i < len(notes); {
		onset := notes[i].on
		j := i
		longest := int64(0)
		var pitches []model.Pitch
		for j < len(notes) && notes[j].on == onset {
			if d := notes[j].off - onset; d > longest {
				longest = d
			}
			pitches = append(pitches, model.Pitch{
				Midi: notes[j].key,
				Name: pitchNames[notes[j].key%12],
			})
			j++
		}

		if gap := onset - cursor; gap > 0 {
			if gapQL := quantize(float64(gap) / float64(mm.ticksPerQuarter)); gapQL > 0 {
				measure, beat := mm.locate(cursor)
				part.Events = append(part.Events, model.NewRest(measure, beat, gapQL))
			}
		}

		measure, beat := mm.locate(onset)
		if measure > maxMeasure {
			maxMeasure = measure
		}
		duration := quantize(float64(longest) / float64(mm.ticksPerQuarter))
		if len(pitches) == 1 {
			part.Events = append(part.Events, model.NewNote(measure, beat, duration, pitches[0]))
		} else {
			part.Events = append(part.Events, model.NewChord(measure, beat, duration, pitches...))
		}

		if end := onset + longest; end > cursor {
			cursor = end
		}
		i = j
	}

	part.MeasureCount = maxMeasure
	return part
}

// quantize snaps a quarter-length to the nearest sixteenth of a quarter.
func quantize(ql float64) float64 {
	return math.Round(ql*16) / 16
}
