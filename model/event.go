package model

// EventType is the closed set of musical event kinds the analyser understands.
type EventType uint8

const (
	EventNote EventType = iota
	EventChord
	EventRest
	EventUnpitched
)

func (t EventType) String() string {
	switch t {
	case EventNote:
		return "note"
	case EventChord:
		return "chord"
	case EventRest:
		return "rest"
	case EventUnpitched:
		return "unpitched"
	}
	return "unknown"
}

// Pitch is one semitone-accurate pitch.
type Pitch struct {
	Midi uint8
	// Name is the letter name without octave, e.g. "C#" or "Bb".
	Name string
	// Accidental is set when the score displays an accidental on this pitch.
	Accidental bool
}

// Event is one entry in a part's flattened event stream. Pitches holds one
// pitch for EventNote, two or more for EventChord and is nil otherwise.
type Event struct {
	Type    EventType
	Measure int
	Beat    float64
	// Duration in quarter lengths. Zero marks a grace note.
	Duration float64
	Pitches  []Pitch
}

// IsGrace reports whether the event is a grace note (or grace chord).
func (e Event) IsGrace() bool { return e.Duration == 0 }

func NewNote(measure int, beat, duration float64, p Pitch) Event {
	return Event{Type: EventNote, Measure: measure, Beat: beat, Duration: duration, Pitches: []Pitch{p}}
}

func NewChord(measure int, beat, duration float64, pitches ...Pitch) Event {
	return Event{Type: EventChord, Measure: measure, Beat: beat, Duration: duration, Pitches: pitches}
}

func NewRest(measure int, beat, duration float64) Event {
	return Event{Type: EventRest, Measure: measure, Beat: beat, Duration: duration}
}

func NewUnpitched(measure int, beat, duration float64) Event {
	return Event{Type: EventUnpitched, Measure: measure, Beat: beat, Duration: duration}
}
