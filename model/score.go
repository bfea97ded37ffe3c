package model

// Part is one staff's worth of events in score order.
type Part struct {
	ID           string
	Name         string
	Events       []Event
	MeasureCount int
}

// Instrument groups 1..N consecutive parts, e.g. a piano owns two staves.
type Instrument struct {
	Name      string
	StartPart int
	PartCount int
	Selected  bool
}

type TimeSignature struct {
	Measure     int
	Numerator   int
	Denominator int
}

// KeySignature counts sharps; negative values are flats.
type KeySignature struct {
	Measure int
	Sharps  int
}

type Tempo struct {
	Measure int
	BPM     float64
	Text    string
	// ReferentQL is the quarter length of the beat unit the BPM refers to,
	// dots included. ReferentDots is how many dots that unit carries.
	ReferentQL   float64
	ReferentDots int
}

type Score struct {
	Title          string
	Composer       string
	Parts          []Part
	Instruments    []Instrument
	TimeSignatures []TimeSignature
	KeySignatures  []KeySignature
	Tempos         []Tempo
}

// MeasureCount returns the bar count of the first part, matching how the
// score-level summary reports the length of the piece.
func (s *Score) MeasureCount() int {
	if len(s.Parts) == 0 {
		return 0
	}
	return s.Parts[0].MeasureCount
}
