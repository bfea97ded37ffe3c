package describe

import "strconv"

// intervalNames maps semitone distances 0..24 to interval names.
var intervalNames = map[int]string{
	0: "unison", 1: "minor 2nd", 2: "major 2nd", 3: "minor 3rd",
	4: "major 3rd", 5: "perfect 4th", 6: "augmented 4th / tritone",
	7: "perfect 5th", 8: "minor 6th", 9: "major 6th", 10: "minor 7th",
	11: "major 7th", 12: "octave", 13: "minor 9th", 14: "major 9th",
	15: "minor 10th", 16: "major 10th", 17: "perfect 11th",
	18: "augmented 11th", 19: "perfect 12th", 20: "minor 13th",
	21: "major 13th", 22: "minor 14th", 23: "major 14th", 24: "2 octaves",
}

// IntervalName names an absolute interval in semitones, up to two octaves.
func IntervalName(semitones int) (string, bool) {
	name, ok := intervalNames[semitones]
	return name, ok
}

var britishDurations = map[float64]string{
	4.0: "semibreves", 3.0: "dotted minims", 2.0: "minims",
	1.5: "dotted crotchets", 1.0: "crotchets", 0.75: "dotted quavers",
	0.5: "quavers", 0.375: "dotted semi-quavers", 0.25: "semi-quavers",
	0.1875: "dotted demi-semi-quavers", 0.125: "demi-semi-quavers",
	0.09375: "dotted hemi-demi-semi-quavers", 0.0625: "hemi-demi-semi-quavers",
	0.0: "grace notes",
}

var americanDurations = map[float64]string{
	4.0: "whole notes", 3.0: "dotted half notes", 2.0: "half notes",
	1.5: "dotted quarter notes", 1.0: "quarter notes", 0.75: "dotted eighth notes",
	0.5: "eighth notes", 0.375: "dotted sixteenth notes", 0.25: "sixteenth notes",
	0.1875: "dotted thirty-second notes", 0.125: "thirty-second notes",
	0.09375: "dotted sixty-fourth notes", 0.0625: "sixty-fourth notes",
	0.0: "grace notes",
}

// DurationName names a quarter length per the configured rhythm style,
// plural. Unmapped lengths (tuplets and the like) stay numeric.
func DurationName(quarterLength float64, cfg Config) string {
	var names map[float64]string
	switch cfg.RhythmDescription {
	case RhythmAmerican:
		names = americanDurations
	case RhythmNone:
		names = nil
	default:
		names = britishDurations
	}
	if name, ok := names[quarterLength]; ok {
		return name
	}
	return strconv.FormatFloat(quarterLength, 'g', -1, 64)
}

// DurationNameSingular is DurationName for a single note value, as used in
// tempo referents.
func DurationNameSingular(quarterLength float64, cfg Config) string {
	name := DurationName(quarterLength, cfg)
	if len(name) > 1 && name[len(name)-1] == 's' {
		return name[:len(name)-1]
	}
	return name
}
