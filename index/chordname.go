package index

import "fmt"

// namedChords maps interval fingerprints (ascending semitone offsets above
// the lowest pitch, joined like "4-7") to common chord names.
var namedChords = map[string]string{
	"4-7":    "major triad",
	"3-7":    "minor triad",
	"3-6":    "diminished triad",
	"4-8":    "augmented triad",
	"4-7-10": "dominant seventh chord",
	"3-7-10": "minor seventh chord",
	"4-7-11": "major seventh chord",
	"3-6-9":  "diminished seventh chord",
	"3-6-10": "half-diminished seventh chord",
	"3-7-11": "minor-major seventh chord",
	"2-7":    "Suspended 2nd",
	"5-7":    "Suspended 4th",
	"7":      "perfect fifth",
	"12":     "octave",
}

// dyadNames names two-note "chords" by interval quality.
var dyadNames = map[int]string{
	1: "minor second", 2: "major second", 3: "minor third", 4: "major third",
	5: "perfect fourth", 6: "tritone", 7: "perfect fifth", 8: "minor sixth",
	9: "major sixth", 10: "minor seventh", 11: "major seventh", 12: "octave",
}

// ChordCommonName names a chord from its interval fingerprint. [5 7] and
// [2 7] are always "Suspended 4th" / "Suspended 2nd", the common notation
// convention for those two open-voiced sonorities.
func ChordCommonName(intervals []int) string {
	key := intervalKey(intervals)
	switch key {
	case "5-7":
		return "Suspended 4th"
	case "2-7":
		return "Suspended 2nd"
	}
	if name, ok := namedChords[key]; ok {
		return name
	}
	if len(intervals) == 1 {
		if name, ok := dyadNames[intervals[0]]; ok {
			return name
		}
	}
	return fmt.Sprintf("%d-note chord", len(intervals)+1)
}
