package describe

import (
	"fmt"
	"math"

	"github.com/dbuik1/talkingscores/model"
)

// TimeSignatureText reads a time signature aloud: 3/4 becomes "3 4".
func TimeSignatureText(ts model.TimeSignature) string {
	return fmt.Sprintf("%d %d", ts.Numerator, ts.Denominator)
}

func KeySignatureText(ks model.KeySignature) string {
	switch {
	case ks.Sharps > 0:
		noun := "sharps"
		if ks.Sharps == 1 {
			noun = "sharp"
		}
		return fmt.Sprintf("%d %s", ks.Sharps, noun)
	case ks.Sharps < 0:
		noun := "flats"
		if ks.Sharps == -1 {
			noun = "flat"
		}
		return fmt.Sprintf("%d %s", -ks.Sharps, noun)
	}
	return "No sharps or flats"
}

var dotNames = map[int]string{1: "dotted", 2: "double dotted"}

// TempoText reads a tempo marking aloud, e.g.
// "Allegro (120 bpm @ dotted crotchet)".
func TempoText(t model.Tempo, cfg Config) string {
	bpm := t.BPM
	if bpm == 0 {
		bpm = 120
	}
	referent := tempoReferent(t, cfg)
	if t.Text != "" {
		return fmt.Sprintf("%s (%d bpm @ %s)", t.Text, int(math.Floor(bpm)), referent)
	}
	return fmt.Sprintf("%d bpm @ %s", int(math.Floor(bpm)), referent)
}

func tempoReferent(t model.Tempo, cfg Config) string {
	base := t.ReferentQL
	if base == 0 {
		base = 1
	}
	switch t.ReferentDots {
	case 1:
		base = base / 1.5
	case 2:
		base = base / 1.75
	}

	name := DurationNameSingular(base, cfg)
	dot := dotNames[t.ReferentDots]
	if dot == "" {
		return name
	}
	if cfg.DotPosition == DotAfter {
		return name + " " + dot
	}
	return dot + " " + name
}
