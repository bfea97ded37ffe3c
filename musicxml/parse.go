package musicxml

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/dbuik1/talkingscores/model"
)

// Parse reads a plain score-partwise MusicXML document.
func Parse(r io.Reader) (*model.Score, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding musicxml: %w", err)
	}
	return convert(&doc), nil
}

// ParseBytes sniffs the payload and reads it as compressed or plain MusicXML.
func ParseBytes(data []byte) (*model.Score, error) {
	if bytes.HasPrefix(data, []byte("PK\x03\x04")) {
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("opening mxl archive: %w", err)
		}
		return parseArchive(zr)
	}
	return Parse(bytes.NewReader(data))
}

// ParseFile reads a .musicxml, .xml or compressed .mxl file.
func ParseFile(path string) (*model.Score, error) {
	if strings.EqualFold(filepath.Ext(path), ".mxl") {
		zr, err := zip.OpenReader(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer zr.Close()
		return parseArchive(&zr.Reader)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// parseArchive finds the score inside a .mxl container, preferring the
// rootfile named by META-INF/container.xml.
func parseArchive(zr *zip.Reader) (*model.Score, error) {
	target := containerRootfile(zr)
	for _, f := range zr.File {
		if target != "" && f.Name != target {
			continue
		}
		if target == "" {
			if strings.HasPrefix(f.Name, "META-INF/") {
				continue
			}
			ext := strings.ToLower(filepath.Ext(f.Name))
			if ext != ".xml" && ext != ".musicxml" {
				continue
			}
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("reading %s from archive: %w", f.Name, err)
		}
		defer rc.Close()
		return Parse(rc)
	}
	return nil, fmt.Errorf("mxl archive contains no score document")
}

func containerRootfile(zr *zip.Reader) string {
	for _, f := range zr.File {
		if f.Name != "META-INF/container.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return ""
		}
		defer rc.Close()
		var c struct {
			Rootfiles []struct {
				FullPath string `xml:"full-path,attr"`
			} `xml:"rootfiles>rootfile"`
		}
		if err := xml.NewDecoder(rc).Decode(&c); err != nil {
			return ""
		}
		if len(c.Rootfiles) > 0 {
			return c.Rootfiles[0].FullPath
		}
	}
	return ""
}

var beatUnitLengths = map[string]float64{
	"whole":   4,
	"half":    2,
	"quarter": 1,
	"eighth":  0.5,
	"16th":    0.25,
	"32nd":    0.125,
}

func convert(doc *document) *model.Score {
	score := &model.Score{
		Title:    doc.Work.Title,
		Composer: doc.Identification.composer(),
	}
	if score.Title == "" {
		score.Title = doc.MovementTitle
	}

	listed := make(map[string]scorePart)
	for _, sp := range doc.PartList.ScoreParts {
		listed[sp.ID] = sp
	}

	// consecutive parts sharing a part-group or a part-name are staves of
	// one instrument, a piano's two staves being the usual case
	for pi := 0; pi < len(doc.Parts); {
		sp := listed[doc.Parts[pi].ID]
		pj := pi + 1
		for pj < len(doc.Parts) && sameInstrument(sp, listed[doc.Parts[pj].ID]) {
			pj++
		}
		score.Instruments = append(score.Instruments, model.Instrument{
			Name:      sp.Name,
			StartPart: pi,
			PartCount: pj - pi,
			Selected:  true,
		})
		for ; pi < pj; pi++ {
			p := doc.Parts[pi]
			score.Parts = append(score.Parts, convertPart(p, listed[p.ID].Name, pi == 0, score))
		}
	}
	return score
}

func sameInstrument(a, b scorePart) bool {
	if a.Group > 0 && a.Group == b.Group {
		return true
	}
	return a.Name != "" && a.Name == b.Name
}

// convertPart flattens one part's measures into the event stream. Signature
// and tempo changes are collected from the first part only; every part of a
// score shares them.
func convertPart(p part, name string, collectChanges bool, score *model.Score) model.Part {
	out := model.Part{ID: p.ID, Name: name, MeasureCount: len(p.Measures)}
	divisions := 1
	tieOpen := make(map[int]int)

	for _, m := range p.Measures {
		position := 0
		for _, raw := range m.Events {
			switch ev := raw.(type) {
			case attributes:
				if ev.Divisions > 0 {
					divisions = ev.Divisions
				}
				if collectChanges {
					collectAttributes(ev, m.Number, score)
				}
			case direction:
				if collectChanges {
					collectTempo(ev, m.Number, score)
				}
			case sound:
				if collectChanges && ev.Tempo > 0 {
					score.Tempos = append(score.Tempos, model.Tempo{Measure: m.Number, BPM: ev.Tempo, ReferentQL: 1})
				}
			case backup:
				position -= ev.Duration
			case forward:
				position += ev.Duration
			case note:
				position = convertNote(ev, m.Number, position, divisions, &out, tieOpen)
			}
		}
	}
	return out
}

func collectAttributes(a attributes, measure int, score *model.Score) {
	for _, k := range a.Keys {
		score.KeySignatures = append(score.KeySignatures, model.KeySignature{Measure: measure, Sharps: k.Fifths})
	}
	for _, t := range a.Times {
		if t.Beats > 0 && t.BeatType > 0 {
			score.TimeSignatures = append(score.TimeSignatures, model.TimeSignature{
				Measure: measure, Numerator: t.Beats, Denominator: t.BeatType,
			})
		}
	}
}

func collectTempo(d direction, measure int, score *model.Score) {
	tempo := model.Tempo{Measure: measure, BPM: d.Sound.Tempo, Text: strings.Join(d.Words, " "), ReferentQL: 1}
	if m := d.Metronome; m != nil {
		if ql, ok := beatUnitLengths[m.BeatUnit]; ok {
			tempo.ReferentQL = ql * dotFactor(len(m.BeatUnitDots))
			tempo.ReferentDots = len(m.BeatUnitDots)
		}
		if tempo.BPM == 0 {
			if bpm, err := strconv.ParseFloat(m.PerMinute, 64); err == nil {
				tempo.BPM = bpm
			}
		}
	}
	if tempo.BPM == 0 && tempo.Text == "" {
		return
	}
	score.Tempos = append(score.Tempos, tempo)
}

func dotFactor(dots int) float64 {
	switch dots {
	case 1:
		return 1.5
	case 2:
		return 1.75
	}
	return 1
}

// convertNote appends one note element to the part and returns the new
// position in division units. Chord members extend the previous event;
// matching tie stops extend the tied event instead of adding a new one.
func convertNote(n note, measure, position, divisions int, out *model.Part, tieOpen map[int]int) int {
	duration := float64(n.Duration) / float64(divisions)
	if n.isGrace() {
		duration = 0
	}
	beat := 1 + float64(position)/float64(divisions)
	advance := position
	if !n.isChord() && !n.isGrace() {
		advance += n.Duration
	}

	switch {
	case n.isRest():
		out.Events = append(out.Events, model.NewRest(measure, beat, duration))

	case n.isUnpitched():
		out.Events = append(out.Events, model.NewUnpitched(measure, beat, duration))

	case n.Pitch != nil:
		p := model.Pitch{
			Midi:       uint8(n.Pitch.midi()),
			Name:       n.Pitch.name(),
			Accidental: n.Accidental != "",
		}
		midi := n.Pitch.midi()

		if n.isChord() && len(out.Events) > 0 {
			last := &out.Events[len(out.Events)-1]
			if last.Type == model.EventNote || last.Type == model.EventChord {
				last.Pitches = append(last.Pitches, p)
				last.Type = model.EventChord
				return advance
			}
		}

		if n.tiedStop() && !n.isChord() {
			if i, ok := tieOpen[midi]; ok && i < len(out.Events) {
				out.Events[i].Duration += duration
				if !n.tiedStart() {
					delete(tieOpen, midi)
				}
				return advance
			}
		}

		out.Events = append(out.Events, model.NewNote(measure, beat, duration, p))
		if n.tiedStart() && !n.isChord() {
			tieOpen[midi] = len(out.Events) - 1
		}
	}
	return advance
}
