// Package musicxml reads score-partwise MusicXML documents, compressed or
// plain, into the analysis model.
package musicxml

import (
	"encoding/xml"
	"io"
	"strconv"
)

type document struct {
	XMLName        xml.Name       `xml:"score-partwise"`
	Identification identification `xml:"identification"`
	MovementTitle  string         `xml:"movement-title"`
	Work           work           `xml:"work"`
	PartList       partList       `xml:"part-list"`
	Parts          []part         `xml:"part"`
}

type work struct {
	Title string `xml:"work-title"`
}

type identification struct {
	Creators []creator `xml:"creator"`
}

type creator struct {
	Type string `xml:"type,attr"`
	Name string `xml:",chardata"`
}

func (id identification) composer() string {
	for _, c := range id.Creators {
		if c.Type == "composer" {
			return c.Name
		}
	}
	if len(id.Creators) > 0 {
		return id.Creators[0].Name
	}
	return ""
}

type partList struct {
	ScoreParts []scorePart
}

type scorePart struct {
	ID    string `xml:"id,attr"`
	Name  string `xml:"part-name"`
	Group int    `xml:"-"`
}

// UnmarshalXML walks the part-list in document order so score-parts can be
// tagged with the innermost part-group enclosing them. Group is 0 for parts
// outside any group.
func (pl *partList) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	nextGroup := 0
	var open []int
	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "part-group":
				var typ string
				for _, attr := range t.Attr {
					if attr.Name.Local == "type" {
						typ = attr.Value
					}
				}
				switch typ {
				case "start":
					nextGroup++
					open = append(open, nextGroup)
				case "stop":
					if len(open) > 0 {
						open = open[:len(open)-1]
					}
				}
				if err := d.Skip(); err != nil {
					return err
				}
			case "score-part":
				var sp scorePart
				if err := d.DecodeElement(&sp, &t); err != nil {
					return err
				}
				if len(open) > 0 {
					sp.Group = open[len(open)-1]
				}
				pl.ScoreParts = append(pl.ScoreParts, sp)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "part-list" {
				return nil
			}
		}
	}
	return nil
}

type part struct {
	ID       string    `xml:"id,attr"`
	Measures []measure `xml:"measure"`
}

// measure keeps its children in document order. Note, backup and forward
// placement is positional, so the stock struct decoding cannot be used.
type measure struct {
	Number int
	Events []interface{}
}

func (m *measure) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	m.Number = -1
	for _, attr := range start.Attr {
		if attr.Name.Local == "number" {
			if n, err := strconv.Atoi(attr.Value); err == nil {
				m.Number = n
			}
		}
	}

	for {
		token, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "attributes":
				var a attributes
				if err := d.DecodeElement(&a, &t); err != nil {
					return err
				}
				m.Events = append(m.Events, a)
			case "note":
				var n note
				if err := d.DecodeElement(&n, &t); err != nil {
					return err
				}
				m.Events = append(m.Events, n)
			case "backup":
				var b backup
				if err := d.DecodeElement(&b, &t); err != nil {
					return err
				}
				m.Events = append(m.Events, b)
			case "forward":
				var f forward
				if err := d.DecodeElement(&f, &t); err != nil {
					return err
				}
				m.Events = append(m.Events, f)
			case "direction":
				var dir direction
				if err := d.DecodeElement(&dir, &t); err != nil {
					return err
				}
				m.Events = append(m.Events, dir)
			case "sound":
				var s sound
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				m.Events = append(m.Events, s)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "measure" {
				return nil
			}
		}
	}
	return nil
}

type attributes struct {
	Divisions int             `xml:"divisions"`
	Keys      []key           `xml:"key"`
	Times     []timeSignature `xml:"time"`
}

type key struct {
	Fifths int `xml:"fifths"`
}

type timeSignature struct {
	Beats    int `xml:"beats"`
	BeatType int `xml:"beat-type"`
}

type backup struct {
	Duration int `xml:"duration"`
}

type forward struct {
	Duration int `xml:"duration"`
}

type direction struct {
	Sound     sound      `xml:"sound"`
	Words     []string   `xml:"direction-type>words"`
	Metronome *metronome `xml:"direction-type>metronome"`
}

type sound struct {
	Tempo float64 `xml:"tempo,attr"`
}

type metronome struct {
	BeatUnit     string   `xml:"beat-unit"`
	BeatUnitDots []string `xml:"beat-unit-dot"`
	PerMinute    string   `xml:"per-minute"`
}

type note struct {
	Pitch      *pitch   `xml:"pitch"`
	Unpitched  xml.Name `xml:"unpitched"`
	Rest       xml.Name `xml:"rest"`
	Chord      xml.Name `xml:"chord"`
	Grace      xml.Name `xml:"grace"`
	Duration   int      `xml:"duration"`
	Accidental string   `xml:"accidental"`
	Ties       []tie    `xml:"tie"`
}

func (n note) isRest() bool      { return n.Rest.Local != "" }
func (n note) isChord() bool     { return n.Chord.Local != "" }
func (n note) isGrace() bool     { return n.Grace.Local != "" }
func (n note) isUnpitched() bool { return n.Unpitched.Local != "" }

func (n note) tiedStop() bool {
	for _, t := range n.Ties {
		if t.Type == "stop" {
			return true
		}
	}
	return false
}

func (n note) tiedStart() bool {
	for _, t := range n.Ties {
		if t.Type == "start" {
			return true
		}
	}
	return false
}

type tie struct {
	Type string `xml:"type,attr"`
}

type pitch struct {
	Step   string `xml:"step"`
	Alter  int    `xml:"alter"`
	Octave int    `xml:"octave"`
}

var stepOffsets = map[string]int{
	"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
}

func (p pitch) midi() int {
	return (p.Octave+1)*12 + stepOffsets[p.Step] + p.Alter
}

func (p pitch) name() string {
	name := p.Step
	switch {
	case p.Alter > 0:
		for i := 0; i < p.Alter; i++ {
			name += "#"
		}
	case p.Alter < 0:
		for i := 0; i < -p.Alter; i++ {
			name += "b"
		}
	}
	return name
}
