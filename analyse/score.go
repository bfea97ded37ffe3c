package analyse

import (
	"fmt"
	"strings"

	"github.com/dbuik1/talkingscores/describe"
	"github.com/dbuik1/talkingscores/model"
)

// Analyser runs the part analysis over every selected instrument of a score
// and words the score-level summary.
type Analyser struct {
	cfg   describe.Config
	score *model.Score

	// Parts holds one analysed Part per selected part, in score order.
	Parts []*Part
	// PartNames and SummaryParts are parallel to Parts.
	PartNames    []string
	SummaryParts []string
	// RepetitionInContexts and ImmediateContexts are keyed by part index in
	// the score, then by measure number.
	RepetitionInContexts map[int]map[int]string
	ImmediateContexts    map[int]map[int]Immediate

	GeneralSummary string
}

func NewAnalyser(cfg describe.Config) *Analyser {
	return &Analyser{cfg: cfg}
}

// SetScore analyses every part belonging to a selected instrument. Calling it
// again with another score replaces all results.
func (a *Analyser) SetScore(score *model.Score) {
	a.score = score
	a.Parts = nil
	a.PartNames = nil
	a.SummaryParts = nil
	a.RepetitionInContexts = make(map[int]map[int]string)
	a.ImmediateContexts = make(map[int]map[int]Immediate)

	for _, inst := range score.Instruments {
		if !inst.Selected {
			continue
		}
		last := inst.StartPart + inst.PartCount
		if last > len(score.Parts) {
			last = len(score.Parts)
		}
		for pi := inst.StartPart; pi < last; pi++ {
			part := NewPart(a.cfg)
			part.SetPart(score.Parts[pi])
			a.Parts = append(a.Parts, part)
			a.PartNames = append(a.PartNames, partName(score.Parts[pi], inst))
			a.SummaryParts = append(a.SummaryParts, part.DescribeSummary()+part.DescribeRepetitionSummary())
			a.RepetitionInContexts[pi] = part.DescribeRepetitionInContext()
			a.ImmediateContexts[pi] = part.DescribeImmediateRepetition()
		}
	}

	a.GeneralSummary = a.describeGeneralSummary()
}

// Summaries packs the per-part results for the HTTP response.
func (a *Analyser) Summaries() []model.PartSummary {
	var out []model.PartSummary
	for i, part := range a.Parts {
		out = append(out, model.PartSummary{
			Name:                a.PartNames[i],
			Summary:             a.SummaryParts[i],
			RepetitionInContext: part.DescribeRepetitionInContext(),
		})
	}
	return out
}

func partName(part model.Part, inst model.Instrument) string {
	if part.Name != "" {
		return part.Name
	}
	if inst.Name != "" {
		return inst.Name
	}
	return part.ID
}

// describeGeneralSummary words the score-wide facts: bar count and the time
// signature, key signature and tempo changes. More than four changes of a
// kind are counted rather than itemized.
func (a *Analyser) describeGeneralSummary() string {
	if a.score == nil || len(a.score.Parts) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "There are %d bars. ", a.score.MeasureCount())

	b.WriteString(summariseChanges(len(a.score.TimeSignatures), "time signature", func(i int) (string, int) {
		ts := a.score.TimeSignatures[i]
		return describe.TimeSignatureText(ts), ts.Measure
	}))
	b.WriteString(summariseChanges(len(a.score.KeySignatures), "key signature", func(i int) (string, int) {
		ks := a.score.KeySignatures[i]
		return describe.KeySignatureText(ks), ks.Measure
	}))
	b.WriteString(summariseChanges(len(a.score.Tempos), "tempo", func(i int) (string, int) {
		t := a.score.Tempos[i]
		return describe.TempoText(t, a.cfg), t.Measure
	}))

	return b.String()
}

// summariseChanges words the changes after the opening value. item returns
// the wording and measure number of entry i.
func summariseChanges(n int, changeType string, item func(i int) (string, int)) string {
	numChanges := n - 1
	if numChanges < 1 {
		return ""
	}
	if numChanges > 4 {
		return fmt.Sprintf("There are %d %s changes. ", numChanges, changeType)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "The %s changes to ", changeType)
	for i := 1; i < n; i++ {
		text, measure := item(i)
		fmt.Fprintf(&b, "%s at bar %d", text, measure)
		switch {
		case i == n-2:
			b.WriteString(" and ")
		case i < n-2:
			b.WriteString(", ")
		}
	}
	b.WriteString(". ")
	return b.String()
}
