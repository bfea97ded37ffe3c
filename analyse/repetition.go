package analyse

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dbuik1/talkingscores/describe"
	"github.com/dbuik1/talkingscores/index"
	"github.com/dbuik1/talkingscores/repetition"
	"github.com/dbuik1/talkingscores/util"
)

// Immediate flags a bar that repeats the bar directly before it.
type Immediate struct {
	Kind string `json:"type"`
	Text string `json:"text"`
}

// DescribeRepetitionSummary words the repetition found in the part. Sections
// and single bars that cover more than a third of the part get their own
// sentence; otherwise the largest rhythm and interval blocks are reported as
// a fallback. Always ends with the unique-measure tally.
func (p *Part) DescribeRepetitionSummary() string {
	var b strings.Builder
	b.WriteString(p.groupsRepeatedMany(p.full.Groups, "pitch and rhythm"))
	b.WriteString(p.singletonsRepeatedMany(p.full.Singletons, "pitch and rhythm"))
	b.WriteString(p.groupsRepeatedMany(p.rhythm.Groups, "rhythm"))
	b.WriteString(p.singletonsRepeatedMany(p.rhythm.Singletons, "rhythm"))
	b.WriteString(p.groupsRepeatedMany(p.intervals.Groups, "intervals"))
	b.WriteString(p.singletonsRepeatedMany(p.intervals.Singletons, "intervals"))

	summary := b.String()
	if summary == "" {
		summary = p.smallerPatterns()
	}
	summary += p.repetitionStructure()

	if p.idx.MeasureCount() > 1 {
		summary += fmt.Sprintf("There are %d unique measures - of these, %d measures have unique rhythm and %d measures have unique intervals. ",
			p.idx.Measures.Len(), p.idx.MeasureRhythms.Len(), p.idx.MeasureIntervals.Len())
	}
	return describe.CapitalizeFirst(summary)
}

func (p *Part) groupsRepeatedMany(groups []repetition.Group, what string) string {
	measureCount := p.idx.MeasureCount()
	if measureCount == 0 {
		return ""
	}
	var b strings.Builder
	for _, g := range groups {
		first := g[0]
		percent := float64(first.Len()*len(g)) / float64(measureCount) * 100
		if percent <= 33 {
			continue
		}
		if first.Len() == 2 {
			fmt.Fprintf(&b, "The %s in bars %d and %d", what, first.Start, first.End)
		} else {
			fmt.Fprintf(&b, "The %s in bars %d to %d", what, first.Start, first.End)
		}
		fmt.Fprintf(&b, " are used %s of the way through. ", describe.RepetitionPercentage(percent))
	}
	return b.String()
}

func (p *Part) singletonsRepeatedMany(singles map[int][]int, what string) string {
	measureCount := p.idx.MeasureCount()
	if measureCount == 0 {
		return ""
	}
	var b strings.Builder
	for _, first := range util.SortedKeys(singles) {
		occurrences := len(singles[first]) + 1
		percent := float64(occurrences) / float64(measureCount) * 100
		if percent <= 33 {
			continue
		}
		fmt.Fprintf(&b, "The %s in bar %d is used %s of the way through. ", what, first, describe.Percentage(percent))
	}
	return b.String()
}

// smallerPatterns reports the most repeated rhythm and interval bars when no
// full-registry repetition cleared the one-third threshold.
func (p *Part) smallerPatterns() string {
	return p.largestBlock(p.idx.MeasureRhythms, "The rhythm in bar %d is used ") +
		p.largestBlock(p.idx.MeasureIntervals, "The intervals in bar %d are used ")
}

func (p *Part) largestBlock(reg *index.SectionRegistry, format string) string {
	lists := repetition.RepeatedPositions(reg, p.idx.Measures, false)
	if len(lists) == 0 {
		return ""
	}
	sort.SliceStable(lists, func(i, j int) bool { return len(lists[i]) > len(lists[j]) })
	block := lists[0]
	measureCount := p.idx.MeasureCount()
	if measureCount == 0 {
		return ""
	}
	percent := float64(len(block)) / float64(measureCount) * 100
	if percent > 33 {
		return fmt.Sprintf(format, block[0]) + describe.Percentage(percent) + " of the way through. "
	}
	return fmt.Sprintf(format, block[0]) + fmt.Sprintf("%d more times. ", len(block)-1)
}

// repetitionStructure words the lengths of the repeated sections, full
// matches first, then rhythm and intervals combined. Single repeated bars
// count as length 1.
func (p *Part) repetitionStructure() string {
	full := groupLengths(p.full.Groups)
	full[1] += len(p.full.Singletons)

	partial := groupLengths(p.rhythm.Groups)
	for length, count := range groupLengths(p.intervals.Groups) {
		partial[length] += count
	}
	partial[1] += len(p.rhythm.Singletons) + len(p.intervals.Singletons)

	summary := ""
	if desc := lengthsDescription(full); desc != "" {
		summary += fmt.Sprintf("The repeated sections are %s measures long. ", desc)
	}
	if desc := lengthsDescription(partial); desc != "" {
		summary += fmt.Sprintf("The repeated sections of just rhythm or just intervals are %s measures long. ", desc)
	}
	return summary
}

func groupLengths(groups []repetition.Group) map[int]int {
	lengths := make(map[int]int)
	for _, g := range groups {
		lengths[g[0].Len()] += len(g)
	}
	return lengths
}

func lengthsDescription(lengths map[int]int) string {
	total := 0
	var items []describe.CountItem
	for _, length := range util.SortedKeys(lengths) {
		count := lengths[length]
		if count == 0 {
			continue
		}
		total += count
		items = append(items, describe.CountItem{Label: strconv.Itoa(length), Count: count})
	}
	if total == 0 {
		return ""
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Count > items[j].Count })
	desc := describe.CountList(items, total)
	if desc == "" {
		desc = describe.CountListSeveral(items, total, "lengths")
	}
	return desc
}

// DescribeRepetitionInContext builds per-bar cross references: the first
// occurrence of each repeated section or bar says how many more times it is
// used, and every later occurrence points back to the first (and, from the
// third occurrence on, to the most recent).
func (p *Part) DescribeRepetitionInContext() map[int]string {
	ctx := make(map[int]string)
	p.sectionUsage(p.full.Groups, "Bars ", ctx)
	p.sectionUsage(p.rhythm.Groups, "The rhythm in bars ", ctx)
	p.sectionUsage(p.intervals.Groups, "The intervals in bars ", ctx)
	p.measureUsage(p.full.Singletons, "Bar ", ctx)
	p.measureUsage(p.rhythm.Singletons, "The rhythm in bar ", ctx)
	p.measureUsage(p.intervals.Singletons, "The intervals in bar ", ctx)
	return ctx
}

func (p *Part) sectionUsage(groups []repetition.Group, prefix string, ctx map[int]string) {
	for _, g := range groups {
		connector := " through "
		if g[0].Len() == 2 {
			connector = " and "
		}
		for i, r := range g {
			var text string
			if i == 0 {
				text = fmt.Sprintf("Bars %d%s%d are used %d more times", r.Start, connector, r.End, len(g)-1)
			} else {
				text = fmt.Sprintf("%s%d%s%d were first used at bar %d", prefix, r.Start, connector, r.End, g[0].Start)
				if i >= 2 {
					text += fmt.Sprintf(" and lately used at bar %d", g[i-1].Start)
				}
			}
			ctx[r.Start] += text + ". "
		}
	}
}

func (p *Part) measureUsage(singles map[int][]int, prefix string, ctx map[int]string) {
	for _, first := range util.SortedKeys(singles) {
		rest := singles[first]
		ctx[first] += fmt.Sprintf("%s%d is used %d more times. ", prefix, first, len(rest))
		for i, measure := range rest {
			text := fmt.Sprintf("%s%d was first used at bar %d", prefix, measure, first)
			if i >= 1 {
				text += fmt.Sprintf(" and lately used at bar %d", rest[i-1])
			}
			ctx[measure] += text + ". "
		}
	}
}

// DescribeImmediateRepetition marks bars identical to the bar directly before
// them, either exactly or in rhythm only.
func (p *Part) DescribeImmediateRepetition() map[int]Immediate {
	out := make(map[int]Immediate)
	bars := util.SortedKeys(p.idx.MeasureFirstEvent)
	for i := 1; i < len(bars); i++ {
		prev, cur := bars[i-1], bars[i]
		if cur != prev+1 {
			continue
		}
		if sameSection(p.idx.Measures, prev, cur) {
			out[cur] = Immediate{Kind: "exact", Text: "Same as previous bar."}
		} else if sameSection(p.idx.MeasureRhythms, prev, cur) {
			out[cur] = Immediate{Kind: "rhythm", Text: "Same rhythm as previous bar."}
		}
	}
	return out
}

func sameSection(reg *index.SectionRegistry, a, b int) bool {
	ra, okA := reg.At(a)
	rb, okB := reg.At(b)
	return okA && okB && ra.ID == rb.ID
}
