package describe

import (
	"fmt"
	"sort"
	"strings"
)

// CountItem pairs a display label with an occurrence count. Count lists are
// expected sorted descending by count.
type CountItem struct {
	Label string
	Count int
}

// Percentage words a proportion of common events. Thresholds are exclusive
// lower bounds, evaluated top-down, first match wins.
func Percentage(percent float64) string {
	switch {
	case percent > 99:
		return "all"
	case percent > 90:
		return "almost all"
	case percent > 75:
		return "most"
	case percent > 45:
		return "lots of"
	case percent > 30:
		return "some"
	case percent > 10:
		return "a few"
	case percent > 1:
		return "very few"
	}
	return ""
}

// RepetitionPercentage words how much of a piece a repeated block covers.
func RepetitionPercentage(percent float64) string {
	switch {
	case percent > 99:
		return "all"
	case percent > 85:
		return "almost all"
	case percent > 75:
		return "over three quarters"
	case percent > 50:
		return "over half"
	case percent > 33:
		return "over a third"
	}
	return ""
}

// PercentageUncommon words proportions of events that are rare by nature,
// like accidentals and grace notes.
func PercentageUncommon(percent float64) string {
	switch {
	case percent > 5:
		return "many"
	case percent > 2:
		return "a lot of"
	case percent > 1:
		return "quite a few"
	case percent > 0.5:
		return "a few"
	}
	return "some"
}

// CommaAndList joins items with commas and a final "and": "1, 4 and 6".
func CommaAndList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			if i == len(items)-1 {
				b.WriteString(" and ")
			} else {
				b.WriteString(", ")
			}
		}
		b.WriteString(item)
	}
	return b.String()
}

// CountList words each item whose share of total crosses a qualifier
// threshold: "mostly crotchets, some quavers".
func CountList(items []CountItem, total int) string {
	if total == 0 {
		return ""
	}
	var b strings.Builder
	for _, item := range items {
		share := float64(item.Count) / float64(total)
		switch {
		case share > 0.98:
			fmt.Fprintf(&b, "all %s, ", item.Label)
		case share > 0.90:
			fmt.Fprintf(&b, "almost all %s, ", item.Label)
		case share > 0.6:
			fmt.Fprintf(&b, "mostly %s, ", item.Label)
		case share > 0.3:
			fmt.Fprintf(&b, "some %s, ", item.Label)
		}
	}
	return ReplaceEndWith(b.String(), ", ", "")
}

// CountListSeveral is the fallback when no single item dominates: accumulate
// items until their cumulative share reaches ~40% and word the remainder.
func CountListSeveral(items []CountItem, total int, itemName string) string {
	if total == 0 {
		return ""
	}
	var top []string
	remaining := 0
	progress := 0.0
	for _, item := range items {
		if progress < 40 {
			top = append(top, item.Label)
			progress += float64(item.Count) / float64(total) * 100
		} else if item.Count > 0 {
			remaining++
		}
	}

	if len(top) <= 4 {
		description := "mostly " + CommaAndList(top)
		if remaining > 1 {
			description += fmt.Sprintf("; plus %d other %s", remaining, itemName)
		}
		return description
	}
	return fmt.Sprintf("%d %s, the most common is %s", len(top), itemName, items[0].Label)
}

// positionNames words the four quarters of a piece.
var positionNames = map[int]string{
	0: "near the start",
	1: "in the 2nd quarter",
	2: "in the 3rd quarter",
	3: "near the end",
}

// Distribution words where in the piece occurrences concentrate. Measures
// carrying over 20% of the total are named explicitly; the remainder is
// apportioned across the four quarters of the piece.
func Distribution(countInMeasures map[int]int, total int) string {
	if total == 0 {
		return ""
	}

	type measureShare struct {
		measure int
		percent float64
	}
	var shares []measureShare
	for measure, count := range countInMeasures {
		if count > 0 {
			shares = append(shares, measureShare{measure, float64(count) / float64(total) * 100})
		}
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].percent != shares[j].percent {
			return shares[i].percent > shares[j].percent
		}
		return shares[i].measure < shares[j].measure
	})

	var distribution strings.Builder
	var heavy []string
	percentRemaining := 100.0
	rest := shares[:0]
	for _, s := range shares {
		if s.percent > 20 {
			heavy = append(heavy, fmt.Sprintf("%d", s.measure))
			percentRemaining -= s.percent
		} else {
			rest = append(rest, s)
		}
	}

	if len(heavy) > 0 {
		distribution.WriteString(" mostly in bar")
		if len(heavy) > 1 {
			distribution.WriteString("s")
		}
		distribution.WriteString(" " + CommaAndList(heavy))
	}

	if len(rest) > 0 && percentRemaining > 0 {
		if distribution.Len() > 0 {
			distribution.WriteString(" and ")
		}
		totalMeasures := len(countInMeasures)
		quarters := [4]float64{}
		for _, s := range rest {
			normalized := s.percent / percentRemaining * 100
			switch {
			case float64(s.measure) > float64(totalMeasures)*0.75:
				quarters[3] += normalized
			case float64(s.measure) > float64(totalMeasures)*0.5:
				quarters[2] += normalized
			case float64(s.measure) > float64(totalMeasures)*0.25:
				quarters[1] += normalized
			default:
				quarters[0] += normalized
			}
		}

		order := []int{0, 1, 2, 3}
		sort.SliceStable(order, func(i, j int) bool {
			return quarters[order[i]] > quarters[order[j]]
		})

		switch {
		case quarters[order[0]] > 50:
			distribution.WriteString(" " + positionNames[order[0]])
		case quarters[order[0]]+quarters[order[1]] > 70:
			distribution.WriteString(" " + positionNames[order[0]] + " and " + positionNames[order[1]])
		default:
			fmt.Fprintf(&distribution, " in %d bars throughout", len(rest))
		}
	}

	return strings.TrimSpace(distribution.String())
}

// ReplaceEndWith swaps a string's suffix when present.
func ReplaceEndWith(original, remove, add string) string {
	if strings.HasSuffix(original, remove) {
		return original[:len(original)-len(remove)] + add
	}
	return original
}

// CapitalizeFirst upper-cases the first letter only, leaving note names and
// the rest of the sentence untouched.
func CapitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
