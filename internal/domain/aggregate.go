package domain

import (
	"fmt"
	"sort"
)

// LineCount pairs a line identifier with its fountain count.
type LineCount struct {
	Line  string `json:"line"`
	Count int    `json:"count"`
}

// CategoryCount pairs a categorical value with its fountain count.
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Summary holds the dataset-level indicators shown on the dashboard.
type Summary struct {
	TotalFountains   int `json:"total_fountains"`
	DistinctLines    int `json:"distinct_lines"`
	DistinctCommunes int `json:"distinct_communes"`
	ControlledZone   int `json:"controlled_zone"`
	ParisFountains   int `json:"paris_fountains"`
	SuburbFountains  int `json:"suburb_fountains"`
}

// CategoryField selects which categorical column CountByCategory tallies.
type CategoryField int

const (
	CategoryControlledZone CategoryField = iota
	CategoryTransitType
	CategoryRegion
	CategoryCommune
)

// ParseCategoryField maps an API field name onto a CategoryField.
func ParseCategoryField(name string) (CategoryField, error) {
	switch name {
	case "controlled_zone":
		return CategoryControlledZone, nil
	case "transit_type":
		return CategoryTransitType, nil
	case "region":
		return CategoryRegion, nil
	case "commune":
		return CategoryCommune, nil
	default:
		return 0, fmt.Errorf("unknown category field %q", name)
	}
}

func (c CategoryField) value(f Fountain) string {
	switch c {
	case CategoryControlledZone:
		return f.ControlledZone
	case CategoryTransitType:
		return f.TransitType
	case CategoryRegion:
		return f.Region
	case CategoryCommune:
		return f.Commune
	default:
		return ""
	}
}

// CountByLine tallies fountains per line. The counts always sum to the
// number of input records.
func CountByLine(fountains []Fountain) map[string]int {
	counts := make(map[string]int, len(fountains))
	for _, f := range fountains {
		counts[f.Line]++
	}
	return counts
}

// Lines returns the distinct line identifiers in display order.
func Lines(fountains []Fountain) []string {
	seen := make(map[string]struct{}, len(fountains))
	out := make([]string, 0, len(fountains))
	for _, f := range fountains {
		if _, ok := seen[f.Line]; ok {
			continue
		}
		seen[f.Line] = struct{}{}
		out = append(out, f.Line)
	}
	SortLinesForDisplay(out)
	return out
}

// LineDistribution tallies fountains per line and returns the counts in
// display order, ready for a distribution chart.
func LineDistribution(fountains []Fountain) []LineCount {
	counts := CountByLine(fountains)
	lines := make([]string, 0, len(counts))
	for line := range counts {
		lines = append(lines, line)
	}
	SortLinesForDisplay(lines)

	out := make([]LineCount, 0, len(lines))
	for _, line := range lines {
		out = append(out, LineCount{Line: line, Count: counts[line]})
	}
	return out
}

// TopLines returns the n best-equipped lines by fountain count, highest
// first. Lines with equal counts keep display order. An n beyond the
// number of distinct lines returns them all.
func TopLines(fountains []Fountain, n int) []LineCount {
	dist := LineDistribution(fountains)
	sort.SliceStable(dist, func(i, j int) bool { return dist[i].Count > dist[j].Count })
	if n < 0 {
		n = 0
	}
	if n > len(dist) {
		n = len(dist)
	}
	return dist[:n]
}

// CountByCategory tallies fountains per distinct value of the field, most
// frequent first; values with equal counts keep first-seen order.
func CountByCategory(fountains []Fountain, field CategoryField) []CategoryCount {
	index := make(map[string]int)
	out := []CategoryCount{}
	for _, f := range fountains {
		v := field.value(f)
		i, ok := index[v]
		if !ok {
			i = len(out)
			index[v] = i
			out = append(out, CategoryCount{Value: v})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Summarize computes the dataset indicators: totals, network and commune
// coverage, the controlled-zone share, and the Paris/Banlieue split.
func Summarize(fountains []Fountain) Summary {
	lines := make(map[string]struct{})
	communes := make(map[string]struct{})
	s := Summary{TotalFountains: len(fountains)}
	for _, f := range fountains {
		lines[f.Line] = struct{}{}
		communes[f.Commune] = struct{}{}
		if f.ControlledZone == ZoneControlled {
			s.ControlledZone++
		}
		switch f.Region {
		case RegionParis:
			s.ParisFountains++
		case RegionSuburb:
			s.SuburbFountains++
		}
	}
	s.DistinctLines = len(lines)
	s.DistinctCommunes = len(communes)
	return s
}
