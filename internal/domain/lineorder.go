package domain

import (
	"sort"
	"strconv"
	"strings"
)

// lineSortKey places a line identifier on the dashboard display axis:
// numeric lines ascend by value, "Nbis" slots between N and N+1, and
// everything else (the RER letters) follows lexically.
type lineSortKey struct {
	class   int
	numeric float64
	literal string
}

func displayKey(line string) lineSortKey {
	if isDigits(line) {
		n, _ := strconv.Atoi(line)
		return lineSortKey{class: 0, numeric: float64(n)}
	}
	if base, ok := strings.CutSuffix(line, "bis"); ok && isDigits(base) {
		n, _ := strconv.Atoi(base)
		return lineSortKey{class: 0, numeric: float64(n) + 0.5}
	}
	return lineSortKey{class: 1, literal: line}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// LineDisplayLess reports whether line a comes before line b in display
// order. Display order is a chart axis concern only; the prepared dataset
// itself stays in plain lexical order.
func LineDisplayLess(a, b string) bool {
	ka, kb := displayKey(a), displayKey(b)
	if ka.class != kb.class {
		return ka.class < kb.class
	}
	if ka.class == 0 {
		return ka.numeric < kb.numeric
	}
	return ka.literal < kb.literal
}

// SortLinesForDisplay sorts line identifiers in place into display order.
func SortLinesForDisplay(lines []string) {
	sort.Slice(lines, func(i, j int) bool { return LineDisplayLess(lines[i], lines[j]) })
}
