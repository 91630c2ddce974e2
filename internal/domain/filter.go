package domain

// SelectAll is the selection wildcard. A dimension set to SelectAll (or
// left empty) does not restrict the result.
const SelectAll = "All"

// Selection is a conjunctive filter over prepared fountains. A nil Lines
// slice means every line is selected; an empty non-nil slice means the
// user deselected every line and matches nothing.
type Selection struct {
	Lines       []string
	TransitType string
	ZoneStatus  string
}

// Filter returns the fountains matching every dimension of the selection.
// Filtering never fails: unknown values simply match no records, and an
// empty result is valid. Input order is preserved and the input slice is
// never mutated.
func Filter(fountains []Fountain, sel Selection) []Fountain {
	lineSet := sel.lineSet()
	out := make([]Fountain, 0, len(fountains))
	for _, f := range fountains {
		if !sel.matches(f, lineSet) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// lineSet materializes Lines for membership tests. Nil means unrestricted.
func (s Selection) lineSet() map[string]bool {
	if s.Lines == nil {
		return nil
	}
	set := make(map[string]bool, len(s.Lines))
	for _, l := range s.Lines {
		set[l] = true
	}
	return set
}

func (s Selection) matches(f Fountain, lineSet map[string]bool) bool {
	if lineSet != nil && !lineSet[f.Line] {
		return false
	}
	if !isAll(s.TransitType) && f.TransitType != s.TransitType {
		return false
	}
	if !isAll(s.ZoneStatus) && f.ControlledZone != s.ZoneStatus {
		return false
	}
	return true
}

func isAll(v string) bool {
	return v == "" || v == SelectAll
}
