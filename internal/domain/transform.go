package domain

import (
	"strconv"
	"strings"
)

// rerLines are the Île-de-France RER lines served by RATP fountains.
// Every other line identifier in the export belongs to the métro network.
var rerLines = map[string]bool{"A": true, "B": true, "C": true, "D": true, "E": true}

// ParseRawRecord interprets a raw export row: trims every column, fills
// the two nullable text columns, and parses the numeric columns. Numeric
// fields that fail to parse default to zero and are reported as
// ParseErrors; the record itself is always usable.
//
// Empty numeric fields count as absent, not malformed, and default to
// zero silently.
func ParseRawRecord(raw RawExportRecord) (Fountain, []*ParseError) {
	f := Fountain{
		RatpID:         strings.TrimSpace(raw.RatpID),
		Line:           strings.TrimSpace(raw.Line),
		Station:        strings.TrimSpace(raw.Station),
		IdmID:          strings.TrimSpace(raw.IdmID),
		Address:        strings.TrimSpace(raw.Address),
		Commune:        strings.TrimSpace(raw.Commune),
		AccessNumber:   strings.TrimSpace(raw.AccessNumber),
		AccessName:     normalizeAccessName(raw.AccessName),
		ControlledZone: normalizeControlledZone(raw.ControlledZone),
		GeoPoint:       strings.TrimSpace(raw.GeoPoint),
	}

	var parseErrs []*ParseError
	report := func(field, value string, err error) {
		parseErrs = append(parseErrs, &ParseError{
			Line:  raw.SourceLine,
			Field: field,
			Value: value,
			Err:   err,
		})
	}

	var err error
	if f.PostalCode, err = parseIntField(raw.PostalCode); err != nil {
		report("code_postal", raw.PostalCode, err)
	}
	if f.Longitude, err = parseFloatField(raw.Longitude); err != nil {
		report("longitude", raw.Longitude, err)
	}
	if f.Latitude, err = parseFloatField(raw.Latitude); err != nil {
		report("latitude", raw.Latitude, err)
	}

	return f, parseErrs
}

// EnrichFountain computes the derived categorical fields. Source columns
// are never modified; re-enriching an already enriched record is a no-op.
func EnrichFountain(f Fountain) Fountain {
	f.TransitType = DeriveTransitType(f.Line)
	f.Region = DeriveRegion(f.PostalCode)
	return f
}

// DeriveTransitType classifies a line identifier as RER (A through E) or
// métro (everything else).
func DeriveTransitType(line string) string {
	if rerLines[line] {
		return TransitTypeRER
	}
	return TransitTypeMetro
}

// DeriveRegion classifies a postal code as Paris proper (75000–75999) or
// Banlieue. Postal code zero (missing or unparseable) lands in Banlieue.
func DeriveRegion(postalCode int) string {
	if postalCode >= 75000 && postalCode < 76000 {
		return RegionParis
	}
	return RegionSuburb
}

// normalizeControlledZone fills the export's missing zone_controlee
// values with the sentinel the dashboard filters on.
func normalizeControlledZone(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ZoneUnspecified
	}
	return s
}

// normalizeAccessName fills missing access names.
func normalizeAccessName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return AccessNameUnspecified
	}
	return s
}

// parseIntField parses an integer column. Empty means absent and yields 0
// with no error.
func parseIntField(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// parseFloatField parses a coordinate column. Empty means absent and
// yields 0 with no error.
func parseFloatField(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
