package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRawRecord(t *testing.T) {
	t.Run("complete row", func(t *testing.T) {
		raw := RawExportRecord{
			RatpID:         "1234",
			Line:           "14",
			Station:        "Olympiades",
			Longitude:      "2.3668",
			Latitude:       "48.8270",
			IdmID:          "IDFM:22074",
			Address:        "Rue de Tolbiac",
			PostalCode:     "75013",
			Commune:        "Paris",
			AccessNumber:   "3",
			AccessName:     "Tolbiac",
			ControlledZone: "en zone contrôlée",
			GeoPoint:       "48.8270, 2.3668",
			SourceLine:     2,
		}

		f, parseErrs := ParseRawRecord(raw)

		assert.Empty(t, parseErrs)
		assert.Equal(t, "1234", f.RatpID)
		assert.Equal(t, "14", f.Line)
		assert.Equal(t, "Olympiades", f.Station)
		assert.Equal(t, 2.3668, f.Longitude)
		assert.Equal(t, 48.8270, f.Latitude)
		assert.Equal(t, 75013, f.PostalCode)
		assert.Equal(t, "Paris", f.Commune)
		assert.Equal(t, "Tolbiac", f.AccessName)
		assert.Equal(t, ZoneControlled, f.ControlledZone)
		assert.Equal(t, "48.8270, 2.3668", f.GeoPoint)
	})

	t.Run("missing zone and access name are filled", func(t *testing.T) {
		raw := RawExportRecord{Line: "7", ControlledZone: "", AccessName: "  "}

		f, parseErrs := ParseRawRecord(raw)

		assert.Empty(t, parseErrs)
		assert.Equal(t, ZoneUnspecified, f.ControlledZone)
		assert.Equal(t, AccessNameUnspecified, f.AccessName)
	})

	t.Run("present values are kept verbatim", func(t *testing.T) {
		raw := RawExportRecord{ControlledZone: "hors zone", AccessName: "Sortie 2"}

		f, _ := ParseRawRecord(raw)

		assert.Equal(t, "hors zone", f.ControlledZone)
		assert.Equal(t, "Sortie 2", f.AccessName)
	})

	t.Run("unparseable postal code defaults and is reported", func(t *testing.T) {
		raw := RawExportRecord{PostalCode: "unknown", SourceLine: 7}

		f, parseErrs := ParseRawRecord(raw)

		assert.Equal(t, 0, f.PostalCode)
		require.Len(t, parseErrs, 1)
		assert.Equal(t, 7, parseErrs[0].Line)
		assert.Equal(t, "code_postal", parseErrs[0].Field)
		assert.Equal(t, "unknown", parseErrs[0].Value)
		assert.Contains(t, parseErrs[0].Error(), `cannot parse "unknown"`)
	})

	t.Run("unparseable coordinates default and are reported", func(t *testing.T) {
		raw := RawExportRecord{Longitude: "east", Latitude: "north", SourceLine: 3}

		f, parseErrs := ParseRawRecord(raw)

		assert.Equal(t, 0.0, f.Longitude)
		assert.Equal(t, 0.0, f.Latitude)
		require.Len(t, parseErrs, 2)
		assert.Equal(t, "longitude", parseErrs[0].Field)
		assert.Equal(t, "latitude", parseErrs[1].Field)
	})

	t.Run("empty numeric fields default silently", func(t *testing.T) {
		raw := RawExportRecord{PostalCode: "", Longitude: " ", Latitude: ""}

		f, parseErrs := ParseRawRecord(raw)

		assert.Empty(t, parseErrs)
		assert.Equal(t, 0, f.PostalCode)
		assert.Equal(t, 0.0, f.Longitude)
		assert.Equal(t, 0.0, f.Latitude)
	})

	t.Run("columns are trimmed", func(t *testing.T) {
		raw := RawExportRecord{Line: " A ", Commune: " Saint-Denis ", PostalCode: " 93200 "}

		f, parseErrs := ParseRawRecord(raw)

		assert.Empty(t, parseErrs)
		assert.Equal(t, "A", f.Line)
		assert.Equal(t, "Saint-Denis", f.Commune)
		assert.Equal(t, 93200, f.PostalCode)
	})
}

func TestEnrichFountain(t *testing.T) {
	t.Run("RER line in Paris", func(t *testing.T) {
		f := EnrichFountain(Fountain{Line: "A", PostalCode: 75012})

		assert.Equal(t, TransitTypeRER, f.TransitType)
		assert.Equal(t, RegionParis, f.Region)
	})

	t.Run("métro line in banlieue", func(t *testing.T) {
		f := EnrichFountain(Fountain{Line: "13", PostalCode: 93200})

		assert.Equal(t, TransitTypeMetro, f.TransitType)
		assert.Equal(t, RegionSuburb, f.Region)
	})

	t.Run("idempotent", func(t *testing.T) {
		once := EnrichFountain(Fountain{Line: "B", PostalCode: 94000})
		twice := EnrichFountain(once)

		assert.Equal(t, once, twice)
	})

	t.Run("source columns untouched", func(t *testing.T) {
		in := Fountain{Line: "7bis", PostalCode: 75019, Station: "Botzaris"}
		out := EnrichFountain(in)

		assert.Equal(t, in.Line, out.Line)
		assert.Equal(t, in.PostalCode, out.PostalCode)
		assert.Equal(t, in.Station, out.Station)
	})
}

func TestDeriveTransitType(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{"RER A", "A", TransitTypeRER},
		{"RER B", "B", TransitTypeRER},
		{"RER E", "E", TransitTypeRER},
		{"métro 1", "1", TransitTypeMetro},
		{"métro 14", "14", TransitTypeMetro},
		{"métro 3bis", "3bis", TransitTypeMetro},
		{"lowercase letter is not RER", "a", TransitTypeMetro},
		{"unknown letter", "T", TransitTypeMetro},
		{"empty line", "", TransitTypeMetro},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveTransitType(tt.line))
		})
	}
}

func TestDeriveRegion(t *testing.T) {
	tests := []struct {
		name     string
		postal   int
		expected string
	}{
		{"central Paris", 75001, RegionParis},
		{"lower bound", 75000, RegionParis},
		{"upper bound", 75999, RegionParis},
		{"just below Paris range", 74999, RegionSuburb},
		{"just above Paris range", 76000, RegionSuburb},
		{"Seine-Saint-Denis", 93200, RegionSuburb},
		{"Val-de-Marne", 94220, RegionSuburb},
		{"missing postal code", 0, RegionSuburb},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveRegion(tt.postal))
		})
	}
}

func TestParseIntField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{"plain number", "75015", 75015, false},
		{"padded", "  93100 ", 93100, false},
		{"empty is absent", "", 0, false},
		{"blank is absent", "   ", 0, false},
		{"letters fail", "paris", 0, true},
		{"decimal fails", "75015.0", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := parseIntField(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestParseFloatField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		wantErr  bool
	}{
		{"coordinate", "48.8566", 48.8566, false},
		{"negative", "-2.35", -2.35, false},
		{"empty is absent", "", 0, false},
		{"letters fail", "north", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := parseFloatField(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}
