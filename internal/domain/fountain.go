package domain

// ExportColumns is the column order of the RATP water-fountain export.
// Values are assigned to fields by position; a header or row with a
// different column count is a schema violation.
var ExportColumns = []string{
	"id_ratp", "ligne", "station", "longitude", "latitude", "id_idm",
	"adresse", "code_postal", "commune", "num_acces", "nom_acces",
	"zone_controlee", "point_geo",
}

// Values taken by the normalized and derived categorical fields.
const (
	TransitTypeRER   = "RER"
	TransitTypeMetro = "Métro"

	RegionParis  = "Paris"
	RegionSuburb = "Banlieue"

	ZoneControlled  = "en zone contrôlée"
	ZoneUnspecified = "non renseigné"

	AccessNameUnspecified = "Non spécifié"
)

// RawExportRecord is one data row of the export with columns assigned by
// position but not yet interpreted. SourceLine is the 1-based line in the
// source file, kept for diagnostics.
type RawExportRecord struct {
	RatpID         string
	Line           string
	Station        string
	Longitude      string
	Latitude       string
	IdmID          string
	Address        string
	PostalCode     string
	Commune        string
	AccessNumber   string
	AccessName     string
	ControlledZone string
	GeoPoint       string

	SourceLine int
}

// Fountain is a prepared water-fountain record: columns interpreted,
// missing values filled, categorical fields derived.
type Fountain struct {
	RatpID         string  `json:"ratp_id"`
	Line           string  `json:"line"`
	Station        string  `json:"station"`
	Longitude      float64 `json:"longitude"`
	Latitude       float64 `json:"latitude"`
	IdmID          string  `json:"idm_id"`
	Address        string  `json:"address"`
	PostalCode     int     `json:"postal_code"`
	Commune        string  `json:"commune"`
	AccessNumber   string  `json:"access_number"`
	AccessName     string  `json:"access_name"`
	ControlledZone string  `json:"controlled_zone"`
	GeoPoint       string  `json:"geo_point,omitempty"` // raw "lat, lon" pair, retained but never parsed

	// Derived during preparation.
	TransitType string `json:"transit_type"`
	Region      string `json:"region"`
}
