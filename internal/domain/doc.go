// Package domain models the RATP water-fountain open-data export.
//
// # Data Source
//
// Records come from the "Fontaines à eau dans le réseau RATP" dataset on
// the RATP open-data portal (data.ratp.fr), published as a
// semicolon-separated CSV with a single header row, UTF-8 encoded and
// usually carrying a byte-order mark. The export has exactly 13 columns:
//
//	id_ratp, ligne, station, longitude, latitude, id_idm, adresse,
//	code_postal, commune, num_acces, nom_acces, zone_controlee, point_geo
//
// Column names occasionally drift between portal revisions; column ORDER
// is the contract. See [ExportColumns].
//
// # Export Conventions
//
// Line identifiers:
//
//	Métro lines are numbers ("1" … "14"), two of them with a "bis"
//	suffix ("3bis", "7bis"). RER lines are the single letters A–E.
//	[DeriveTransitType] classifies on exactly that letter set.
//
// Postal codes:
//
//	Five-digit French codes. 75000–75999 is Paris proper; everything
//	else is counted as banlieue, including a missing or unparseable
//	code. See [DeriveRegion].
//
// Missing values:
//
//	zone_controlee is empty for fountains whose access-control status
//	was never recorded; it is filled with "non renseigné" so the value
//	can be filtered on like any other. nom_acces is filled with
//	"Non spécifié". No other column is defaulted.
//
// Controlled zones:
//
//	"en zone contrôlée" marks fountains reachable only after ticket
//	validation; the distinction drives the dashboard's accessibility
//	views.
//
// point_geo:
//
//	A redundant "lat, lon" rendering of the longitude/latitude columns.
//	Retained on the record for completeness, never parsed.
//
// # Orderings
//
// The prepared dataset is sorted lexically by line identifier, stable for
// ties, which keeps preparation deterministic. Charts use a separate
// display order where numeric lines ascend by value, "Nbis" slots between
// N and N+1, and the RER letters follow. See [LineDisplayLess].
package domain
