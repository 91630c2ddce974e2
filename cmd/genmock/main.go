// Command genmock writes a deterministic mock fountain export for local
// development and test fixtures. It then runs the file through the real
// dataset preparation and prints aggregate stats, so test assertions can be
// updated from actual pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock -out testdata/fontaines_mock.csv -rows 120
package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Gahlouzi95/ratp-fountains-api/internal/adapter/opendata"
	"github.com/Gahlouzi95/ratp-fountains-api/internal/domain"
)

// accessPoint is one catalogue entry the generator cycles through.
type accessPoint struct {
	line    string
	station string
	commune string
	postal  string
	lat     string
	lon     string
}

var catalogue = []accessPoint{
	{line: "1", station: "Bastille", commune: "Paris", postal: "75004", lat: "48.8532", lon: "2.3692"},
	{line: "1", station: "Châtelet", commune: "Paris", postal: "75001", lat: "48.8583", lon: "2.3472"},
	{line: "4", station: "Gare du Nord", commune: "Paris", postal: "75010", lat: "48.8809", lon: "2.3553"},
	{line: "4", station: "Saint-Michel", commune: "Paris", postal: "75005", lat: "48.8534", lon: "2.3438"},
	{line: "6", station: "Denfert-Rochereau", commune: "Paris", postal: "75014", lat: "48.8339", lon: "2.3324"},
	{line: "7", station: "Chaussée d'Antin", commune: "Paris", postal: "75009", lat: "48.8731", lon: "2.3338"},
	{line: "7", station: "Place d'Italie", commune: "Paris", postal: "75013", lat: "48.8322", lon: "2.3561"},
	{line: "7bis", station: "Buttes Chaumont", commune: "Paris", postal: "75019", lat: "48.8778", lon: "2.3819"},
	{line: "12", station: "Concorde", commune: "Paris", postal: "75008", lat: "48.8656", lon: "2.3212"},
	{line: "14", station: "Olympiades", commune: "Paris", postal: "75013", lat: "48.8270", lon: "2.3677"},
	{line: "3bis", station: "Pelleport", commune: "Paris", postal: "75020", lat: "48.8684", lon: "2.4016"},
	{line: "A", station: "Vincennes", commune: "Vincennes", postal: "94300", lat: "48.8471", lon: "2.4339"},
	{line: "A", station: "Nation", commune: "Paris", postal: "75012", lat: "48.8483", lon: "2.3962"},
	{line: "B", station: "Cité Universitaire", commune: "Paris", postal: "75014", lat: "48.8209", lon: "2.3385"},
	{line: "B", station: "Bourg-la-Reine", commune: "Bourg-la-Reine", postal: "92340", lat: "48.7796", lon: "2.3158"},
	{line: "D", station: "Saint-Denis", commune: "Saint-Denis", postal: "93200", lat: "48.9357", lon: "2.3562"},
	{line: "E", station: "Magenta", commune: "Paris", postal: "75010", lat: "48.8776", lon: "2.3584"},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the mock export CSV")
	rows := flag.Int("rows", 120, "number of data rows to generate")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	records := generate(*rows)
	if err := writeExport(*out, records); err != nil {
		return fmt.Errorf("writing mock export: %w", err)
	}
	log.Printf("wrote mock export: %s (%d rows)", *out, len(records))

	// Run the generated file through the real preparation.
	prepared, err := prepare(*out)
	if err != nil {
		return fmt.Errorf("preparing mock export: %w", err)
	}

	printStats(prepared)
	return nil
}

// generate produces n export rows by cycling the catalogue. Gaps are
// introduced on fixed strides so the fill and default paths stay covered:
// every 3rd row has no zone value, every 5th no access name, every 13th
// no coordinates.
func generate(n int) [][]string {
	records := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		pt := catalogue[i%len(catalogue)]

		address := fmt.Sprintf("Accès station %s", pt.station)
		if i%11 == 0 {
			address += "; côté place"
		}

		zone := domain.ZoneControlled
		if i%3 == 0 {
			zone = ""
		}

		accessName := fmt.Sprintf("Accès n°%d", i%4+1)
		if i%5 == 0 {
			accessName = ""
		}

		lat, lon := pt.lat, pt.lon
		if i%13 == 0 {
			lat, lon = "", ""
		}

		geoPoint := ""
		if lat != "" {
			geoPoint = lat + ", " + lon
		}

		records = append(records, []string{
			fmt.Sprintf("FTN-%04d", i+1),
			pt.line,
			pt.station,
			lon,
			lat,
			fmt.Sprintf("IDM-%05d", 10000+i),
			address,
			pt.postal,
			pt.commune,
			strconv.Itoa(i%4 + 1),
			accessName,
			zone,
			geoPoint,
		})
	}
	return records
}

func writeExport(path string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(domain.ExportColumns); err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0o600)
}

func prepare(path string) ([]domain.Fountain, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rows, err := opendata.NewReader(logger).ReadFile(path)
	if err != nil {
		return nil, err
	}

	fountains := make([]domain.Fountain, 0, len(rows))
	for _, row := range rows {
		f, _ := domain.ParseRawRecord(row)
		fountains = append(fountains, domain.EnrichFountain(f))
	}
	return fountains, nil
}

func printStats(fountains []domain.Fountain) {
	summary := domain.Summarize(fountains)

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", summary.TotalFountains)
	fmt.Printf("Region: Paris=%d, Banlieue=%d\n", summary.ParisFountains, summary.SuburbFountains)
	fmt.Printf("Controlled zone: %d\n", summary.ControlledZone)
	fmt.Printf("Communes: %d distinct\n", summary.DistinctCommunes)

	for _, c := range domain.CountByCategory(fountains, domain.CategoryTransitType) {
		fmt.Printf("Transit %s: %d\n", c.Value, c.Count)
	}

	dist := domain.LineDistribution(fountains)
	fmt.Printf("Lines (%d): ", len(dist))
	for _, lc := range dist {
		fmt.Printf("%s=%d ", lc.Line, lc.Count)
	}
	fmt.Println()

	fmt.Println("Top 5 lines:")
	for _, lc := range domain.TopLines(fountains, 5) {
		fmt.Printf("  %s: %d\n", lc.Line, lc.Count)
	}
}
