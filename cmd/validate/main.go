// Command validate checks a RATP water-fountain export file before it is
// served: header shape, per-row field parseability, and the invariants the
// prepared dataset must satisfy.
//
// Usage:
//
//	go run ./cmd/validate -export fontaines-a-eau-dans-le-reseau-ratp.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Gahlouzi95/ratp-fountains-api/internal/adapter/opendata"
	"github.com/Gahlouzi95/ratp-fountains-api/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	export := flag.String("export", "", "path to the semicolon-separated fountain export")
	flag.Parse()

	if *export == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*export); code != 0 {
		os.Exit(code)
	}
}

func run(path string) int {
	fmt.Println("=== RATP Fountain Export Validation ===")
	fmt.Println()

	rows, err := readExport(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read export: %v\n", err)
		return 1
	}

	prepared := prepare(rows)

	// ── Run validation phases ──
	phases := []*phase{
		validateHeader(path),
		validateFields(rows),
		validatePrepared(prepared),
		validateAggregates(prepared),
	}

	// ── Report results ──
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d data rows, %d prepared fountains, %d lines\n",
		len(rows), len(prepared), len(domain.Lines(prepared)))

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func readExport(path string) ([]domain.RawExportRecord, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return opendata.NewReader(logger).ReadFile(path)
}

// prepare re-runs the dataset preparation on raw rows, ignoring parse
// diagnostics (phase 2 reports them).
func prepare(rows []domain.RawExportRecord) []domain.Fountain {
	fountains := make([]domain.Fountain, 0, len(rows))
	for _, row := range rows {
		f, _ := domain.ParseRawRecord(row)
		fountains = append(fountains, domain.EnrichFountain(f))
	}
	return fountains
}

// ── Phase 1: Header Shape ──
// The export contract is positional, so the header must carry exactly the
// expected columns in the expected order.

func validateHeader(path string) *phase {
	p := &phase{name: "Phase 1: Header Shape"}

	f, err := os.Open(path)
	if err != nil {
		p.errorf("open: %v", err)
		return p
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		p.errorf("read header: %v", err)
		return p
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	if len(header) != len(domain.ExportColumns) {
		p.errorf("header has %d columns, expected %d", len(header), len(domain.ExportColumns))
		return p
	}
	for i, want := range domain.ExportColumns {
		if !strings.EqualFold(header[i], want) {
			p.errorf("column %d: expected %q, got %q", i+1, want, header[i])
		}
	}
	return p
}

// ── Phase 2: Field Parseability ──
// Numeric columns must parse when present. Identity columns must not be
// empty, since the dashboard groups on them verbatim.

func validateFields(rows []domain.RawExportRecord) *phase {
	p := &phase{name: "Phase 2: Field Parseability"}

	for _, row := range rows {
		_, perrs := domain.ParseRawRecord(row)
		for _, perr := range perrs {
			p.errorf("%v", perr)
		}
		if strings.TrimSpace(row.Line) == "" {
			p.errorf("line %d: empty ligne", row.SourceLine)
		}
		if strings.TrimSpace(row.Station) == "" {
			p.errorf("line %d: empty station", row.SourceLine)
		}
	}
	return p
}

// ── Phase 3: Prepared Invariants ──
// After preparation every record carries filled categorical fields and
// derived values consistent with its postal code and line.

func validatePrepared(fountains []domain.Fountain) *phase {
	p := &phase{name: "Phase 3: Prepared Invariants"}

	for i, f := range fountains {
		if f.ControlledZone == "" {
			p.errorf("fountain %d (%s): controlled zone not filled", i, f.RatpID)
		}
		if f.AccessName == "" {
			p.errorf("fountain %d (%s): access name not filled", i, f.RatpID)
		}

		if f.TransitType != domain.TransitTypeRER && f.TransitType != domain.TransitTypeMetro {
			p.errorf("fountain %d (%s): transit type %q", i, f.RatpID, f.TransitType)
		}
		if f.Region != domain.RegionParis && f.Region != domain.RegionSuburb {
			p.errorf("fountain %d (%s): region %q", i, f.RatpID, f.Region)
		}

		inParis := f.PostalCode >= 75000 && f.PostalCode < 76000
		if inParis != (f.Region == domain.RegionParis) {
			p.errorf("fountain %d (%s): postal code %d but region %q", i, f.RatpID, f.PostalCode, f.Region)
		}
	}
	return p
}

// ── Phase 4: Aggregate Consistency ──
// Counts derived from the same dataset must agree with each other.

func validateAggregates(fountains []domain.Fountain) *phase {
	p := &phase{name: "Phase 4: Aggregate Consistency"}

	total := 0
	for _, c := range domain.CountByLine(fountains) {
		total += c
	}
	if total != len(fountains) {
		p.errorf("line counts sum to %d, expected %d", total, len(fountains))
	}

	summary := domain.Summarize(fountains)
	if summary.TotalFountains != len(fountains) {
		p.errorf("summary total %d, expected %d", summary.TotalFountains, len(fountains))
	}
	if summary.ParisFountains+summary.SuburbFountains != summary.TotalFountains {
		p.errorf("region split %d+%d does not sum to %d",
			summary.ParisFountains, summary.SuburbFountains, summary.TotalFountains)
	}
	if summary.ControlledZone > summary.TotalFountains {
		p.errorf("controlled zone count %d exceeds total %d", summary.ControlledZone, summary.TotalFountains)
	}

	lines := domain.Lines(fountains)
	if summary.DistinctLines != len(lines) {
		p.errorf("summary distinct lines %d, expected %d", summary.DistinctLines, len(lines))
	}
	for i := 1; i < len(lines); i++ {
		if domain.LineDisplayLess(lines[i], lines[i-1]) {
			p.errorf("lines out of display order: %q before %q", lines[i-1], lines[i])
		}
	}
	return p
}
