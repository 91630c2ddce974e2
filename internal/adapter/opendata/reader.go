// Package opendata reads the RATP water-fountain export file published
// on the open-data portal: semicolon-separated CSV, one header row,
// UTF-8 with an optional byte-order mark.
package opendata

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Gahlouzi95/ratp-fountains-api/internal/domain"
)

// utf8BOM is the byte-order mark the portal prepends to its exports.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader loads raw rows from a fountain export.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a Reader that logs header drift through logger.
func NewReader(logger *slog.Logger) *Reader {
	return &Reader{logger: logger}
}

// ReadFile opens path and reads every data row.
func (r *Reader) ReadFile(path string) ([]domain.RawExportRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	return r.Read(f)
}

// Read consumes a full export stream: optional BOM, header row, data rows.
// Columns are assigned to fields strictly by position. A header or row
// whose column count differs from the schema fails the whole read with a
// *domain.SchemaError; no partial result is returned.
func (r *Reader) Read(src io.Reader) ([]domain.RawExportRecord, error) {
	buf := bufio.NewReader(src)
	if err := discardBOM(buf); err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	cr := csv.NewReader(buf)
	cr.Comma = ';'
	cr.LazyQuotes = true
	// Column counts are checked against the schema by hand so that a
	// mismatch surfaces as a SchemaError carrying the offending line.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("read export: file is empty")
		}
		return nil, fmt.Errorf("read export header: %w", err)
	}
	if len(header) != len(domain.ExportColumns) {
		line, _ := cr.FieldPos(0)
		return nil, &domain.SchemaError{Line: line, Expected: len(domain.ExportColumns), Got: len(header)}
	}
	r.checkHeaderNames(header)

	var rows []domain.RawExportRecord
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read export row: %w", err)
		}

		line, _ := cr.FieldPos(0)
		if len(rec) != len(domain.ExportColumns) {
			return nil, &domain.SchemaError{Line: line, Expected: len(domain.ExportColumns), Got: len(rec)}
		}
		rows = append(rows, rawRecord(rec, line))
	}

	return rows, nil
}

// checkHeaderNames warns about header names that drifted from the
// documented schema. Portal revisions have renamed columns before; order
// is the contract, so drift is reported but not fatal.
func (r *Reader) checkHeaderNames(header []string) {
	for i, want := range domain.ExportColumns {
		got := strings.TrimSpace(header[i])
		if !strings.EqualFold(got, want) {
			r.logger.Warn("export header name drifted",
				"position", i,
				"want", want,
				"got", got,
			)
		}
	}
}

func rawRecord(rec []string, line int) domain.RawExportRecord {
	return domain.RawExportRecord{
		RatpID:         rec[0],
		Line:           rec[1],
		Station:        rec[2],
		Longitude:      rec[3],
		Latitude:       rec[4],
		IdmID:          rec[5],
		Address:        rec[6],
		PostalCode:     rec[7],
		Commune:        rec[8],
		AccessNumber:   rec[9],
		AccessName:     rec[10],
		ControlledZone: rec[11],
		GeoPoint:       rec[12],
		SourceLine:     line,
	}
}

// discardBOM drops a leading UTF-8 byte-order mark if present.
func discardBOM(buf *bufio.Reader) error {
	peek, err := buf.Peek(len(utf8BOM))
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if bytes.Equal(peek, utf8BOM) {
		_, err = buf.Discard(len(utf8BOM))
		return err
	}
	return nil
}
