// Package pipeline prepares the raw fountain export for querying.
package pipeline

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Gahlouzi95/ratp-fountains-api/internal/domain"
	"github.com/Gahlouzi95/ratp-fountains-api/internal/observability"
)

// RowSource reads raw export rows from a file.
type RowSource interface {
	ReadFile(path string) ([]domain.RawExportRecord, error)
}

// Preparer turns a raw export into the prepared, query-ready dataset.
type Preparer struct {
	rows    RowSource
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Preparer with the given row source and observability.
func New(rows RowSource, logger *slog.Logger, metrics *observability.Metrics) *Preparer {
	return &Preparer{rows: rows, logger: logger, metrics: metrics}
}

// Prepare runs the full preparation: read the export, interpret and fill
// columns, derive the categorical fields, and sort by line identifier
// (lexical, stable for ties). The result is deterministic for a given
// file and safe to prepare again.
//
// A schema violation fails the whole preparation. Unparseable numeric
// fields only default to zero: each one is logged, counted, and the row
// is kept.
func (p *Preparer) Prepare(path string) ([]domain.Fountain, error) {
	start := time.Now()

	rows, err := p.rows.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prepare dataset: %w", err)
	}

	defaulted := 0
	fountains := make([]domain.Fountain, 0, len(rows))
	for _, raw := range rows {
		f, parseErrs := domain.ParseRawRecord(raw)
		for _, perr := range parseErrs {
			p.logger.Warn("numeric field defaulted",
				"line", perr.Line,
				"field", perr.Field,
				"value", perr.Value,
			)
			p.metrics.RowsDefaulted.WithLabelValues(perr.Field).Inc()
			defaulted++
		}
		fountains = append(fountains, domain.EnrichFountain(f))
	}

	sort.SliceStable(fountains, func(i, j int) bool {
		return fountains[i].Line < fountains[j].Line
	})

	p.logger.Info("dataset prepared",
		"rows", len(fountains),
		"defaulted_fields", defaulted,
		"duration", time.Since(start),
	)

	return fountains, nil
}
