package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Gahlouzi95/ratp-fountains-api/internal/dataset"
	"github.com/Gahlouzi95/ratp-fountains-api/internal/domain"
)

const defaultTopN = 10

type fountainsResponse struct {
	Version   string            `json:"version"`
	Total     int               `json:"total"`
	Fountains []domain.Fountain `json:"fountains"`
}

type linesResponse struct {
	Version string   `json:"version"`
	Lines   []string `json:"lines"`
}

type lineStatsResponse struct {
	Version      string             `json:"version"`
	Total        int                `json:"total"`
	Distribution []domain.LineCount `json:"distribution"`
}

type topLinesResponse struct {
	Version string             `json:"version"`
	N       int                `json:"n"`
	Top     []domain.LineCount `json:"top"`
}

type categoryStatsResponse struct {
	Version string                 `json:"version"`
	Field   string                 `json:"field"`
	Counts  []domain.CategoryCount `json:"counts"`
}

type summaryResponse struct {
	Version  string         `json:"version"`
	LoadedAt time.Time      `json:"loaded_at"`
	Summary  domain.Summary `json:"summary"`
}

func (s *Server) handleFountains(snap *dataset.Snapshot, r *http.Request) (any, error) {
	filtered := s.filter(snap, r)
	return fountainsResponse{
		Version:   snap.Version,
		Total:     len(filtered),
		Fountains: filtered,
	}, nil
}

// handleLines lists every line in the dataset in display order. The
// list feeds the dashboard line selector, so it ignores filters.
func (s *Server) handleLines(snap *dataset.Snapshot, _ *http.Request) (any, error) {
	return linesResponse{
		Version: snap.Version,
		Lines:   domain.Lines(snap.Fountains),
	}, nil
}

func (s *Server) handleLineStats(snap *dataset.Snapshot, r *http.Request) (any, error) {
	filtered := s.filter(snap, r)
	return lineStatsResponse{
		Version:      snap.Version,
		Total:        len(filtered),
		Distribution: domain.LineDistribution(filtered),
	}, nil
}

func (s *Server) handleTopLines(snap *dataset.Snapshot, r *http.Request) (any, error) {
	n := defaultTopN
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid n %q: not an integer", raw)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("invalid n %d: must be positive", parsed)
		}
		n = parsed
	}

	filtered := s.filter(snap, r)
	return topLinesResponse{
		Version: snap.Version,
		N:       n,
		Top:     domain.TopLines(filtered, n),
	}, nil
}

func (s *Server) handleCategoryStats(snap *dataset.Snapshot, r *http.Request) (any, error) {
	name := chi.URLParam(r, "field")
	field, err := domain.ParseCategoryField(name)
	if err != nil {
		return nil, err
	}

	filtered := s.filter(snap, r)
	return categoryStatsResponse{
		Version: snap.Version,
		Field:   name,
		Counts:  domain.CountByCategory(filtered, field),
	}, nil
}

// handleSummary reports dataset-wide indicators. They describe the full
// snapshot and ignore filters.
func (s *Server) handleSummary(snap *dataset.Snapshot, _ *http.Request) (any, error) {
	return summaryResponse{
		Version:  snap.Version,
		LoadedAt: snap.LoadedAt,
		Summary:  domain.Summarize(snap.Fountains),
	}, nil
}

func (s *Server) filter(snap *dataset.Snapshot, r *http.Request) []domain.Fountain {
	s.metrics.FilterEvaluations.Inc()
	return domain.Filter(snap.Fountains, parseSelection(r.URL.Query()))
}

// parseSelection reads the shared filter parameters. An absent or empty
// transit_type or zone_status means no restriction. lines is
// comma-separated; an explicitly empty lines parameter is the empty
// selection, matching a cleared line picker.
func parseSelection(q url.Values) domain.Selection {
	sel := domain.Selection{
		TransitType: q.Get("transit_type"),
		ZoneStatus:  q.Get("zone_status"),
	}
	if q.Has("lines") {
		sel.Lines = splitLines(q.Get("lines"))
	}
	return sel
}

func splitLines(raw string) []string {
	parts := strings.Split(raw, ",")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	return lines
}
