// Package http exposes the fountain dataset to the dashboard frontend.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bluele/gcache"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Gahlouzi95/ratp-fountains-api/internal/config"
	"github.com/Gahlouzi95/ratp-fountains-api/internal/dataset"
	"github.com/Gahlouzi95/ratp-fountains-api/internal/observability"
)

// DatasetProvider hands out the current prepared snapshot.
type DatasetProvider interface {
	Snapshot() (*dataset.Snapshot, bool)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the dataset API plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	data       DatasetProvider
	cache      gcache.Cache
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// snapshotHandler computes a response payload from the current snapshot.
// A returned error is a client error and maps to 400.
type snapshotHandler func(snap *dataset.Snapshot, r *http.Request) (any, error)

// NewServer creates the API server.
func NewServer(cfg *config.Config, data DatasetProvider, logger *slog.Logger, metrics *observability.Metrics) *Server {
	s := &Server{
		data:    data,
		cache:   gcache.New(cfg.ResponseCacheSize).LRU().Build(),
		logger:  logger,
		metrics: metrics,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/fountains", s.serve(s.handleFountains))
		r.Get("/lines", s.serve(s.handleLines))
		r.Get("/summary", s.serve(s.handleSummary))
		r.Get("/stats/lines", s.serve(s.handleLineStats))
		r.Get("/stats/lines/top", s.serve(s.handleTopLines))
		r.Get("/stats/categories/{field}", s.serve(s.handleCategoryStats))
	})

	s.httpServer = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// serve resolves the current snapshot, answers from the response cache
// when possible, and memoizes computed payloads. Cache keys carry the
// snapshot version, so a dataset reload invalidates every cached entry.
func (s *Server) serve(h snapshotHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := s.data.Snapshot()
		if !ok {
			writeJSON(w, http.StatusServiceUnavailable, errorBody("dataset not loaded"))
			return
		}

		key := cacheKey(snap.Version, r)
		if cached, err := s.cache.Get(key); err == nil {
			s.metrics.ResponseCache.WithLabelValues("hit").Inc()
			writeJSON(w, http.StatusOK, cached)
			return
		}
		s.metrics.ResponseCache.WithLabelValues("miss").Inc()

		payload, err := h(snap, r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}

		if err := s.cache.Set(key, payload); err != nil {
			s.logger.Warn("response cache set failed", "error", err)
		}
		writeJSON(w, http.StatusOK, payload)
	}
}

// cacheKey is version-scoped and query-order insensitive (Encode sorts
// parameters by key).
func cacheKey(version string, r *http.Request) string {
	return fmt.Sprintf("%s %s?%s", version, r.URL.Path, r.URL.Query().Encode())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.data.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
