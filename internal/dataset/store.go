// Package dataset owns the prepared fountain dataset for the process
// lifetime: one immutable snapshot, swapped atomically on reload.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/Gahlouzi95/ratp-fountains-api/internal/domain"
	"github.com/Gahlouzi95/ratp-fountains-api/internal/observability"
)

// Preparer produces a prepared dataset from an export file.
type Preparer interface {
	Prepare(path string) ([]domain.Fountain, error)
}

// Snapshot is one immutable prepared dataset. Readers share it; a reload
// never mutates a snapshot, only replaces it.
type Snapshot struct {
	Fountains []domain.Fountain
	Version   string
	LoadedAt  time.Time
}

// Store holds the current snapshot and reloads it when the export file
// changes on disk.
type Store struct {
	preparer Preparer
	path     string
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics

	mu       sync.RWMutex
	snapshot *Snapshot
	modTime  time.Time
	size     int64
}

// New creates a Store reading the export at path.
func New(preparer Preparer, path string, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		preparer: preparer,
		path:     path,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
	}
}

// Load reads and prepares the export, swapping in a new snapshot on
// success. On failure the previous snapshot, if any, stays live.
func (s *Store) Load() error {
	start := time.Now()

	// Stat before reading: if the file changes mid-read, the recorded
	// mod time is stale and the next poll reloads again.
	info, err := os.Stat(s.path)
	if err != nil {
		s.metrics.DatasetLoads.WithLabelValues("error").Inc()
		return fmt.Errorf("stat export: %w", err)
	}

	fountains, err := s.preparer.Prepare(s.path)
	if err != nil {
		s.metrics.DatasetLoads.WithLabelValues("error").Inc()
		return err
	}

	snap := &Snapshot{
		Fountains: fountains,
		Version:   uuid.NewString(),
		LoadedAt:  s.clock.Now(),
	}

	s.mu.Lock()
	s.snapshot = snap
	s.modTime = info.ModTime()
	s.size = info.Size()
	s.mu.Unlock()

	s.metrics.DatasetLoads.WithLabelValues("success").Inc()
	s.metrics.DatasetLoadDuration.Observe(time.Since(start).Seconds())
	s.metrics.DatasetRows.Set(float64(len(fountains)))

	s.logger.Info("dataset loaded",
		"rows", len(fountains),
		"version", snap.Version,
		"mod_time", info.ModTime(),
	)
	return nil
}

// Snapshot returns the current dataset. ok is false until the first
// successful Load.
func (s *Store) Snapshot() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, false
	}
	return s.snapshot, true
}

// CheckReadiness reports nil once a snapshot is available, or an error
// describing why the service is not yet ready.
func (s *Store) CheckReadiness(_ context.Context) error {
	if _, ok := s.Snapshot(); !ok {
		return errors.New("dataset has not been loaded yet")
	}
	return nil
}

// Watch polls the export file every interval and reloads when its mod
// time or size changes. A failed reload keeps the previous snapshot
// live. Watch returns when ctx is cancelled.
func (s *Store) Watch(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		s.logger.Info("dataset watch disabled")
		return nil
	}

	s.logger.Info("dataset watch started", "interval", interval)
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("dataset watch stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			s.checkAndReload()
		}
	}
}

func (s *Store) checkAndReload() {
	info, err := os.Stat(s.path)
	if err != nil {
		s.logger.Warn("stat export failed, keeping current snapshot", "error", err)
		return
	}

	s.mu.RLock()
	unchanged := info.ModTime().Equal(s.modTime) && info.Size() == s.size
	s.mu.RUnlock()
	if unchanged {
		return
	}

	s.logger.Info("export file changed, reloading",
		"mod_time", info.ModTime(),
		"size", info.Size(),
	)
	if err := s.Load(); err != nil {
		s.logger.Error("reload failed, keeping current snapshot", "error", err)
	}
}
