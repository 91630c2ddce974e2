package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	httpadapter "github.com/Gahlouzi95/ratp-fountains-api/internal/adapter/http"
	"github.com/Gahlouzi95/ratp-fountains-api/internal/adapter/opendata"
	"github.com/Gahlouzi95/ratp-fountains-api/internal/config"
	"github.com/Gahlouzi95/ratp-fountains-api/internal/dataset"
	"github.com/Gahlouzi95/ratp-fountains-api/internal/observability"
	"github.com/Gahlouzi95/ratp-fountains-api/internal/pipeline"
)

func main() {
	// Local development keeps settings in .env; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	reader := opendata.NewReader(logger)
	preparer := pipeline.New(reader, logger, metrics)
	store := dataset.New(preparer, cfg.DatasetPath, clockwork.NewRealClock(), logger, metrics)

	// The API is useless without data, so the first load is fatal.
	if err := store.Load(); err != nil {
		logger.Error("initial dataset load failed", "error", err, "path", cfg.DatasetPath)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg, store, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Watch the export file for changes.
	go func() {
		if err := store.Watch(ctx, cfg.RefreshInterval); err != nil {
			logger.Error("dataset watch error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
