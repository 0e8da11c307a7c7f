package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "ads-dashboard/internal/adapter/http"
	"ads-dashboard/internal/adapter/memory"
	"ads-dashboard/internal/adapter/postgres"
	"ads-dashboard/internal/adapter/usecase"
	"ads-dashboard/internal/config"
	"ads-dashboard/internal/config/configs"
	"ads-dashboard/internal/core/port"
	"ads-dashboard/internal/db"
	"ads-dashboard/internal/logging"
)

// main is the entry point of the ads dashboard service. It loads
// configuration, opens the configured store (running migrations and the
// demo seed when asked), then serves the HTTP API until SIGINT or SIGTERM
// and shuts down gracefully.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	logger, logCloser := logging.New(cfg.Log, cfg.Env)
	defer logCloser.Close()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	repo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage init error", slog.Any("error", err))
		return
	}
	defer closeRepo()

	if cfg.Storage.Seed {
		seeded, err := db.Seed(ctx, repo, time.Now().UTC().Truncate(time.Microsecond))
		if err != nil {
			logger.Error("seed error", slog.Any("error", err))
			return
		}
		logger.Info("demo data", slog.Bool("seeded", seeded))
	}

	svc := usecase.NewHierarchyUseCase(repo, logger)
	handler := httpadapter.NewHandler(svc, logger)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)), slog.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err = <-serveErr:
		logger.Error("server error", slog.Any("error", err))
		return
	case <-ctx.Done():
		exitCode = 0
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer stop()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		exitCode = 1
	} else {
		logger.Info("server gracefully stopped")
	}
}

// openRepository builds the repository for the configured driver. The
// returned func releases its resources.
func openRepository(ctx context.Context, cfg config.Config, logger *slog.Logger) (port.HierarchyRepository, func(), error) {
	if cfg.Storage.Driver == configs.StorageDriverMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		return memory.NewRepository(), func() {}, nil
	}

	if cfg.Psql.RunMigrations {
		if err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied successfully")
	}

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection: %w", err)
	}
	return postgres.NewHierarchyRepository(pool), pool.Close, nil
}
