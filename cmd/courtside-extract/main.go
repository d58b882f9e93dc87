package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/courtside/courtside/internal/cli/extractcli"
	"github.com/courtside/courtside/internal/config"
	"github.com/courtside/courtside/internal/extract"
	"github.com/courtside/courtside/internal/observability"
	"github.com/courtside/courtside/internal/query/duckdb"
	"github.com/courtside/courtside/internal/storage/backend"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadFromEnv("courtside-extract")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return 1
	}
	logger := observability.NewLogger(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	runID := observability.NewRunID()
	ctx = observability.ContextWithRunID(ctx, runID)

	store, err := backend.Open(ctx, cfg.ObjectStore)
	if err != nil {
		logger.Error("failed to initialize object store", slog.Any("error", err))
		return 1
	}
	fs, err := backend.Mount(cfg.Tables, store)
	if err != nil {
		logger.Error("failed to mount object store", slog.Any("error", err))
		return 1
	}
	tables, err := extract.DefaultTables(cfg.Tables.Scheme, cfg.Tables.Container)
	if err != nil {
		logger.Error("invalid table layout", slog.Any("error", err))
		return 1
	}

	code := extractcli.Run(ctx, os.Args[1:], extractcli.Options{
		Engine: duckdb.NewEngine(fs, cfg.Engine.Threads),
		Tables: tables,
		Logger: logger,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})

	if path := cfg.Observability.MetricsFile; path != "" {
		if err := observability.WriteMetricsFile(path); err != nil {
			logger.Error("failed to write metrics file", slog.String("path", path), slog.Any("error", err))
		}
	}
	logger.Debug("extract finished", slog.String("run_id", runID), slog.Int("exit_code", code))
	return code
}
