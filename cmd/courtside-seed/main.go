package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/courtside/courtside/internal/config"
	"github.com/courtside/courtside/internal/demo/seed"
	"github.com/courtside/courtside/internal/observability"
	"github.com/courtside/courtside/internal/storage/backend"
)

func main() {
	cfg, err := config.LoadFromEnv("courtside-seed")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := backend.Open(ctx, cfg.ObjectStore)
	if err != nil {
		logger.Error("failed to initialize object store", slog.Any("error", err))
		os.Exit(1)
	}

	dataset, err := seed.NewGenerator(int64(cfg.Seed.RandomSeed), cfg.Seed.Teams).Generate(cfg.Seed.FirstSeason, cfg.Seed.LastSeason)
	if err != nil {
		logger.Error("failed to generate league", slog.Any("error", err))
		os.Exit(1)
	}
	written, err := seed.Write(ctx, store, dataset)
	if err != nil {
		logger.Error("failed to write league tables", slog.Any("error", err))
		os.Exit(1)
	}
	for _, info := range written {
		logger.Info("table written", slog.String("key", info.Key), slog.Int64("bytes", info.Size))
	}
	logger.Info("league seeded",
		slog.Int("teams", len(dataset.Teams)),
		slog.Int("games", len(dataset.Games)),
		slog.Int("draft_picks", len(dataset.DraftHistory)),
		slog.String("container", cfg.Tables.Container),
	)
}
