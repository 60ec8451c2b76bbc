package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/seed"
)

func main() {
	slog.Info("Starting seed responses job")
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	randomSource := conf.Seed.RandomSource
	if randomSource == 0 {
		randomSource = seed.DEFAULT_RANDOM_SOURCE
	}

	written, err := seed.Seed(ctx, responseDBService, bankCatalogue, seed.Options{
		Count:        conf.Seed.Count,
		RandomSource: randomSource,
		Now:          start,
	})
	if err != nil {
		slog.Error("Error seeding responses", slog.Int("written", written), slog.String("error", err.Error()))
	}

	if err := responseDBService.DBClient.Disconnect(context.Background()); err != nil {
		slog.Error("Error closing DB connection", slog.String("error", err.Error()))
	}
	slog.Info("Seed responses job completed", slog.Int("written", written), slog.String("duration", time.Since(start).String()))
}
