package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/cuiamaster/comunistando/app/cfg"
	"github.com/cuiamaster/comunistando/app/publish"
	"github.com/cuiamaster/comunistando/app/sources"
)

func main() {
	c, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if c == nil {
		// Help was shown, exit gracefully
		return
	}

	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	})))

	slog.Info("Starting aggregation run", "version", cfg.GetVersion(), "output", c.OutputDir)

	srcs, err := sources.Load(c.SourcesFile)
	if err != nil {
		slog.Error("Failed to load sources", "file", c.SourcesFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Sources loaded", "file", c.SourcesFile, "sources", len(srcs))

	if err := publish.NewAggregator(c, srcs).Run(context.Background()); err != nil {
		slog.Error("Aggregation run failed", "error", err)
		os.Exit(1)
	}
}
