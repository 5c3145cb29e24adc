// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

// Package main is the entry point for the CineScope trainer.
//
// The trainer runs the offline pipeline end to end: it loads the raw
// movie CSV through DuckDB, applies the missing-data policy, derives
// the feature schema, fits the Decision Tree, Random Forest and KNN
// classifiers, evaluates them on a held-out partition, and writes one
// versioned artifact bundle for the scoring server to load.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (MOVIES_CSV_PATH, ARTIFACT_DIR, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Example Usage
//
//	export MOVIES_CSV_PATH=/data/movies.csv
//	export ARTIFACT_DIR=/data/artifacts
//	./cinescope-trainer
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/tomtom215/cinescope/internal/artifact"
	"github.com/tomtom215/cinescope/internal/config"
	"github.com/tomtom215/cinescope/internal/logging"
	"github.com/tomtom215/cinescope/internal/model"
	"github.com/tomtom215/cinescope/internal/train"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	trainCfg := train.Config{
		CSVPath:      cfg.Training.CSVPath,
		TestFraction: cfg.Training.TestFraction,
		Seed:         cfg.Training.Seed,
		Tree: model.TreeConfig{
			MaxDepth:        cfg.Training.TreeMaxDepth,
			MinSamplesSplit: 2,
			Seed:            cfg.Training.Seed,
		},
		Forest: model.ForestConfig{
			Trees:           cfg.Training.ForestTrees,
			MaxDepth:        cfg.Training.TreeMaxDepth,
			MinSamplesSplit: 2,
			Seed:            cfg.Training.Seed,
		},
		KNN: model.KNNConfig{K: cfg.Training.KNNNeighbors},
	}

	logging.Info().
		Str("csv_path", cfg.Training.CSVPath).
		Str("artifact_dir", cfg.Artifact.Dir).
		Msg("Starting training run")

	result, err := train.Run(ctx, trainCfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Training run failed")
	}

	store, err := artifact.NewStore(cfg.Artifact.Dir)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open artifact store")
	}

	meta, err := store.Save(ctx, result.Bundle, artifact.Metadata{
		RowCount:           result.Stats.KeptRows,
		FeatureCount:       len(result.Bundle.Schema().Columns()),
		TrainingDurationMS: result.Duration.Milliseconds(),
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to save bundle")
	}

	if err := store.Prune(ctx, cfg.Artifact.KeepVersions); err != nil {
		logging.Warn().Err(err).Msg("Failed to prune old bundles")
	}

	logging.Info().
		Str("run_id", result.Bundle.RunID).
		Int("version", meta.Version).
		Int64("size_bytes", meta.SizeBytes).
		Msg("Bundle saved")
}
