// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

// Package train runs the offline training pipeline: clean the raw
// corpus, derive the feature schema, fit the classifiers and produce
// one artifact bundle.
package train

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/cinescope/internal/artifact"
	"github.com/tomtom215/cinescope/internal/dataset"
	"github.com/tomtom215/cinescope/internal/feature"
	"github.com/tomtom215/cinescope/internal/logging"
	"github.com/tomtom215/cinescope/internal/model"
)

// Config holds training pipeline configuration.
type Config struct {
	// CSVPath is the raw movie corpus.
	CSVPath string

	// TestFraction of rows held out for evaluation.
	TestFraction float64

	// Seed drives the split, bootstrap sampling and feature
	// subsampling, making runs reproducible.
	Seed int64

	Tree   model.TreeConfig
	Forest model.ForestConfig
	KNN    model.KNNConfig
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		TestFraction: 0.2,
		Seed:         42,
		Tree:         model.DefaultTreeConfig(),
		Forest:       model.DefaultForestConfig(),
		KNN:          model.DefaultKNNConfig(),
	}
}

// Result is the output of one pipeline run.
type Result struct {
	Bundle   *artifact.Bundle
	Stats    dataset.CleanStats
	Metrics  map[string]model.Metrics
	Duration time.Duration
}

// Run loads the CSV corpus and executes the pipeline on it.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	raws, err := dataset.LoadCSV(ctx, cfg.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return Pipeline(ctx, cfg, raws)
}

// Pipeline executes the training pipeline over raw records.
//
//nolint:gocyclo // the pipeline is one linear sequence of stages
func Pipeline(ctx context.Context, cfg Config, raws []dataset.RawRecord) (*Result, error) {
	started := time.Now()
	runID := uuid.New().String()
	log := logging.With().Str("component", "train").Str("run_id", runID).Logger()

	records, stats := dataset.Clean(raws)
	if len(records) == 0 {
		return nil, fmt.Errorf("no usable rows after cleaning %d raw records", len(raws))
	}
	log.Info().
		Int("raw_rows", stats.TotalRows).
		Int("kept_rows", stats.KeptRows).
		Int("dropped_rows", stats.DroppedRows).
		Float64("budget_median", stats.BudgetMedian).
		Msg("Corpus cleaned")

	schema := feature.BuildSchema(records)

	labels := make([]int, len(records))
	positives := 0
	for i := range records {
		if records[i].Rating >= model.SuccessThreshold {
			labels[i] = model.LabelSuccess
			positives++
		}
	}
	log.Info().
		Int("features", schema.Len()).
		Int("genres", len(schema.Genres())).
		Int("languages", len(schema.Languages())).
		Int("successes", positives).
		Int("flops", len(records)-positives).
		Msg("Feature schema built")

	vectors := make([][]float64, len(records))
	for i := range records {
		vectors[i] = schema.Vectorize(&records[i])
	}

	trainPos, testPos, err := feature.StratifiedSplit(labels, cfg.TestFraction, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("split corpus: %w", err)
	}

	trainVec, trainLabels := gather(vectors, labels, trainPos)
	testVec, testLabels := gather(vectors, labels, testPos)
	log.Info().
		Int("train_rows", len(trainVec)).
		Int("test_rows", len(testVec)).
		Msg("Corpus split")

	scaler := feature.NewScaler()
	if err := scaler.Fit(trainVec); err != nil {
		return nil, fmt.Errorf("fit scaler: %w", err)
	}
	if trainVec, err = scaler.TransformAll(trainVec); err != nil {
		return nil, fmt.Errorf("scale train partition: %w", err)
	}
	if testVec, err = scaler.TransformAll(testVec); err != nil {
		return nil, fmt.Errorf("scale test partition: %w", err)
	}

	scorers := []model.Scorer{
		model.NewDecisionTree(cfg.Tree),
		model.NewRandomForest(cfg.Forest),
		model.NewKNN(cfg.KNN),
	}

	metrics := make(map[string]model.Metrics, len(scorers))
	importances := make(map[string]map[string]float64)
	for _, s := range scorers {
		fitStart := time.Now()
		if err := s.Train(ctx, trainVec, trainLabels); err != nil {
			return nil, fmt.Errorf("train %s: %w", s.Name(), err)
		}

		m, err := model.Evaluate(s, testVec, testLabels)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", s.Name(), err)
		}
		metrics[s.Name()] = m

		if s.Capabilities().Has(model.CapImportance) {
			imp, ok := s.(model.Importer)
			if !ok {
				return nil, fmt.Errorf("%s declares importances but does not implement them", s.Name())
			}
			importances[s.Name()] = columnImportances(schema, imp.Importances())
		}

		log.Info().
			Str("model", s.Name()).
			Float64("accuracy", m.Accuracy).
			Float64("precision", m.Precision).
			Float64("f1", m.F1).
			Dur("fit_duration", time.Since(fitStart)).
			Msg("Model trained")
	}

	titles := make(map[int]string, len(records))
	for i := range records {
		titles[records[i].ID] = records[i].Title
	}
	trainIndex := make([]int, len(trainPos))
	for i, pos := range trainPos {
		trainIndex[i] = records[pos].ID
	}

	bundle := &artifact.Bundle{
		RunID:            runID,
		TrainedAt:        time.Now().UTC(),
		SuccessThreshold: model.SuccessThreshold,
		Genres:           schema.Genres(),
		Languages:        schema.Languages(),
		ScalerMean:       scaler.Mean,
		ScalerScale:      scaler.Scale,
		Metrics:          metrics,
		Importances:      importances,
		Titles:           titles,
		TrainIndex:       trainIndex,
		Tree:             scorers[0].(*model.DecisionTree).State(),
		Forest:           scorers[1].(*model.RandomForest).State(),
		KNN:              scorers[2].(*model.KNN).State(),
	}
	if err := bundle.Validate(); err != nil {
		return nil, fmt.Errorf("assemble bundle: %w", err)
	}

	duration := time.Since(started)
	log.Info().Dur("duration", duration).Msg("Training run complete")

	return &Result{
		Bundle:   bundle,
		Stats:    stats,
		Metrics:  metrics,
		Duration: duration,
	}, nil
}

func gather(vectors [][]float64, labels []int, positions []int) ([][]float64, []int) {
	v := make([][]float64, len(positions))
	l := make([]int, len(positions))
	for i, pos := range positions {
		v[i] = vectors[pos]
		l[i] = labels[pos]
	}
	return v, l
}

// columnImportances maps per-column weights onto schema column names.
func columnImportances(schema *feature.Schema, weights []float64) map[string]float64 {
	cols := schema.Columns()
	out := make(map[string]float64, len(weights))
	for i, w := range weights {
		if i < len(cols) {
			out[cols[i]] = w
		}
	}
	return out
}
