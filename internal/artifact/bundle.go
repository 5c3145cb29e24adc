// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

// Package artifact provides persistence for trained scoring bundles.
//
// A training run produces exactly one Bundle: the fitted state of every
// classifier plus the feature schema, scaler parameters and title book
// the serving process needs to reproduce training-time vectors at
// inference time. Bundles are gob-encoded, gzip-compressed and
// checksummed on disk, with monotonically increasing versions.
package artifact

import (
	"encoding/gob"
	"fmt"
	"time"

	"github.com/tomtom215/cinescope/internal/feature"
	"github.com/tomtom215/cinescope/internal/model"
)

// Bundle is the complete output of one training run. Everything needed
// to serve predictions comes out of this one value; the serving process
// never re-reads the training CSV.
type Bundle struct {
	// RunID uniquely identifies the training run.
	RunID string

	// TrainedAt is when the run finished.
	TrainedAt time.Time

	// SuccessThreshold is the rating cutoff the labels were derived
	// from.
	SuccessThreshold float64

	// Genres and Languages are the sorted categorical vocabularies the
	// schema was built from.
	Genres    []string
	Languages []string

	// ScalerMean and ScalerScale are the fitted standardization
	// parameters for the numeric columns.
	ScalerMean  []float64
	ScalerScale []float64

	// Metrics holds held-out evaluation results per classifier name.
	Metrics map[string]model.Metrics

	// Importances maps classifier name to column name to normalized
	// importance, for classifiers that report them.
	Importances map[string]map[string]float64

	// Titles maps record ID to movie title for every cleaned record.
	Titles map[int]string

	// TrainIndex maps a training-partition position to the record ID it
	// came from. Neighbor positions reported by KNN resolve through it.
	TrainIndex []int

	// Fitted classifier states.
	Tree   model.TreeState
	Forest model.ForestState
	KNN    model.KNNState
}

// Schema rebuilds the feature schema the bundle was trained with.
func (b *Bundle) Schema() *feature.Schema {
	return feature.NewSchema(b.Genres, b.Languages)
}

// Scaler rebuilds the fitted scaler.
func (b *Bundle) Scaler() *feature.Scaler {
	return feature.RestoreScaler(b.ScalerMean, b.ScalerScale)
}

// Scorers restores every fitted classifier, keyed by display name.
func (b *Bundle) Scorers() map[string]model.Scorer {
	tree := model.RestoreDecisionTree(b.Tree)
	forest := model.RestoreRandomForest(b.Forest)
	knn := model.RestoreKNN(b.KNN)
	return map[string]model.Scorer{
		tree.Name():   tree,
		forest.Name(): forest,
		knn.Name():    knn,
	}
}

// TitleForTrainPosition resolves a training-partition position to the
// movie title behind it.
func (b *Bundle) TitleForTrainPosition(pos int) (string, error) {
	if pos < 0 || pos >= len(b.TrainIndex) {
		return "", fmt.Errorf("train position %d out of range [0,%d)", pos, len(b.TrainIndex))
	}
	id := b.TrainIndex[pos]
	title, ok := b.Titles[id]
	if !ok {
		return "", fmt.Errorf("no title for record %d", id)
	}
	return title, nil
}

// Validate checks the structural invariants of a loaded bundle.
func (b *Bundle) Validate() error {
	if b.RunID == "" {
		return fmt.Errorf("bundle has no run ID")
	}
	if len(b.ScalerMean) != len(feature.NumericColumns) || len(b.ScalerScale) != len(feature.NumericColumns) {
		return fmt.Errorf("bundle scaler covers %d/%d columns, want %d",
			len(b.ScalerMean), len(b.ScalerScale), len(feature.NumericColumns))
	}

	width := len(feature.NumericColumns) + len(b.Genres) + len(b.Languages)
	if b.Tree.Columns != width || b.Forest.Columns != width {
		return fmt.Errorf("bundle tree states expect %d/%d columns, schema has %d",
			b.Tree.Columns, b.Forest.Columns, width)
	}
	if len(b.KNN.Vectors) == 0 {
		return fmt.Errorf("bundle has no stored training vectors")
	}
	if len(b.KNN.Vectors) != len(b.TrainIndex) {
		return fmt.Errorf("bundle stores %d training vectors for %d train indexes",
			len(b.KNN.Vectors), len(b.TrainIndex))
	}
	return nil
}

// Register gob types for serialization.
//
//nolint:gochecknoinits // gob.Register must be called in init for type registration
func init() {
	gob.Register(Bundle{})
	gob.Register(model.TreeState{})
	gob.Register(model.ForestState{})
	gob.Register(model.KNNState{})
	gob.Register(storedFile{})
}
