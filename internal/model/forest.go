// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package model

import (
	"context"
	"fmt"
	"math"
	"math/rand"
)

// ForestConfig contains configuration for the random forest.
type ForestConfig struct {
	// Trees is the ensemble size. Typical range: 50-500.
	Trees int

	// MaxDepth limits the depth of each tree. 0 means unlimited.
	MaxDepth int

	// MinSamplesSplit is the per-tree minimum rows for a split.
	MinSamplesSplit int

	// Seed drives bootstrap sampling and per-tree feature subsampling.
	Seed int64
}

// DefaultForestConfig returns default random forest configuration.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Trees:           100,
		MinSamplesSplit: 2,
		Seed:            42,
	}
}

// ForestState is the serializable fitted state of a random forest.
type ForestState struct {
	Trees      []*TreeNode
	Importance []float64
	Columns    int
}

// RandomForest is a bagging ensemble of CART trees. Each tree fits on a
// bootstrap sample of the training rows and evaluates a random
// sqrt(columns) feature subset per split; prediction is a majority vote.
type RandomForest struct {
	BaseScorer
	config ForestConfig

	trees      []*TreeNode
	importance []float64
	columns    int
}

// NewRandomForest creates a new random forest classifier.
func NewRandomForest(cfg ForestConfig) *RandomForest {
	if cfg.Trees <= 0 {
		cfg.Trees = 100
	}
	if cfg.MinSamplesSplit < 2 {
		cfg.MinSamplesSplit = 2
	}

	return &RandomForest{
		BaseScorer: NewBaseScorer("Random Forest", CapImportance),
		config:     cfg,
	}
}

// RestoreRandomForest rebuilds a fitted forest from stored state.
func RestoreRandomForest(state ForestState) *RandomForest {
	f := NewRandomForest(DefaultForestConfig())
	f.trees = state.Trees
	f.importance = state.Importance
	f.columns = state.Columns
	f.markTrained()
	return f
}

// State returns the serializable fitted state.
func (f *RandomForest) State() ForestState {
	f.acquirePredictLock()
	defer f.releasePredictLock()
	return ForestState{Trees: f.trees, Importance: f.importance, Columns: f.columns}
}

// Train fits the ensemble on scaled feature vectors and labels.
func (f *RandomForest) Train(ctx context.Context, vectors [][]float64, labels []int) error {
	f.acquireTrainLock()
	defer f.releaseTrainLock()

	if err := validateTrainingSet(vectors, labels); err != nil {
		return fmt.Errorf("train random forest: %w", err)
	}

	f.columns = len(vectors[0])
	f.importance = make([]float64, f.columns)
	f.trees = make([]*TreeNode, 0, f.config.Trees)

	maxFeatures := int(math.Sqrt(float64(f.columns)))
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	rng := rand.New(rand.NewSource(f.config.Seed)) //nolint:gosec // bootstrap sampling, not cryptography

	for i := 0; i < f.config.Trees; i++ {
		if ContextCancelled(ctx) {
			return ctx.Err()
		}

		sampleVectors, sampleLabels := bootstrapSample(vectors, labels, rng)

		tree := NewDecisionTree(TreeConfig{
			MaxDepth:        f.config.MaxDepth,
			MinSamplesSplit: f.config.MinSamplesSplit,
			MaxFeatures:     maxFeatures,
			Seed:            rng.Int63(),
		})
		if err := tree.Train(ctx, sampleVectors, sampleLabels); err != nil {
			return fmt.Errorf("train random forest: tree %d: %w", i, err)
		}

		f.trees = append(f.trees, tree.root)
		for col, w := range tree.importance {
			f.importance[col] += w
		}
	}

	normalizeImportance(f.importance)
	f.markTrained()
	return nil
}

// Predict classifies one scaled feature vector by majority vote over the
// ensemble.
func (f *RandomForest) Predict(vector []float64) (int, error) {
	f.acquirePredictLock()
	defer f.releasePredictLock()

	if len(f.trees) == 0 {
		return 0, ErrNotTrained
	}
	if len(vector) != f.columns {
		return 0, fmt.Errorf("predict: vector has %d columns, model expects %d", len(vector), f.columns)
	}

	votes := make([]int, 0, len(f.trees))
	for _, root := range f.trees {
		node := root
		for !node.Leaf {
			if vector[node.Feature] <= node.Threshold {
				node = node.Left
			} else {
				node = node.Right
			}
		}
		votes = append(votes, node.Label)
	}
	return majorityLabel(votes), nil
}

// Importances returns the normalized importance per feature column,
// averaged over the ensemble.
func (f *RandomForest) Importances() []float64 {
	f.acquirePredictLock()
	defer f.releasePredictLock()

	out := make([]float64, len(f.importance))
	copy(out, f.importance)
	return out
}

// bootstrapSample draws len(vectors) rows with replacement.
func bootstrapSample(vectors [][]float64, labels []int, rng *rand.Rand) ([][]float64, []int) {
	n := len(vectors)
	sv := make([][]float64, n)
	sl := make([]int, n)
	for i := 0; i < n; i++ {
		r := rng.Intn(n)
		sv[i] = vectors[r]
		sl[i] = labels[r]
	}
	return sv, sl
}
