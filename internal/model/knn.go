// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package model

import (
	"context"
	"fmt"
	"sort"
)

// KNNConfig contains configuration for the k-nearest-neighbors
// classifier.
type KNNConfig struct {
	// K is the number of neighbors consulted per prediction.
	// Typical range: 3-15.
	K int
}

// DefaultKNNConfig returns default KNN configuration.
func DefaultKNNConfig() KNNConfig {
	return KNNConfig{K: 5}
}

// KNNState is the serializable fitted state of the KNN classifier. The
// stored vectors are the scaled training partition; neighbor positions
// index into it.
type KNNState struct {
	Vectors [][]float64
	Labels  []int
	K       int
}

// KNN classifies by majority vote among the K nearest training rows
// under Euclidean distance. It is the one scorer that can name which
// training rows drove a prediction, so it carries CapNeighbors.
type KNN struct {
	BaseScorer
	config KNNConfig

	vectors [][]float64
	labels  []int
}

// NewKNN creates a new k-nearest-neighbors classifier.
func NewKNN(cfg KNNConfig) *KNN {
	if cfg.K <= 0 {
		cfg.K = 5
	}

	return &KNN{
		BaseScorer: NewBaseScorer("KNN", CapNeighbors),
		config:     cfg,
	}
}

// RestoreKNN rebuilds a fitted classifier from stored state.
func RestoreKNN(state KNNState) *KNN {
	k := NewKNN(KNNConfig{K: state.K})
	k.vectors = state.Vectors
	k.labels = state.Labels
	k.markTrained()
	return k
}

// State returns the serializable fitted state.
func (k *KNN) State() KNNState {
	k.acquirePredictLock()
	defer k.releasePredictLock()
	return KNNState{Vectors: k.vectors, Labels: k.labels, K: k.config.K}
}

// Train stores the scaled training partition. KNN is a lazy learner;
// all work happens at prediction time.
func (k *KNN) Train(ctx context.Context, vectors [][]float64, labels []int) error {
	k.acquireTrainLock()
	defer k.releaseTrainLock()

	if ContextCancelled(ctx) {
		return ctx.Err()
	}
	if err := validateTrainingSet(vectors, labels); err != nil {
		return fmt.Errorf("train knn: %w", err)
	}

	k.vectors = vectors
	k.labels = labels
	k.markTrained()
	return nil
}

// Predict classifies one scaled feature vector by majority vote among
// its K nearest training rows.
func (k *KNN) Predict(vector []float64) (int, error) {
	neighbors, err := k.Neighbors(vector, k.config.K)
	if err != nil {
		return 0, err
	}

	votes := make([]int, len(neighbors))
	for i, n := range neighbors {
		votes[i] = k.labels[n.Position]
	}
	return majorityLabel(votes), nil
}

// Neighbors returns the k training rows closest to the vector, nearest
// first. Ties on distance break toward the lower position for
// determinism.
func (k *KNN) Neighbors(vector []float64, n int) ([]Neighbor, error) {
	k.acquirePredictLock()
	defer k.releasePredictLock()

	if len(k.vectors) == 0 {
		return nil, ErrNotTrained
	}
	if len(vector) != len(k.vectors[0]) {
		return nil, fmt.Errorf("neighbors: vector has %d columns, model expects %d", len(vector), len(k.vectors[0]))
	}
	if n <= 0 {
		n = k.config.K
	}
	if n > len(k.vectors) {
		n = len(k.vectors)
	}

	all := make([]Neighbor, len(k.vectors))
	for i, tv := range k.vectors {
		all[i] = Neighbor{Position: i, Distance: euclideanDistance(vector, tv)}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Distance != all[j].Distance {
			return all[i].Distance < all[j].Distance
		}
		return all[i].Position < all[j].Position
	})

	return all[:n], nil
}
