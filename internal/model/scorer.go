// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

// Package model implements the success classifiers for the scoring engine.
//
// Each classifier implements the Scorer interface and is registered with
// the trainer under its display name.
//
// # Classifier Categories
//
//   - Tree-Based: DecisionTree, RandomForest (report feature importances)
//   - Instance-Based: KNN (reports nearest training neighbors)
//
// # Thread Safety
//
// All classifiers are safe for concurrent use. Training acquires an
// exclusive lock while prediction uses a shared lock.
package model

import (
	"context"
	"errors"
	"sync"
	"time"
)

// SuccessThreshold is the rating at or above which a movie counts as a
// success. Labels are derived from it once, at training time.
const SuccessThreshold = 7.0

// Success labels.
const (
	LabelFlop    = 0
	LabelSuccess = 1
)

// Capability declares an optional explanation facility a scorer supports.
// Capabilities are fixed at construction; callers branch on them instead
// of probing concrete types.
type Capability uint8

const (
	// CapImportance means the scorer exposes per-column feature
	// importances via the Importer interface.
	CapImportance Capability = 1 << iota

	// CapNeighbors means the scorer exposes nearest training neighbors
	// via the NeighborFinder interface.
	CapNeighbors
)

// Has reports whether all capabilities in want are present.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// ErrNotTrained is returned when prediction is attempted before Train.
var ErrNotTrained = errors.New("model not trained")

// Scorer is a binary success classifier over feature vectors.
type Scorer interface {
	// Name returns the scorer's display name.
	Name() string

	// Capabilities returns the explanation facilities this scorer offers.
	Capabilities() Capability

	// Train fits the scorer on scaled feature vectors and labels.
	Train(ctx context.Context, vectors [][]float64, labels []int) error

	// Predict classifies one scaled feature vector.
	Predict(vector []float64) (int, error)

	// IsTrained reports whether Train has completed.
	IsTrained() bool
}

// Importer is implemented by scorers with CapImportance.
type Importer interface {
	// Importances returns one non-negative weight per feature column,
	// summing to 1 when any column carries signal.
	Importances() []float64
}

// NeighborFinder is implemented by scorers with CapNeighbors.
type NeighborFinder interface {
	// Neighbors returns the k training rows closest to the vector,
	// nearest first.
	Neighbors(vector []float64, k int) ([]Neighbor, error)
}

// Neighbor identifies one training row by its position in the training
// partition, with its distance to the query vector.
type Neighbor struct {
	Position int
	Distance float64
}

// BaseScorer provides common state for all classifiers.
type BaseScorer struct {
	name         string
	capabilities Capability

	trained       bool
	lastTrainedAt time.Time
	mu            sync.RWMutex
}

// NewBaseScorer creates base scorer state with the given name and
// capability set.
func NewBaseScorer(name string, caps Capability) BaseScorer {
	return BaseScorer{name: name, capabilities: caps}
}

// Name returns the scorer's display name.
func (b *BaseScorer) Name() string {
	return b.name
}

// Capabilities returns the capability set declared at construction.
func (b *BaseScorer) Capabilities() Capability {
	return b.capabilities
}

// IsTrained reports whether the model has been trained.
func (b *BaseScorer) IsTrained() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.trained
}

// LastTrainedAt returns when the model was last trained.
func (b *BaseScorer) LastTrainedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastTrainedAt
}

// markTrained updates the trained state.
// Must be called while holding the training lock (acquireTrainLock).
func (b *BaseScorer) markTrained() {
	b.trained = true
	b.lastTrainedAt = time.Now()
}

// acquireTrainLock acquires the exclusive training lock.
func (b *BaseScorer) acquireTrainLock() {
	b.mu.Lock()
}

// releaseTrainLock releases the exclusive training lock.
func (b *BaseScorer) releaseTrainLock() {
	b.mu.Unlock()
}

// acquirePredictLock acquires the shared prediction lock.
func (b *BaseScorer) acquirePredictLock() {
	b.mu.RLock()
}

// releasePredictLock releases the shared prediction lock.
func (b *BaseScorer) releasePredictLock() {
	b.mu.RUnlock()
}

// validateTrainingSet checks the vectors/labels pair all classifiers
// train on.
func validateTrainingSet(vectors [][]float64, labels []int) error {
	if len(vectors) == 0 {
		return errors.New("empty training set")
	}
	if len(vectors) != len(labels) {
		return errors.New("vectors and labels length mismatch")
	}
	width := len(vectors[0])
	if width == 0 {
		return errors.New("zero-width feature vectors")
	}
	for _, v := range vectors {
		if len(v) != width {
			return errors.New("ragged feature vectors")
		}
	}
	return nil
}

// majorityLabel returns the most frequent label, preferring the lower
// label on ties.
func majorityLabel(labels []int) int {
	counts := make(map[int]int, 2)
	for _, l := range labels {
		counts[l]++
	}

	best, bestCount := 0, -1
	for label, count := range counts {
		if count > bestCount || (count == bestCount && label < best) {
			best, bestCount = label, count
		}
	}
	return best
}

// euclideanDistance computes the L2 distance between two vectors of
// equal length.
func euclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sqrt(sum)
}

// sqrt returns the square root using Newton's method.
// This avoids importing math for a simple operation.
func sqrt(x float64) float64 {
	if x <= 0 {
		return 0
	}

	z := x
	for i := 0; i < 10; i++ {
		z = (z + x/z) / 2
	}
	return z
}

// Ensure all classifiers implement the interface.
var (
	_ Scorer = (*DecisionTree)(nil)
	_ Scorer = (*RandomForest)(nil)
	_ Scorer = (*KNN)(nil)

	_ Importer = (*DecisionTree)(nil)
	_ Importer = (*RandomForest)(nil)

	_ NeighborFinder = (*KNN)(nil)
)

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
