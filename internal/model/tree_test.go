// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package model

import (
	"context"
	"errors"
	"math"
	"testing"
)

// axisSplitSet is linearly separable on column 0; column 1 is noise.
func axisSplitSet() ([][]float64, []int) {
	vectors := [][]float64{
		{-2, 0.3}, {-1.5, -0.8}, {-1, 0.1}, {-0.5, 0.9},
		{0.5, -0.2}, {1, 0.7}, {1.5, -0.5}, {2, 0.4},
	}
	labels := []int{0, 0, 0, 0, 1, 1, 1, 1}
	return vectors, labels
}

func TestDecisionTreeSeparableSet(t *testing.T) {
	vectors, labels := axisSplitSet()

	tree := NewDecisionTree(DefaultTreeConfig())
	if err := tree.Train(context.Background(), vectors, labels); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if !tree.IsTrained() {
		t.Fatal("IsTrained() = false after Train")
	}

	for i, v := range vectors {
		got, err := tree.Predict(v)
		if err != nil {
			t.Fatalf("Predict() error = %v", err)
		}
		if got != labels[i] {
			t.Errorf("Predict(row %d) = %d, want %d", i, got, labels[i])
		}
	}
}

func TestDecisionTreeImportances(t *testing.T) {
	vectors, labels := axisSplitSet()

	tree := NewDecisionTree(DefaultTreeConfig())
	if err := tree.Train(context.Background(), vectors, labels); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	imp := tree.Importances()
	if len(imp) != 2 {
		t.Fatalf("len(Importances()) = %d, want 2", len(imp))
	}
	if imp[0] <= imp[1] {
		t.Errorf("importance = %v, want column 0 dominant", imp)
	}

	var total float64
	for _, w := range imp {
		total += w
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("importances sum to %f, want 1", total)
	}
}

func TestDecisionTreeCapabilities(t *testing.T) {
	tree := NewDecisionTree(DefaultTreeConfig())

	if tree.Name() != "Decision Tree" {
		t.Errorf("Name() = %q, want Decision Tree", tree.Name())
	}
	if !tree.Capabilities().Has(CapImportance) {
		t.Error("Capabilities() missing CapImportance")
	}
	if tree.Capabilities().Has(CapNeighbors) {
		t.Error("Capabilities() reports CapNeighbors")
	}
}

func TestDecisionTreeUntrainedPredict(t *testing.T) {
	tree := NewDecisionTree(DefaultTreeConfig())
	if _, err := tree.Predict([]float64{1, 2}); !errors.Is(err, ErrNotTrained) {
		t.Errorf("Predict() error = %v, want ErrNotTrained", err)
	}
}

func TestDecisionTreeInvalidTrainingSet(t *testing.T) {
	tests := []struct {
		name    string
		vectors [][]float64
		labels  []int
	}{
		{name: "empty", vectors: nil, labels: nil},
		{name: "length mismatch", vectors: [][]float64{{1}}, labels: []int{0, 1}},
		{name: "ragged rows", vectors: [][]float64{{1, 2}, {1}}, labels: []int{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := NewDecisionTree(DefaultTreeConfig())
			if err := tree.Train(context.Background(), tt.vectors, tt.labels); err == nil {
				t.Error("Train() = nil, want error")
			}
		})
	}
}

func TestDecisionTreeStateRoundTrip(t *testing.T) {
	vectors, labels := axisSplitSet()

	tree := NewDecisionTree(DefaultTreeConfig())
	if err := tree.Train(context.Background(), vectors, labels); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	restored := RestoreDecisionTree(tree.State())
	if !restored.IsTrained() {
		t.Fatal("restored tree reports untrained")
	}
	for i, v := range vectors {
		got, err := restored.Predict(v)
		if err != nil {
			t.Fatalf("Predict() error = %v", err)
		}
		if got != labels[i] {
			t.Errorf("restored Predict(row %d) = %d, want %d", i, got, labels[i])
		}
	}
}

func TestDecisionTreeSingleClass(t *testing.T) {
	vectors := [][]float64{{1, 2}, {3, 4}, {5, 6}}
	labels := []int{1, 1, 1}

	tree := NewDecisionTree(DefaultTreeConfig())
	if err := tree.Train(context.Background(), vectors, labels); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	got, err := tree.Predict([]float64{-100, -100})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if got != 1 {
		t.Errorf("Predict() = %d, want 1", got)
	}
}

func TestDecisionTreeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	vectors, labels := axisSplitSet()
	tree := NewDecisionTree(DefaultTreeConfig())
	if err := tree.Train(ctx, vectors, labels); !errors.Is(err, context.Canceled) {
		t.Errorf("Train() error = %v, want context.Canceled", err)
	}
}
