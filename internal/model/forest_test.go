// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package model

import (
	"context"
	"errors"
	"testing"
)

func TestRandomForestSeparableSet(t *testing.T) {
	vectors, labels := axisSplitSet()

	forest := NewRandomForest(ForestConfig{Trees: 25, Seed: 42})
	if err := forest.Train(context.Background(), vectors, labels); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	if got := len(forest.State().Trees); got != 25 {
		t.Errorf("ensemble size = %d, want 25", got)
	}

	for i, v := range vectors {
		got, err := forest.Predict(v)
		if err != nil {
			t.Fatalf("Predict() error = %v", err)
		}
		if got != labels[i] {
			t.Errorf("Predict(row %d) = %d, want %d", i, got, labels[i])
		}
	}
}

func TestRandomForestDeterministic(t *testing.T) {
	vectors, labels := axisSplitSet()
	sample := []float64{0.2, -0.1}

	var got [2]int
	for run := 0; run < 2; run++ {
		forest := NewRandomForest(ForestConfig{Trees: 10, Seed: 7})
		if err := forest.Train(context.Background(), vectors, labels); err != nil {
			t.Fatalf("Train() error = %v", err)
		}
		label, err := forest.Predict(sample)
		if err != nil {
			t.Fatalf("Predict() error = %v", err)
		}
		got[run] = label
	}

	if got[0] != got[1] {
		t.Errorf("same seed produced different predictions: %d vs %d", got[0], got[1])
	}
}

func TestRandomForestImportances(t *testing.T) {
	vectors, labels := axisSplitSet()

	forest := NewRandomForest(ForestConfig{Trees: 25, Seed: 42})
	if err := forest.Train(context.Background(), vectors, labels); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	imp := forest.Importances()
	if len(imp) != 2 {
		t.Fatalf("len(Importances()) = %d, want 2", len(imp))
	}
	if imp[0] <= imp[1] {
		t.Errorf("importance = %v, want column 0 dominant", imp)
	}
}

func TestRandomForestCapabilities(t *testing.T) {
	forest := NewRandomForest(DefaultForestConfig())

	if forest.Name() != "Random Forest" {
		t.Errorf("Name() = %q, want Random Forest", forest.Name())
	}
	if !forest.Capabilities().Has(CapImportance) {
		t.Error("Capabilities() missing CapImportance")
	}
}

func TestRandomForestStateRoundTrip(t *testing.T) {
	vectors, labels := axisSplitSet()

	forest := NewRandomForest(ForestConfig{Trees: 10, Seed: 42})
	if err := forest.Train(context.Background(), vectors, labels); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	restored := RestoreRandomForest(forest.State())
	for i, v := range vectors {
		want, err := forest.Predict(v)
		if err != nil {
			t.Fatalf("Predict() error = %v", err)
		}
		got, err := restored.Predict(v)
		if err != nil {
			t.Fatalf("restored Predict() error = %v", err)
		}
		if got != want {
			t.Errorf("restored Predict(row %d) = %d, original = %d", i, got, want)
		}
	}
}

func TestRandomForestUntrainedPredict(t *testing.T) {
	forest := NewRandomForest(DefaultForestConfig())
	if _, err := forest.Predict([]float64{1, 2}); !errors.Is(err, ErrNotTrained) {
		t.Errorf("Predict() error = %v, want ErrNotTrained", err)
	}
}
