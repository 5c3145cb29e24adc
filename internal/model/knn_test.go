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

func TestKNNPredict(t *testing.T) {
	vectors := [][]float64{
		{0, 0}, {0, 1}, {1, 0},
		{10, 10}, {10, 11}, {11, 10},
	}
	labels := []int{0, 0, 0, 1, 1, 1}

	knn := NewKNN(KNNConfig{K: 3})
	if err := knn.Train(context.Background(), vectors, labels); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	tests := []struct {
		name  string
		query []float64
		want  int
	}{
		{name: "near origin cluster", query: []float64{0.5, 0.5}, want: 0},
		{name: "near far cluster", query: []float64{10.5, 10.5}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := knn.Predict(tt.query)
			if err != nil {
				t.Fatalf("Predict() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Predict(%v) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestKNNNeighbors(t *testing.T) {
	vectors := [][]float64{{0, 0}, {3, 4}, {6, 8}}
	labels := []int{0, 1, 1}

	knn := NewKNN(KNNConfig{K: 5})
	if err := knn.Train(context.Background(), vectors, labels); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	got, err := knn.Neighbors([]float64{0, 0}, 2)
	if err != nil {
		t.Fatalf("Neighbors() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("len(Neighbors()) = %d, want 2", len(got))
	}
	if got[0].Position != 0 || got[0].Distance != 0 {
		t.Errorf("nearest = %+v, want position 0 at distance 0", got[0])
	}
	if got[1].Position != 1 || math.Abs(got[1].Distance-5) > 1e-9 {
		t.Errorf("second = %+v, want position 1 at distance 5", got[1])
	}
}

func TestKNNNeighborsClampedToTrainingSize(t *testing.T) {
	vectors := [][]float64{{0}, {1}}
	labels := []int{0, 1}

	knn := NewKNN(KNNConfig{K: 5})
	if err := knn.Train(context.Background(), vectors, labels); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	got, err := knn.Neighbors([]float64{0.4}, 10)
	if err != nil {
		t.Fatalf("Neighbors() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len(Neighbors()) = %d, want clamp to 2", len(got))
	}
}

func TestKNNCapabilities(t *testing.T) {
	knn := NewKNN(DefaultKNNConfig())

	if knn.Name() != "KNN" {
		t.Errorf("Name() = %q, want KNN", knn.Name())
	}
	if !knn.Capabilities().Has(CapNeighbors) {
		t.Error("Capabilities() missing CapNeighbors")
	}
	if knn.Capabilities().Has(CapImportance) {
		t.Error("Capabilities() reports CapImportance")
	}
}

func TestKNNDimensionMismatch(t *testing.T) {
	knn := NewKNN(DefaultKNNConfig())
	if err := knn.Train(context.Background(), [][]float64{{1, 2}, {3, 4}}, []int{0, 1}); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	if _, err := knn.Predict([]float64{1}); err == nil {
		t.Error("Predict() with wrong width: expected error")
	}
}

func TestKNNStateRoundTrip(t *testing.T) {
	vectors := [][]float64{{0, 0}, {1, 1}, {10, 10}}
	labels := []int{0, 0, 1}

	knn := NewKNN(KNNConfig{K: 1})
	if err := knn.Train(context.Background(), vectors, labels); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	restored := RestoreKNN(knn.State())
	got, err := restored.Predict([]float64{9, 9})
	if err != nil {
		t.Fatalf("restored Predict() error = %v", err)
	}
	if got != 1 {
		t.Errorf("restored Predict() = %d, want 1", got)
	}
}

func TestKNNUntrained(t *testing.T) {
	knn := NewKNN(DefaultKNNConfig())
	if _, err := knn.Neighbors([]float64{1}, 3); !errors.Is(err, ErrNotTrained) {
		t.Errorf("Neighbors() error = %v, want ErrNotTrained", err)
	}
}
