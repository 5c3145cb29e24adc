// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package feature

import (
	"errors"
	"math"
	"testing"
)

func TestScalerFitTransform(t *testing.T) {
	rows := [][]float64{
		{2000, 100, 10, 1e6, 1, 0},
		{2010, 120, 30, 3e6, 0, 1},
	}

	s := NewScaler()
	if err := s.Fit(rows); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	got, err := s.Transform(rows[0])
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	// Each numeric column has two equidistant values, so the standardized
	// values are exactly -1 and +1.
	for col := 0; col < len(NumericColumns); col++ {
		if math.Abs(got[col]+1) > 1e-12 {
			t.Errorf("column %d = %f, want -1", col, got[col])
		}
	}

	// Categorical columns pass through untouched.
	if got[4] != 1 || got[5] != 0 {
		t.Errorf("categorical columns = %v, want pass-through", got[4:])
	}

	// The input row must not be mutated.
	if rows[0][0] != 2000 {
		t.Errorf("Transform mutated its input: %v", rows[0])
	}
}

func TestScalerTransformDeterministic(t *testing.T) {
	s := RestoreScaler([]float64{2005, 110, 20, 2e6}, []float64{5, 10, 10, 1e6})

	v := []float64{2010, 120, 30, 3e6, 1}
	a, err := s.Transform(v)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	b, err := s.Transform(v)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("repeated Transform disagrees at column %d: %f vs %f", i, a[i], b[i])
		}
	}
	if a[0] != 1 || a[1] != 1 || a[2] != 1 || a[3] != 1 {
		t.Errorf("Transform() = %v, want unit standardized prefix", a)
	}
}

func TestScalerZeroVariance(t *testing.T) {
	rows := [][]float64{
		{2000, 100, 10, 1e6},
		{2000, 120, 30, 3e6},
	}

	s := NewScaler()
	if err := s.Fit(rows); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	got, err := s.Transform([]float64{2000, 110, 20, 2e6})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got[0] != 0 {
		t.Errorf("zero-variance column = %f, want 0", got[0])
	}
}

func TestScalerRefit(t *testing.T) {
	rows := [][]float64{{2000, 100, 10, 1e6}}

	s := NewScaler()
	if err := s.Fit(rows); err != nil {
		t.Fatalf("first Fit() error = %v", err)
	}
	if err := s.Fit(rows); !errors.Is(err, ErrAlreadyFitted) {
		t.Errorf("second Fit() error = %v, want ErrAlreadyFitted", err)
	}
}

func TestScalerUnfittedTransform(t *testing.T) {
	if _, err := NewScaler().Transform([]float64{1, 2, 3, 4}); err == nil {
		t.Fatal("Transform() on unfitted scaler: expected error")
	}
}
