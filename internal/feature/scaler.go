// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package feature

import (
	"errors"
	"fmt"
	"math"
)

// ErrAlreadyFitted is returned when Fit is called twice on one Scaler.
// Scaling parameters belong to exactly one training run.
var ErrAlreadyFitted = errors.New("scaler already fitted")

// Scaler standardizes the numeric prefix of feature vectors to zero mean
// and unit variance. It is fitted on the training partition exclusively;
// the test partition and every inference vector are transformed with the
// stored parameters, never refitted. Transform is a pure function of those
// parameters, so identical inputs always produce identical outputs.
type Scaler struct {
	// Mean and Scale hold the fitted location and scale per numeric
	// column. Exported for artifact serialization.
	Mean  []float64
	Scale []float64
}

// NewScaler returns an unfitted scaler.
func NewScaler() *Scaler {
	return &Scaler{}
}

// RestoreScaler rebuilds a scaler from stored parameters.
func RestoreScaler(mean, scale []float64) *Scaler {
	return &Scaler{Mean: mean, Scale: scale}
}

// Fitted reports whether scaling parameters are present.
func (s *Scaler) Fitted() bool {
	return len(s.Mean) > 0
}

// Fit computes mean and population standard deviation over the numeric
// prefix of the given rows. Columns with zero variance store a scale of 1
// so Transform maps them to 0 instead of dividing by zero.
func (s *Scaler) Fit(rows [][]float64) error {
	if s.Fitted() {
		return ErrAlreadyFitted
	}
	if len(rows) == 0 {
		return errors.New("fit scaler: no rows")
	}

	n := len(NumericColumns)
	s.Mean = make([]float64, n)
	s.Scale = make([]float64, n)

	for col := 0; col < n; col++ {
		var sum float64
		for _, row := range rows {
			sum += row[col]
		}
		mean := sum / float64(len(rows))

		var sq float64
		for _, row := range rows {
			d := row[col] - mean
			sq += d * d
		}
		std := math.Sqrt(sq / float64(len(rows)))
		if std == 0 {
			std = 1
		}

		s.Mean[col] = mean
		s.Scale[col] = std
	}

	return nil
}

// Transform returns a copy of the vector with the numeric prefix
// standardized. Categorical columns pass through untouched.
func (s *Scaler) Transform(v []float64) ([]float64, error) {
	if !s.Fitted() {
		return nil, errors.New("transform: scaler not fitted")
	}
	if len(v) < len(s.Mean) {
		return nil, fmt.Errorf("transform: vector has %d columns, need at least %d", len(v), len(s.Mean))
	}

	out := make([]float64, len(v))
	copy(out, v)
	for col := range s.Mean {
		out[col] = (v[col] - s.Mean[col]) / s.Scale[col]
	}
	return out, nil
}

// TransformAll transforms every row, returning a new matrix.
func (s *Scaler) TransformAll(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		t, err := s.Transform(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = t
	}
	return out, nil
}
