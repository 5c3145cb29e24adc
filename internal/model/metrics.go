// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package model

import "fmt"

// Metrics holds held-out evaluation results for one classifier.
// Precision and F1 score the positive (success) class; an undefined
// ratio reports as 0.
type Metrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	F1        float64 `json:"f1"`
}

// Evaluate scores a trained classifier on a held-out partition.
func Evaluate(s Scorer, vectors [][]float64, labels []int) (Metrics, error) {
	if len(vectors) == 0 || len(vectors) != len(labels) {
		return Metrics{}, fmt.Errorf("evaluate %s: %d vectors for %d labels", s.Name(), len(vectors), len(labels))
	}

	var truePos, falsePos, falseNeg, correct int
	for i, v := range vectors {
		got, err := s.Predict(v)
		if err != nil {
			return Metrics{}, fmt.Errorf("evaluate %s: row %d: %w", s.Name(), i, err)
		}

		if got == labels[i] {
			correct++
		}
		switch {
		case got == LabelSuccess && labels[i] == LabelSuccess:
			truePos++
		case got == LabelSuccess && labels[i] == LabelFlop:
			falsePos++
		case got == LabelFlop && labels[i] == LabelSuccess:
			falseNeg++
		}
	}

	m := Metrics{
		Accuracy:  float64(correct) / float64(len(labels)),
		Precision: safeRatio(truePos, truePos+falsePos),
	}
	recall := safeRatio(truePos, truePos+falseNeg)
	if m.Precision+recall > 0 {
		m.F1 = 2 * m.Precision * recall / (m.Precision + recall)
	}
	return m, nil
}

func safeRatio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
