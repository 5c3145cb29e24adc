// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package feature

// ExpandFamily converts one categorical family (genres or languages) into
// its wide multi-hot block. Each row's label set is exploded into
// (row, label) pairs, one-hot encoded against the vocabulary, and
// re-aggregated per row by summation. Labels outside the vocabulary
// contribute nothing; a row with no list values left to expand yields an
// all-zero row, so re-running the expander over already-expanded rows is a
// no-op.
func ExpandFamily(sets [][]string, vocab []string) [][]float64 {
	index := make(map[string]int, len(vocab))
	for i, label := range vocab {
		index[label] = i
	}

	wide := make([][]float64, len(sets))
	for row, labels := range sets {
		wide[row] = make([]float64, len(vocab))
		for _, label := range labels {
			if col, ok := index[label]; ok {
				wide[row][col]++
			}
		}
	}

	return wide
}
