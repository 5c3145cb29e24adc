// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package feature

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// StratifiedSplit partitions row positions 0..len(labels)-1 into train and
// test sets, preserving the per-class label ratio. The test set size is
// round(len(labels) * testFraction), allocated across classes by largest
// remainder. The split is deterministic for a given seed.
func StratifiedSplit(labels []int, testFraction float64, seed int64) (train, test []int, err error) {
	n := len(labels)
	if n == 0 {
		return nil, nil, fmt.Errorf("stratified split: no rows")
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("stratified split: test fraction %f outside (0,1)", testFraction)
	}

	// Group positions by class, classes in ascending label order for
	// deterministic iteration.
	byClass := make(map[int][]int)
	for pos, label := range labels {
		byClass[label] = append(byClass[label], pos)
	}
	classes := make([]int, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Ints(classes)

	testTotal := int(math.Round(float64(n) * testFraction))
	counts := allocateTestCounts(classes, byClass, testFraction, testTotal)

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic shuffling, not cryptography
	for _, c := range classes {
		positions := byClass[c]
		rng.Shuffle(len(positions), func(i, j int) {
			positions[i], positions[j] = positions[j], positions[i]
		})

		k := counts[c]
		test = append(test, positions[:k]...)
		train = append(train, positions[k:]...)
	}

	return train, test, nil
}

// allocateTestCounts distributes the total test-row budget across classes
// proportionally, handing leftover rows to the classes with the largest
// fractional remainders.
func allocateTestCounts(classes []int, byClass map[int][]int, frac float64, total int) map[int]int {
	type remainder struct {
		class int
		frac  float64
	}

	counts := make(map[int]int, len(classes))
	remainders := make([]remainder, 0, len(classes))
	allocated := 0
	for _, c := range classes {
		exact := frac * float64(len(byClass[c]))
		base := int(math.Floor(exact))
		counts[c] = base
		allocated += base
		remainders = append(remainders, remainder{class: c, frac: exact - float64(base)})
	}

	sort.Slice(remainders, func(i, j int) bool {
		if remainders[i].frac != remainders[j].frac {
			return remainders[i].frac > remainders[j].frac
		}
		return remainders[i].class < remainders[j].class
	})

	for i := 0; allocated < total && i < len(remainders); i++ {
		c := remainders[i].class
		if counts[c] < len(byClass[c]) {
			counts[c]++
			allocated++
		}
	}

	return counts
}
