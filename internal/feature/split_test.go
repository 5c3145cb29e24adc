// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package feature

import (
	"math"
	"reflect"
	"sort"
	"testing"
)

func TestStratifiedSplitPreservesClassRatio(t *testing.T) {
	// 90 rows, 40 positive. A 20% split must hold out 18 rows and keep
	// the positive ratio within one row of the corpus ratio.
	labels := make([]int, 90)
	for i := 0; i < 40; i++ {
		labels[i] = 1
	}

	train, test, err := StratifiedSplit(labels, 0.2, 42)
	if err != nil {
		t.Fatalf("StratifiedSplit() error = %v", err)
	}

	if len(test) != 18 {
		t.Errorf("len(test) = %d, want 18", len(test))
	}
	if len(train)+len(test) != len(labels) {
		t.Errorf("partitions cover %d rows, want %d", len(train)+len(test), len(labels))
	}

	positives := 0
	for _, pos := range test {
		positives += labels[pos]
	}
	wantPositives := 0.2 * 40
	if math.Abs(float64(positives)-wantPositives) > 1 {
		t.Errorf("test positives = %d, want %.0f ±1", positives, wantPositives)
	}
}

func TestStratifiedSplitPartition(t *testing.T) {
	labels := []int{1, 0, 1, 0, 1, 0, 1, 0, 1, 0}

	train, test, err := StratifiedSplit(labels, 0.2, 7)
	if err != nil {
		t.Fatalf("StratifiedSplit() error = %v", err)
	}

	seen := make(map[int]int)
	for _, pos := range train {
		seen[pos]++
	}
	for _, pos := range test {
		seen[pos]++
	}
	if len(seen) != len(labels) {
		t.Fatalf("partitions reference %d distinct rows, want %d", len(seen), len(labels))
	}
	for pos, count := range seen {
		if count != 1 {
			t.Errorf("row %d appears %d times across partitions", pos, count)
		}
	}
}

func TestStratifiedSplitDeterministic(t *testing.T) {
	labels := []int{1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0}

	train1, test1, err := StratifiedSplit(labels, 0.25, 42)
	if err != nil {
		t.Fatalf("StratifiedSplit() error = %v", err)
	}
	train2, test2, err := StratifiedSplit(labels, 0.25, 42)
	if err != nil {
		t.Fatalf("StratifiedSplit() error = %v", err)
	}

	sort.Ints(train1)
	sort.Ints(train2)
	sort.Ints(test1)
	sort.Ints(test2)
	if !reflect.DeepEqual(train1, train2) || !reflect.DeepEqual(test1, test2) {
		t.Error("same seed produced different splits")
	}
}

func TestStratifiedSplitInvalidInput(t *testing.T) {
	if _, _, err := StratifiedSplit(nil, 0.2, 1); err == nil {
		t.Error("empty labels: expected error")
	}
	if _, _, err := StratifiedSplit([]int{0, 1}, 0, 1); err == nil {
		t.Error("zero fraction: expected error")
	}
	if _, _, err := StratifiedSplit([]int{0, 1}, 1, 1); err == nil {
		t.Error("full fraction: expected error")
	}
}
