// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package model

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// TreeConfig contains configuration for CART decision trees.
type TreeConfig struct {
	// MaxDepth limits tree depth. 0 means unlimited.
	MaxDepth int

	// MinSamplesSplit is the minimum number of rows a node needs to be
	// considered for splitting. Typical range: 2-20.
	MinSamplesSplit int

	// MaxFeatures is the number of candidate features evaluated per
	// split. 0 means all features. The forest sets this to
	// sqrt(columns) per tree.
	MaxFeatures int

	// Seed drives feature subsampling when MaxFeatures is set.
	Seed int64
}

// DefaultTreeConfig returns default decision tree configuration.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MaxFeatures:     0,
		Seed:            42,
	}
}

// TreeNode is one node of a fitted tree. Exported fields so fitted trees
// serialize with encoding/gob.
type TreeNode struct {
	// Leaf nodes carry only Label.
	Leaf  bool
	Label int

	// Internal nodes route vectors with v[Feature] <= Threshold to Left.
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
}

// TreeState is the serializable fitted state of a decision tree.
type TreeState struct {
	Root       *TreeNode
	Importance []float64
	Columns    int
}

// DecisionTree implements a CART classifier with Gini impurity splits.
type DecisionTree struct {
	BaseScorer
	config TreeConfig

	root       *TreeNode
	importance []float64
	columns    int
}

// NewDecisionTree creates a new decision tree classifier.
func NewDecisionTree(cfg TreeConfig) *DecisionTree {
	if cfg.MinSamplesSplit < 2 {
		cfg.MinSamplesSplit = 2
	}

	return &DecisionTree{
		BaseScorer: NewBaseScorer("Decision Tree", CapImportance),
		config:     cfg,
	}
}

// RestoreDecisionTree rebuilds a fitted tree from stored state.
func RestoreDecisionTree(state TreeState) *DecisionTree {
	t := NewDecisionTree(DefaultTreeConfig())
	t.root = state.Root
	t.importance = state.Importance
	t.columns = state.Columns
	t.markTrained()
	return t
}

// State returns the serializable fitted state.
func (t *DecisionTree) State() TreeState {
	t.acquirePredictLock()
	defer t.releasePredictLock()
	return TreeState{Root: t.root, Importance: t.importance, Columns: t.columns}
}

// Train fits the tree on scaled feature vectors and labels.
func (t *DecisionTree) Train(ctx context.Context, vectors [][]float64, labels []int) error {
	t.acquireTrainLock()
	defer t.releaseTrainLock()

	if ContextCancelled(ctx) {
		return ctx.Err()
	}
	if err := validateTrainingSet(vectors, labels); err != nil {
		return fmt.Errorf("train decision tree: %w", err)
	}

	t.columns = len(vectors[0])
	t.importance = make([]float64, t.columns)

	rows := make([]int, len(vectors))
	for i := range rows {
		rows[i] = i
	}

	b := &treeBuilder{
		vectors:    vectors,
		labels:     labels,
		config:     t.config,
		importance: t.importance,
		rng:        rand.New(rand.NewSource(t.config.Seed)), //nolint:gosec // feature subsampling, not cryptography
	}
	t.root = b.build(rows, 0)

	normalizeImportance(t.importance)
	t.markTrained()
	return nil
}

// Predict classifies one scaled feature vector.
func (t *DecisionTree) Predict(vector []float64) (int, error) {
	t.acquirePredictLock()
	defer t.releasePredictLock()

	if t.root == nil {
		return 0, ErrNotTrained
	}
	if len(vector) != t.columns {
		return 0, fmt.Errorf("predict: vector has %d columns, model expects %d", len(vector), t.columns)
	}

	node := t.root
	for !node.Leaf {
		if vector[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Label, nil
}

// Importances returns the normalized Gini importance per feature column.
func (t *DecisionTree) Importances() []float64 {
	t.acquirePredictLock()
	defer t.releasePredictLock()

	out := make([]float64, len(t.importance))
	copy(out, t.importance)
	return out
}

// treeBuilder carries the shared state of one recursive fit.
type treeBuilder struct {
	vectors    [][]float64
	labels     []int
	config     TreeConfig
	importance []float64
	rng        *rand.Rand
}

func (b *treeBuilder) build(rows []int, depth int) *TreeNode {
	if b.stopHere(rows, depth) {
		return b.leaf(rows)
	}

	feature, threshold, gain, ok := b.bestSplit(rows)
	if !ok {
		return b.leaf(rows)
	}

	var left, right []int
	for _, r := range rows {
		if b.vectors[r][feature] <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return b.leaf(rows)
	}

	// Importance accumulates the impurity decrease weighted by the
	// fraction of rows the node sees.
	b.importance[feature] += gain * float64(len(rows))

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      b.build(left, depth+1),
		Right:     b.build(right, depth+1),
	}
}

func (b *treeBuilder) stopHere(rows []int, depth int) bool {
	if len(rows) < b.config.MinSamplesSplit {
		return true
	}
	if b.config.MaxDepth > 0 && depth >= b.config.MaxDepth {
		return true
	}

	first := b.labels[rows[0]]
	for _, r := range rows[1:] {
		if b.labels[r] != first {
			return false
		}
	}
	return true
}

func (b *treeBuilder) leaf(rows []int) *TreeNode {
	labels := make([]int, len(rows))
	for i, r := range rows {
		labels[i] = b.labels[r]
	}
	return &TreeNode{Leaf: true, Label: majorityLabel(labels)}
}

// bestSplit evaluates candidate thresholds on the node's feature subset
// and returns the split with the largest Gini impurity decrease.
func (b *treeBuilder) bestSplit(rows []int) (feature int, threshold, gain float64, ok bool) {
	parentImpurity := b.gini(rows)
	bestGain := 0.0

	for _, f := range b.candidateFeatures() {
		sorted := make([]int, len(rows))
		copy(sorted, rows)
		sort.Slice(sorted, func(i, j int) bool {
			return b.vectors[sorted[i]][f] < b.vectors[sorted[j]][f]
		})

		// Running class counts on each side of the split point.
		leftCounts := map[int]int{}
		rightCounts := map[int]int{}
		for _, r := range sorted {
			rightCounts[b.labels[r]]++
		}

		n := float64(len(sorted))
		for i := 0; i < len(sorted)-1; i++ {
			r := sorted[i]
			leftCounts[b.labels[r]]++
			rightCounts[b.labels[r]]--

			cur := b.vectors[r][f]
			next := b.vectors[sorted[i+1]][f]
			if cur == next {
				continue
			}

			nl := float64(i + 1)
			nr := n - nl
			weighted := nl/n*giniFromCounts(leftCounts, nl) + nr/n*giniFromCounts(rightCounts, nr)
			g := parentImpurity - weighted
			if g > bestGain {
				bestGain = g
				feature = f
				threshold = (cur + next) / 2
			}
		}
	}

	if bestGain <= 0 {
		return 0, 0, 0, false
	}
	return feature, threshold, bestGain, true
}

// candidateFeatures returns the features evaluated at a node: all of
// them, or a random subset of MaxFeatures.
func (b *treeBuilder) candidateFeatures() []int {
	columns := len(b.vectors[0])
	all := make([]int, columns)
	for i := range all {
		all[i] = i
	}

	if b.config.MaxFeatures <= 0 || b.config.MaxFeatures >= columns {
		return all
	}

	b.rng.Shuffle(columns, func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	return all[:b.config.MaxFeatures]
}

func (b *treeBuilder) gini(rows []int) float64 {
	counts := map[int]int{}
	for _, r := range rows {
		counts[b.labels[r]]++
	}
	return giniFromCounts(counts, float64(len(rows)))
}

func giniFromCounts(counts map[int]int, total float64) float64 {
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := float64(c) / total
		impurity -= p * p
	}
	return impurity
}

// normalizeImportance rescales accumulated impurity decreases to sum to
// 1. A tree with no splits leaves all weights at zero.
func normalizeImportance(importance []float64) {
	var total float64
	for _, v := range importance {
		total += v
	}
	if total == 0 || math.IsNaN(total) {
		return
	}
	for i := range importance {
		importance[i] /= total
	}
}
