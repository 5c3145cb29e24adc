// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package dataset

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/cinescope/internal/parse"
)

// Default categories assigned to rows whose genre or language list parses
// to empty. Keeping every row with at least one label in each family means
// the categorical expander never has to handle an empty set.
const (
	DefaultGenre    = "Unknown"
	DefaultLanguage = "English"
)

// parsedRow holds a raw row after field normalization but before the
// drop/impute steps. The ok flags distinguish "absent" from zero values.
type parsedRow struct {
	id        int
	title     string
	year      float64
	yearOK    bool
	duration  int
	durOK     bool
	rating    float64
	ratingOK  bool
	votes     float64
	votesOK   bool
	budget    float64
	budgetOK  bool
	genres    []string
	languages []string
}

// Clean applies the missing-data policy to raw rows, in this fixed order:
//
//  1. Drop rows where year, rating or parsed duration is absent. These
//     three define the label and the core numeric features, so they are
//     never imputed.
//  2. Absent vote counts become 0.
//  3. Absent budgets become the median of the budgets present AFTER step
//     1's drop. The order matters: the median is computed over the
//     filtered set, not the raw set.
//  4. Empty genre lists become {"Unknown"} and empty language lists become
//     {"English"}, applied only to rows still present.
//
// Duplicate labels inside one record's genre or language list are
// deduplicated here so the categorical expander always sees sets.
func Clean(raws []RawRecord) ([]CleanRecord, CleanStats) {
	stats := CleanStats{TotalRows: len(raws)}

	// Normalize fields and drop rows missing year/rating/duration.
	kept := make([]parsedRow, 0, len(raws))
	for _, raw := range raws {
		row := normalizeRow(raw)
		if !row.yearOK || !row.ratingOK || !row.durOK {
			stats.DroppedRows++
			continue
		}
		kept = append(kept, row)
	}
	stats.KeptRows = len(kept)

	// Median budget over the surviving rows only.
	budgets := make([]float64, 0, len(kept))
	for i := range kept {
		if kept[i].budgetOK {
			budgets = append(budgets, kept[i].budget)
		}
	}
	stats.BudgetMedian = median(budgets)

	records := make([]CleanRecord, 0, len(kept))
	for i := range kept {
		row := &kept[i]

		if !row.votesOK {
			row.votes = 0
			stats.ImputedVotes++
		}
		if !row.budgetOK {
			row.budget = stats.BudgetMedian
			stats.ImputedBudgets++
		}
		if len(row.genres) == 0 {
			row.genres = []string{DefaultGenre}
		}
		if len(row.languages) == 0 {
			row.languages = []string{DefaultLanguage}
		}

		records = append(records, CleanRecord{
			ID:        row.id,
			Title:     row.title,
			Year:      row.year,
			Duration:  row.duration,
			Rating:    row.rating,
			Votes:     row.votes,
			Budget:    row.budget,
			Genres:    row.genres,
			Languages: row.languages,
		})
	}

	return records, stats
}

// normalizeRow parses every raw field of one row. Parse failures are
// recorded as absent values, never as errors.
func normalizeRow(raw RawRecord) parsedRow {
	row := parsedRow{id: raw.ID, title: raw.Title}

	row.year, row.yearOK = parseNumber(raw.Year)
	row.rating, row.ratingOK = parseNumber(raw.Rating)
	row.duration, row.durOK = parse.ParseDuration(raw.Duration)
	row.votes, row.votesOK = parse.ParseMagnitude(raw.Votes)
	row.budget, row.budgetOK = parse.ParseMagnitude(raw.Budget)
	row.genres = dedupe(parse.ParseCategoryList(raw.Genres))
	row.languages = dedupe(parse.ParseCategoryList(raw.Languages))

	return row
}

// parseNumber parses a plain numeric field such as year or rating.
func parseNumber(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// dedupe removes duplicate labels while preserving first-seen order.
func dedupe(labels []string) []string {
	if len(labels) < 2 {
		return labels
	}

	seen := make(map[string]struct{}, len(labels))
	out := labels[:0]
	for _, label := range labels {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}

// median returns the median of values, or 0 for an empty slice.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
