// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

// Package dataset loads raw movie records and applies the missing-data
// policy that turns them into fully-typed rows for feature building.
package dataset

// RawRecord is one movie row exactly as it appears in the source dataset,
// before any normalization. Every field except ID is free text.
//
// ID is a stable identifier assigned once at ingest and carried through all
// later filtering stages; no component may rely on a record's position in a
// slice after cleaning.
type RawRecord struct {
	ID        int
	Title     string
	Year      string
	Duration  string
	Rating    string
	Votes     string
	Budget    string
	Genres    string
	Languages string
}

// CleanRecord is a movie row that has passed the missing-data policy.
// Year, Duration and Rating are always present; Votes and Budget are
// imputed; Genres and Languages are non-empty deduplicated label sets.
type CleanRecord struct {
	ID        int
	Title     string
	Year      float64
	Duration  int
	Rating    float64
	Votes     float64
	Budget    float64
	Genres    []string
	Languages []string
}

// CleanStats summarizes what the missing-data policy did to a dataset.
type CleanStats struct {
	// TotalRows is the number of raw rows seen.
	TotalRows int

	// KeptRows is the number of rows surviving the drop step.
	KeptRows int

	// DroppedRows is the number of rows dropped for a missing year,
	// rating or duration.
	DroppedRows int

	// ImputedVotes counts rows whose vote count was defaulted to 0.
	ImputedVotes int

	// ImputedBudgets counts rows whose budget was set to the median.
	ImputedBudgets int

	// BudgetMedian is the median used for budget imputation, computed
	// over the rows that survived the drop step.
	BudgetMedian float64
}
