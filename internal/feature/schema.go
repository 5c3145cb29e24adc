// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

// Package feature owns the feature space shared by training and inference:
// the ordered column schema, the categorical expander, the standard scaler
// and the stratified train/test split.
//
// The schema is the load-bearing contract of the whole system. A feature
// vector built from a raw record at inference time must be dimensionally
// and semantically identical to the vectors the models were fitted on, and
// the only way to get one is through a Schema value. Neither the trainer
// nor the inference assembler re-derives column order on its own.
package feature

import (
	"sort"

	"github.com/tomtom215/cinescope/internal/dataset"
)

// NumericColumns are the fixed numeric feature names, in vector order.
// They always occupy the first positions of every feature vector, ahead of
// the genre and language blocks.
var NumericColumns = []string{"year", "duration", "votes", "budget"}

// Schema is the immutable ordered column list every feature vector must
// match: the 4 numeric columns, then the sorted genre vocabulary, then the
// sorted language vocabulary.
type Schema struct {
	genres    []string
	languages []string

	// Per-family label → absolute column index. The maps are separate
	// because a label may appear in both vocabularies ("Romance" is a
	// plausible genre and language) and each occurrence owns its own
	// column.
	genreIndex    map[string]int
	languageIndex map[string]int
}

// NewSchema builds a schema from genre and language vocabularies. The
// vocabularies are copied and sorted lexicographically, so callers can
// pass them in any order.
func NewSchema(genres, languages []string) *Schema {
	s := &Schema{
		genres:    sortedCopy(genres),
		languages: sortedCopy(languages),
	}

	s.genreIndex = make(map[string]int, len(s.genres))
	base := len(NumericColumns)
	for i, g := range s.genres {
		s.genreIndex[g] = base + i
	}

	s.languageIndex = make(map[string]int, len(s.languages))
	base += len(s.genres)
	for i, l := range s.languages {
		s.languageIndex[l] = base + i
	}

	return s
}

// BuildSchema derives the schema from the full cleaned corpus. This happens
// exactly once per training run; the resulting vocabulary is part of the
// trained artifact.
func BuildSchema(records []dataset.CleanRecord) *Schema {
	genreSet := make(map[string]struct{})
	langSet := make(map[string]struct{})
	for i := range records {
		for _, g := range records[i].Genres {
			genreSet[g] = struct{}{}
		}
		for _, l := range records[i].Languages {
			langSet[l] = struct{}{}
		}
	}

	return NewSchema(keys(genreSet), keys(langSet))
}

// Len returns the total number of feature columns.
func (s *Schema) Len() int {
	return len(NumericColumns) + len(s.genres) + len(s.languages)
}

// Columns returns the full ordered column list.
func (s *Schema) Columns() []string {
	cols := make([]string, 0, s.Len())
	cols = append(cols, NumericColumns...)
	cols = append(cols, s.genres...)
	cols = append(cols, s.languages...)
	return cols
}

// Genres returns the sorted genre vocabulary.
func (s *Schema) Genres() []string {
	return s.genres
}

// Languages returns the sorted language vocabulary.
func (s *Schema) Languages() []string {
	return s.languages
}

// GenreColumn returns the absolute column index for a genre label. Labels
// outside the vocabulary report ok=false; the caller leaves the vector
// untouched in that case rather than failing.
func (s *Schema) GenreColumn(label string) (int, bool) {
	i, ok := s.genreIndex[label]
	if !ok {
		return 0, false
	}
	return i, true
}

// LanguageColumn returns the absolute column index for a language label.
func (s *Schema) LanguageColumn(label string) (int, bool) {
	i, ok := s.languageIndex[label]
	if !ok {
		return 0, false
	}
	return i, true
}

// Vectorize builds the unscaled feature vector for one clean record. The
// numeric values land in their fixed positions; the genre and language
// blocks come from ExpandFamily, so repeated labels would sum, but
// cleaned records carry deduplicated sets and cells stay in {0, 1}.
func (s *Schema) Vectorize(rec *dataset.CleanRecord) []float64 {
	v := make([]float64, s.Len())
	v[0] = rec.Year
	v[1] = float64(rec.Duration)
	v[2] = rec.Votes
	v[3] = rec.Budget

	base := len(NumericColumns)
	copy(v[base:], ExpandFamily([][]string{rec.Genres}, s.genres)[0])
	copy(v[base+len(s.genres):], ExpandFamily([][]string{rec.Languages}, s.languages)[0])

	return v
}

func sortedCopy(labels []string) []string {
	out := make([]string, len(labels))
	copy(out, labels)
	sort.Strings(out)
	return out
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
