// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver (CGO-based)
)

// columns are the dataset columns the pipeline consumes, in query order.
// Everything else in the source file is ignored.
var columns = []string{"title", "year", "duration", "rating", "votes", "budget", "genres", "languages"}

// LoadCSV reads the movie dataset from a CSV file using DuckDB's CSV
// reader. All columns are read as text; typing happens later in Clean so
// that the missing-data policy sees exactly what the file contained.
//
// Row IDs are assigned here, once, from the file order. They remain stable
// through every later filtering stage.
func LoadCSV(ctx context.Context, path string) ([]RawRecord, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer func() { _ = db.Close() }()

	// read_csv takes the path as part of the SQL text, so escape quotes.
	escaped := strings.ReplaceAll(path, "'", "''")
	query := fmt.Sprintf(
		"SELECT %s FROM read_csv('%s', header=true, all_varchar=true)",
		strings.Join(columns, ", "), escaped,
	)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	defer func() { _ = rows.Close() }()

	var records []RawRecord
	for rows.Next() {
		var title, year, duration, rating, votes, budget, genres, languages sql.NullString
		if err := rows.Scan(&title, &year, &duration, &rating, &votes, &budget, &genres, &languages); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(records), err)
		}

		records = append(records, RawRecord{
			ID:        len(records),
			Title:     title.String,
			Year:      year.String,
			Duration:  duration.String,
			Rating:    rating.String,
			Votes:     votes.String,
			Budget:    budget.String,
			Genres:    genres.String,
			Languages: languages.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate csv rows: %w", err)
	}

	return records, nil
}
