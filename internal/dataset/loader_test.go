// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCSV(t *testing.T) {
	csv := `title,year,duration,rating,votes,budget,genres,languages,extra
The First,2001,2h 10m,7.8,1.2M,$30M,"['Drama', 'Crime']",['English'],ignored
The Second,,90m,5.5,250K,N/A,[],['French'],ignored
`
	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte(csv), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	records, err := LoadCSV(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	if first.ID != 0 || first.Title != "The First" {
		t.Errorf("record 0 = %+v, want ID 0 / title The First", first)
	}
	if first.Genres != "['Drama', 'Crime']" {
		t.Errorf("Genres = %q, want raw list text", first.Genres)
	}

	second := records[1]
	if second.ID != 1 {
		t.Errorf("record 1 ID = %d, want 1", second.ID)
	}
	if second.Year != "" {
		t.Errorf("record 1 Year = %q, want empty", second.Year)
	}
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("LoadCSV() on missing file: expected error")
	}
}
