// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package artifact

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const bundleName = "bundle"

// Metadata describes one stored bundle version.
type Metadata struct {
	// RunID is the training run that produced the bundle.
	RunID string `json:"run_id"`

	// Version is monotonically increasing per store.
	Version int `json:"version"`

	// TrainedAt is when the run finished; SavedAt when it hit disk.
	TrainedAt time.Time `json:"trained_at"`
	SavedAt   time.Time `json:"saved_at"`

	// RowCount is the number of cleaned rows the run trained on.
	RowCount int `json:"row_count"`

	// FeatureCount is the schema width.
	FeatureCount int `json:"feature_count"`

	// Checksum is the SHA-256 checksum of the uncompressed bundle.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed bundle size.
	SizeBytes int64 `json:"size_bytes"`

	// TrainingDurationMS is how long the run took.
	TrainingDurationMS int64 `json:"training_duration_ms"`
}

// storedFile is the on-disk format for bundle files.
type storedFile struct {
	Metadata       Metadata
	CompressedData []byte
}

// Store manages bundle persistence in one directory.
type Store struct {
	baseDir string
	mu      sync.RWMutex

	// latest tracks the highest version on disk.
	latest int
}

// NewStore creates a bundle store at the given directory, scanning it
// for existing versions.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}

	s := &Store{baseDir: baseDir}
	if err := s.scan(); err != nil {
		return nil, fmt.Errorf("scan existing bundles: %w", err)
	}
	return s, nil
}

func (s *Store) scan() error {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		var version int
		if _, err := fmt.Sscanf(entry.Name(), bundleName+"_v%d.gob.gz", &version); err != nil {
			continue
		}
		if version > s.latest {
			s.latest = version
		}
	}
	return nil
}

// Save stores a bundle under the next version and returns its metadata.
func (s *Store) Save(ctx context.Context, bundle *Bundle, meta Metadata) (*Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(bundle); err != nil {
		return nil, fmt.Errorf("encode bundle: %w", err)
	}
	raw := buf.Bytes()

	hash := sha256.Sum256(raw)
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw); err != nil {
		return nil, fmt.Errorf("compress bundle: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return nil, fmt.Errorf("finalize compression: %w", err)
	}

	version := s.latest + 1
	meta.RunID = bundle.RunID
	meta.Version = version
	meta.TrainedAt = bundle.TrainedAt
	meta.SavedAt = time.Now()
	meta.SizeBytes = int64(compressed.Len())

	f, err := os.Create(s.bundlePath(version)) //nolint:gosec // path is store-local
	if err != nil {
		return nil, fmt.Errorf("create bundle file: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after write is logged via return

	sf := storedFile{Metadata: meta, CompressedData: compressed.Bytes()}
	if err := gob.NewEncoder(f).Encode(sf); err != nil {
		return nil, fmt.Errorf("write bundle file: %w", err)
	}

	s.latest = version
	return &meta, nil
}

// Load loads a bundle by version. Version 0 loads the latest.
func (s *Store) Load(ctx context.Context, version int) (*Bundle, *Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	if version == 0 {
		if s.latest == 0 {
			return nil, nil, fmt.Errorf("no bundle found in %s", s.baseDir)
		}
		version = s.latest
	}

	f, err := os.Open(s.bundlePath(version)) //nolint:gosec // path is store-local
	if err != nil {
		return nil, nil, fmt.Errorf("open bundle file: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	var sf storedFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, nil, fmt.Errorf("read bundle file: %w", err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, nil, fmt.Errorf("decompress bundle: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, nil, fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(hash[:]); checksum != sf.Metadata.Checksum {
		return nil, nil, fmt.Errorf("checksum mismatch: expected %s, got %s", sf.Metadata.Checksum, checksum)
	}

	var bundle Bundle
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&bundle); err != nil {
		return nil, nil, fmt.Errorf("decode bundle: %w", err)
	}
	if err := bundle.Validate(); err != nil {
		return nil, nil, fmt.Errorf("validate bundle: %w", err)
	}

	return &bundle, &sf.Metadata, nil
}

// LatestVersion returns the highest stored version, 0 when the store is
// empty.
func (s *Store) LatestVersion() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Prune removes old bundle versions, keeping the latest N.
func (s *Store) Prune(ctx context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if keep < 1 {
		keep = 1
	}

	for v := s.latest - keep; v >= 1; v-- {
		path := s.bundlePath(v)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = os.Remove(path) //nolint:errcheck // best-effort cleanup of old versions
	}
	return nil
}

func (s *Store) bundlePath(version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_v%d.gob.gz", bundleName, version))
}
