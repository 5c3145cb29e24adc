// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

// Package config loads application configuration with layered sources:
// built-in defaults, an optional YAML file, then environment variables.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for both the trainer and the
// scoring server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Training TrainingConfig `koanf:"training"`
	Artifact ArtifactConfig `koanf:"artifact"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// TrainingConfig configures the offline pipeline.
type TrainingConfig struct {
	// CSVPath is the raw movie corpus.
	CSVPath string `koanf:"csv_path"`

	// TestFraction of rows held out for evaluation.
	TestFraction float64 `koanf:"test_fraction"`

	// Seed makes runs reproducible.
	Seed int64 `koanf:"seed"`

	// ForestTrees is the random forest ensemble size.
	ForestTrees int `koanf:"forest_trees"`

	// TreeMaxDepth limits tree depth, 0 for unlimited.
	TreeMaxDepth int `koanf:"tree_max_depth"`

	// KNNNeighbors is the K for the nearest-neighbors classifier.
	KNNNeighbors int `koanf:"knn_neighbors"`
}

// ArtifactConfig configures bundle storage.
type ArtifactConfig struct {
	// Dir is where trained bundles live.
	Dir string `koanf:"dir"`

	// KeepVersions old bundles are retained after a new save.
	KeepVersions int `koanf:"keep_versions"`

	// Version selects the bundle to serve; 0 means latest.
	Version int `koanf:"version"`
}

// APIConfig configures the HTTP surface.
type APIConfig struct {
	CORSOrigins     []string `koanf:"cors_origins"`
	RateLimit       int      `koanf:"rate_limit"`
	RateLimitHealth int      `koanf:"rate_limit_health"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the built-in defaults, applied before the
// config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8675,
			Timeout: 30 * time.Second,
		},
		Training: TrainingConfig{
			CSVPath:      "/data/movies.csv",
			TestFraction: 0.2,
			Seed:         42,
			ForestTrees:  100,
			TreeMaxDepth: 0,
			KNNNeighbors: 5,
		},
		Artifact: ArtifactConfig{
			Dir:          "/data/artifacts",
			KeepVersions: 3,
			Version:      0,
		},
		API: APIConfig{
			CORSOrigins:     []string{},
			RateLimit:       300,
			RateLimitHealth: 1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks configuration invariants shared by both binaries.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d outside [1,65535]", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive")
	}
	if c.Training.TestFraction <= 0 || c.Training.TestFraction >= 1 {
		return fmt.Errorf("training.test_fraction %f outside (0,1)", c.Training.TestFraction)
	}
	if c.Training.ForestTrees < 1 {
		return fmt.Errorf("training.forest_trees must be at least 1")
	}
	if c.Training.KNNNeighbors < 1 {
		return fmt.Errorf("training.knn_neighbors must be at least 1")
	}
	if c.Artifact.Dir == "" {
		return fmt.Errorf("artifact.dir must be set")
	}
	if c.Artifact.KeepVersions < 1 {
		return fmt.Errorf("artifact.keep_versions must be at least 1")
	}
	return nil
}
