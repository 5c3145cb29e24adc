// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8675 {
		t.Errorf("Server.Port = %d, want 8675", cfg.Server.Port)
	}
	if cfg.Training.TestFraction != 0.2 {
		t.Errorf("Training.TestFraction = %f, want 0.2", cfg.Training.TestFraction)
	}
	if cfg.Training.Seed != 42 {
		t.Errorf("Training.Seed = %d, want 42", cfg.Training.Seed)
	}
	if cfg.Training.ForestTrees != 100 {
		t.Errorf("Training.ForestTrees = %d, want 100", cfg.Training.ForestTrees)
	}
	if cfg.Training.KNNNeighbors != 5 {
		t.Errorf("Training.KNNNeighbors = %d, want 5", cfg.Training.KNNNeighbors)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TRAINING_FOREST_TREES", "50")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Training.ForestTrees != 50 {
		t.Errorf("Training.ForestTrees = %d, want 50", cfg.Training.ForestTrees)
	}
	if len(cfg.API.CORSOrigins) != 2 || cfg.API.CORSOrigins[0] != "https://a.example" {
		t.Errorf("API.CORSOrigins = %v, want two trimmed origins", cfg.API.CORSOrigins)
	}
}

func TestLoadConfigFile(t *testing.T) {
	yaml := `
server:
  port: 7777
training:
  csv_path: /tmp/movies.csv
  test_fraction: 0.25
artifact:
  dir: /tmp/artifacts
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want 7777", cfg.Server.Port)
	}
	if cfg.Training.CSVPath != "/tmp/movies.csv" {
		t.Errorf("Training.CSVPath = %q", cfg.Training.CSVPath)
	}
	if cfg.Training.TestFraction != 0.25 {
		t.Errorf("Training.TestFraction = %f, want 0.25", cfg.Training.TestFraction)
	}
	// Unset values keep their defaults.
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Server.Timeout = %v, want default 30s", cfg.Server.Timeout)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	yaml := "server:\n  port: 7777\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("Server.Port = %d, want env to win over file", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "bad timeout", mutate: func(c *Config) { c.Server.Timeout = 0 }},
		{name: "bad test fraction", mutate: func(c *Config) { c.Training.TestFraction = 1.5 }},
		{name: "zero trees", mutate: func(c *Config) { c.Training.ForestTrees = 0 }},
		{name: "zero neighbors", mutate: func(c *Config) { c.Training.KNNNeighbors = 0 }},
		{name: "empty artifact dir", mutate: func(c *Config) { c.Artifact.Dir = "" }},
		{name: "zero keep versions", mutate: func(c *Config) { c.Artifact.KeepVersions = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
