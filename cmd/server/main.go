// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

// Package main is the entry point for the CineScope scoring server.
//
// The server loads a trained artifact bundle and serves single-movie
// success predictions over HTTP, with model discovery, vocabulary and
// health endpoints plus Prometheus metrics.
//
// # Startup Order
//
//  1. Configuration: Koanf v2 layered sources (env > file > defaults)
//  2. Logging: global zerolog configuration
//  3. Artifact store: load the configured bundle version (latest by
//     default) — a missing or corrupt bundle is fatal
//  4. Prediction service: rebuild schema, scaler and classifiers
//  5. HTTP server: Chi router with graceful shutdown on SIGINT/SIGTERM
//
// # Example Usage
//
//	export ARTIFACT_DIR=/data/artifacts
//	export HTTP_PORT=8675
//	./cinescope-server
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cinescope/internal/api"
	"github.com/tomtom215/cinescope/internal/artifact"
	"github.com/tomtom215/cinescope/internal/config"
	"github.com/tomtom215/cinescope/internal/logging"
	"github.com/tomtom215/cinescope/internal/metrics"
	"github.com/tomtom215/cinescope/internal/predict"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := artifact.NewStore(cfg.Artifact.Dir)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open artifact store")
	}

	bundle, meta, err := store.Load(ctx, cfg.Artifact.Version)
	if err != nil {
		logging.Fatal().Err(err).Str("dir", cfg.Artifact.Dir).Msg("Failed to load bundle")
	}
	metrics.RecordBundle(meta.Version, bundle.TrainedAt)

	svc, err := predict.NewService(bundle)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build prediction service")
	}

	logging.Info().
		Str("run_id", bundle.RunID).
		Int("version", meta.Version).
		Int("models", len(svc.Models())).
		Int("genres", len(bundle.Genres)).
		Int("languages", len(bundle.Languages)).
		Msg("Bundle loaded")

	router := api.NewRouter(api.Config{
		AllowedOrigins:  cfg.API.CORSOrigins,
		RateLimit:       cfg.API.RateLimit,
		RateLimitHealth: cfg.API.RateLimitHealth,
	}, api.NewHandlers(svc, meta.Version))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server starting")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logging.Info().Msg("Application stopped gracefully")
}
