// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

// Package metrics provides Prometheus instrumentation for the scoring
// service: prediction throughput and latency per model, API endpoint
// latency, and the loaded bundle version.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Prediction Metrics
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total number of predictions served",
		},
		[]string{"model", "outcome"},
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prediction_duration_seconds",
			Help:    "Model scoring duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"model"},
	)

	PredictionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prediction_errors_total",
			Help: "Total number of failed prediction requests",
		},
		[]string{"model", "error_type"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// Bundle Metrics
	BundleVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "artifact_bundle_version",
			Help: "Version of the currently loaded artifact bundle",
		},
	)

	BundleTrainedAt = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "artifact_bundle_trained_at_seconds",
			Help: "Unix timestamp of the loaded bundle's training run",
		},
	)
)

// RecordPrediction records one served prediction.
func RecordPrediction(model string, success bool, duration time.Duration) {
	outcome := "flop"
	if success {
		outcome = "success"
	}
	PredictionsTotal.WithLabelValues(model, outcome).Inc()
	PredictionDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordPredictionError records one failed prediction request.
func RecordPredictionError(model, errorType string) {
	PredictionErrors.WithLabelValues(model, errorType).Inc()
}

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	code := strconv.Itoa(statusCode)
	APIRequestsTotal.WithLabelValues(method, endpoint, code).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordBundle records the loaded bundle's version and training time.
func RecordBundle(version int, trainedAt time.Time) {
	BundleVersion.Set(float64(version))
	BundleTrainedAt.Set(float64(trainedAt.Unix()))
}
