// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package api

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/cinescope/internal/logging"
	"github.com/tomtom215/cinescope/internal/metrics"
	"github.com/tomtom215/cinescope/internal/models"
	"github.com/tomtom215/cinescope/internal/predict"
	"github.com/tomtom215/cinescope/internal/validation"
)

// maxRequestBody caps prediction request bodies at 64 KiB.
const maxRequestBody = 64 << 10

// Handlers serves the scoring API from one loaded prediction service.
type Handlers struct {
	svc           *predict.Service
	bundleVersion int
	startedAt     time.Time
}

// NewHandlers creates the API handlers.
func NewHandlers(svc *predict.Service, bundleVersion int) *Handlers {
	return &Handlers{
		svc:           svc,
		bundleVersion: bundleVersion,
		startedAt:     time.Now(),
	}
}

// Predict handles POST /api/v1/predict.
func (h *Handlers) Predict(w http.ResponseWriter, r *http.Request) {
	var req predict.Request
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Request body is not valid JSON", err)
		return
	}

	started := time.Now()
	resp, err := h.svc.Predict(&req)
	if err != nil {
		h.predictError(w, r, &req, err)
		return
	}

	elapsed := time.Since(started)
	metrics.RecordPrediction(resp.Model, resp.Success, elapsed)
	logging.Ctx(r.Context()).Debug().
		Str("model", resp.Model).
		Bool("success", resp.Success).
		Dur("duration", elapsed).
		Msg("Prediction served")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp:     time.Now(),
			PredictTimeMS: elapsed.Milliseconds(),
		},
	})
}

// predictError maps prediction failures onto API error responses.
func (h *Handlers) predictError(w http.ResponseWriter, r *http.Request, req *predict.Request, err error) {
	var verr *validation.RequestValidationError
	switch {
	case errors.As(err, &verr):
		metrics.RecordPredictionError(req.Model, "validation")
		apiErr := verr.ToAPIError()
		respondErrorDetails(w, http.StatusBadRequest, &models.APIError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		})
	case errors.Is(err, predict.ErrUnknownModel):
		metrics.RecordPredictionError(req.Model, "unknown_model")
		respondError(w, http.StatusNotFound, "UNKNOWN_MODEL", "Requested model is not loaded", nil)
	default:
		metrics.RecordPredictionError(req.Model, "internal")
		logging.Ctx(r.Context()).Error().Err(err).Msg("Prediction failed")
		respondError(w, http.StatusInternalServerError, "PREDICTION_ERROR", "Prediction failed", err)
	}
}

// Models handles GET /api/v1/models.
func (h *Handlers) Models(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"models": h.svc.Models(),
			"run_id": h.svc.RunID(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// Vocabulary handles GET /api/v1/vocabulary.
func (h *Handlers) Vocabulary(w http.ResponseWriter, r *http.Request) {
	genres, languages := h.svc.Vocabulary()
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"genres":    genres,
			"languages": languages,
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// Health handles GET /api/v1/health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"status":         "healthy",
			"run_id":         h.svc.RunID(),
			"bundle_version": h.bundleVersion,
			"models":         len(h.svc.Models()),
			"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthLive handles GET /api/v1/health/live. The process is alive.
func (h *Handlers) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "alive"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady handles GET /api/v1/health/ready. Ready means a bundle is
// loaded and every model reports trained.
func (h *Handlers) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil || len(h.svc.Models()) == 0 {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "No model bundle loaded", nil)
		return
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "ready"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
