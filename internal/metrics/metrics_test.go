// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordPrediction(t *testing.T) {
	before := testutil.ToFloat64(PredictionsTotal.WithLabelValues("KNN", "success"))
	RecordPrediction("KNN", true, 2*time.Millisecond)
	after := testutil.ToFloat64(PredictionsTotal.WithLabelValues("KNN", "success"))

	if after != before+1 {
		t.Errorf("predictions_total = %f, want %f", after, before+1)
	}
}

func TestRecordPredictionOutcomeLabels(t *testing.T) {
	before := testutil.ToFloat64(PredictionsTotal.WithLabelValues("Decision Tree", "flop"))
	RecordPrediction("Decision Tree", false, time.Millisecond)
	after := testutil.ToFloat64(PredictionsTotal.WithLabelValues("Decision Tree", "flop"))

	if after != before+1 {
		t.Errorf("flop outcome count = %f, want %f", after, before+1)
	}
}

func TestRecordPredictionError(t *testing.T) {
	before := testutil.ToFloat64(PredictionErrors.WithLabelValues("KNN", "validation"))
	RecordPredictionError("KNN", "validation")
	after := testutil.ToFloat64(PredictionErrors.WithLabelValues("KNN", "validation"))

	if after != before+1 {
		t.Errorf("prediction_errors_total = %f, want %f", after, before+1)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/predict", "200"))
	RecordAPIRequest("POST", "/api/v1/predict", 200, 5*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/predict", "200"))

	if after != before+1 {
		t.Errorf("api_requests_total = %f, want %f", after, before+1)
	}
}

func TestRecordBundle(t *testing.T) {
	trainedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	RecordBundle(7, trainedAt)

	if got := testutil.ToFloat64(BundleVersion); got != 7 {
		t.Errorf("artifact_bundle_version = %f, want 7", got)
	}
	if got := testutil.ToFloat64(BundleTrainedAt); got != float64(trainedAt.Unix()) {
		t.Errorf("artifact_bundle_trained_at_seconds = %f, want %d", got, trainedAt.Unix())
	}
}
