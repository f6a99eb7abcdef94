// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/nurture/internal/advice"
	"github.com/tomtom215/nurture/internal/logging"
	"github.com/tomtom215/nurture/internal/metrics"
	"github.com/tomtom215/nurture/internal/models"
	"github.com/tomtom215/nurture/internal/recommend/profile"
)

// Assess handles POST /api/v1/assessments. It turns the caller's classifier
// outputs into advice and a risk flag, then recommends activities using the
// (consent-filtered) sentiment as the label.
//
//	{"stress_level": 2, "sentiment": "Negative", "consent": true,
//	 "check_in": {"sleep_hours": 5, "water_intake": 2, "physical_activity": 0}}
func (h *Handler) Assess(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.AssessmentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.CheckIn != nil {
		if apiErr := validateRequest(req.CheckIn); apiErr != nil {
			respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
			return
		}
	}

	assessment, err := advice.Assess(advice.Input{
		StressLevel: advice.StressLevel(req.StressLevel),
		Sentiment:   req.Sentiment,
		Consent:     req.Consent,
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	var m profile.Metrics
	switch {
	case len(req.Metrics) > 0:
		m = profile.Metrics(req.Metrics)
	case req.CheckIn != nil:
		m = profile.FromCheckIn(*req.CheckIn)
	}

	resp, err := h.recommend(r.Context(), m, assessment.Sentiment, req.TopK)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	metrics.RecordAssessment(assessment.Stress, assessment.RiskFlag)
	if assessment.RiskFlag {
		logging.Ctx(r.Context()).Warn().
			Str("stress", assessment.Stress).
			Msg("assessment raised risk flag")
	}

	respondSuccess(w, r, http.StatusOK, models.AssessmentResponse{
		Assessment:      assessment,
		Recommendations: resp.Items,
	}, start)
}
