// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/nurture/internal/logging"
	"github.com/tomtom215/nurture/internal/metrics"
	"github.com/tomtom215/nurture/internal/models"
	"github.com/tomtom215/nurture/internal/recommend"
	"github.com/tomtom215/nurture/internal/recommend/profile"
)

// Recommend handles POST /api/v1/recommendations.
//
//	{"metrics": {"sleep_quality": 3, "anxiety_level": 14}, "label": "anxious", "top_k": 5}
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecommendationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.recommend(r.Context(), profile.Metrics(req.Metrics), req.Label, req.TopK)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("label", logging.SanitizeLabel(req.Label)).
		Str("signal", resp.Metadata.Signal).
		Int("returned", len(resp.Items)).
		Msg("recommendations served")

	respondSuccess(w, r, http.StatusOK, resp, start)
}

// recommend runs the engine under the handler timeout and records metrics.
func (h *Handler) recommend(ctx context.Context, m profile.Metrics, label string, k int) (*recommend.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	resp, err := h.engine.Recommend(ctx, recommend.Request{
		Metrics:   m,
		Label:     label,
		K:         k,
		RequestID: logging.RequestIDFromContext(ctx),
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordRecommendation(resp.Metadata.Signal, len(resp.Items), time.Since(start))
	return resp, nil
}
