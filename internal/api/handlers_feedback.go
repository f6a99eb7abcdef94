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
	"github.com/tomtom215/nurture/internal/recommend/storage"
)

// Feedback handles POST /api/v1/feedback. The interaction is durably
// appended before popularity changes; a 201 means both happened.
//
//	{"user_id": "u1", "item_id": "a4", "feedback": 1}
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.FeedbackRequest
	if !decodeAndValidate(w, r, &req) {
		metrics.RecordInteractionRejected("invalid")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	recordedAt := time.Now().UTC()
	count, err := h.engine.LogInteraction(ctx, storage.Interaction{
		UserID:    req.UserID,
		ItemID:    req.ItemID,
		Feedback:  req.Feedback,
		Timestamp: recordedAt,
	})
	if err != nil {
		status, code, message, reason := classifyError(err)
		metrics.RecordInteractionRejected(reason)
		respondError(w, r, status, code, message, nil, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("user", logging.SanitizeUserID(req.UserID)).
		Str("item_id", req.ItemID).
		Float64("feedback", req.Feedback).
		Int64("count", count).
		Msg("feedback logged")

	respondSuccess(w, r, http.StatusCreated, models.FeedbackResponse{
		ItemID:     req.ItemID,
		Count:      count,
		RecordedAt: recordedAt,
	}, start)
}

// Popularity handles GET /api/v1/popularity. Items are ordered by count,
// then item id.
func (h *Handler) Popularity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	snap := h.engine.Popularity()

	ranked := snap.Ranked()
	items := make([]models.PopularityEntry, len(ranked))
	for i, rc := range ranked {
		e := models.PopularityEntry{
			ItemID: rc.ItemID,
			Count:  rc.Count,
			Bonus:  snap.Bonus(rc.ItemID),
		}
		if h.summaries != nil {
			if s, ok := h.summaries.Summary(rc.ItemID); ok {
				e.Positive, e.Negative, e.Neutral = s.Positive, s.Negative, s.Neutral
			}
		}
		items[i] = e
	}

	respondSuccess(w, r, http.StatusOK, models.PopularityResponse{
		Total: snap.Total(),
		Items: items,
	}, start)
}
