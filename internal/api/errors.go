// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/nurture/internal/advice"
	"github.com/tomtom215/nurture/internal/models"
	"github.com/tomtom215/nurture/internal/recommend"
	"github.com/tomtom215/nurture/internal/recommend/catalog"
	"github.com/tomtom215/nurture/internal/recommend/storage"
)

// errorMapping maps a sentinel error to a response.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
	reason  string
}

// errorMappings is checked in order with errors.Is.
var errorMappings = []errorMapping{
	{storage.ErrInvalidInteraction, http.StatusBadRequest, models.ErrCodeValidation, "", "invalid"},
	{recommend.ErrInvalidK, http.StatusBadRequest, models.ErrCodeValidation, "", "invalid"},
	{advice.ErrInvalidStressLevel, http.StatusBadRequest, models.ErrCodeValidation, "", "invalid"},
	{recommend.ErrUnknownActivity, http.StatusNotFound, models.ErrCodeNotFound, "", "unknown_item"},
	{catalog.ErrActivityNotFound, http.StatusNotFound, models.ErrCodeNotFound, "", "unknown_item"},
	{storage.ErrCircuitOpen, http.StatusServiceUnavailable, models.ErrCodeServiceUnavailable, "Interaction log temporarily unavailable", "circuit_open"},
	{storage.ErrLogClosed, http.StatusServiceUnavailable, models.ErrCodeServiceUnavailable, "Interaction log unavailable", "log_closed"},
	{recommend.ErrNoInteractionLog, http.StatusServiceUnavailable, models.ErrCodeServiceUnavailable, "Interaction log not configured", "no_log"},
	{context.DeadlineExceeded, http.StatusServiceUnavailable, models.ErrCodeServiceUnavailable, "Request timed out", "timeout"},
}

// classifyError returns the response for err. Client errors echo the error
// text; server errors use a fixed message.
func classifyError(err error) (status int, code, message, reason string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			msg := m.message
			if msg == "" {
				msg = err.Error()
			}
			return m.status, m.code, msg, m.reason
		}
	}
	return http.StatusInternalServerError, models.ErrCodeInternal, "Internal server error", "internal"
}

// respondEngineError writes the response for an engine, storage or advice error.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message, _ := classifyError(err)
	respondError(w, r, status, code, message, nil, err)
}
