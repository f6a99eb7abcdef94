// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nurture/internal/logging"
	"github.com/tomtom215/nurture/internal/models"
	"github.com/tomtom215/nurture/internal/validation"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 64 << 10

// errEmptyBody is returned by decodeJSON for a request without a body.
var errEmptyBody = errors.New("request body is empty")

// respondJSON writes response with status. Responses are per-user state and
// never cached.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}, start time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     data,
		Metadata: newMetadata(r, start),
	})
}

// respondError writes an error envelope. err, when non-nil, is logged with
// the request ID and never sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}, errs ...error) {
	for _, err := range errs {
		if err == nil {
			continue
		}
		event := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.Err(err).Str("code", code).Int("status", status).Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   models.StatusError,
		Metadata: newMetadata(r, time.Time{}),
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func newMetadata(r *http.Request, start time.Time) models.Metadata {
	md := models.Metadata{
		Timestamp: time.Now().UTC(),
		RequestID: logging.RequestIDFromContext(r.Context()),
	}
	if !start.IsZero() {
		md.QueryTimeMS = time.Since(start).Milliseconds()
	}
	return md
}

// decodeJSON reads a single JSON object from the body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON body: trailing data")
	}
	return nil
}

// validateRequest runs the struct validator and converts its result.
func validateRequest(v interface{}) *models.APIError {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return nil
	}
	apiErr := verr.ToAPIError()
	return &models.APIError{Code: apiErr.Code, Message: apiErr.Message, Details: apiErr.Details}
}

// decodeAndValidate combines decodeJSON and validateRequest and writes the
// 400 response itself. It reports whether the handler should continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := decodeJSON(w, r, v); err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return false
	}
	if apiErr := validateRequest(v); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return false
	}
	return true
}
