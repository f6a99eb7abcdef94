// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope returned by every JSON endpoint.
//
//	{
//	  "status": "success",
//	  "data": {"items": [...]},
//	  "metadata": {"timestamp": "2026-03-01T09:30:00Z", "request_id": "...", "query_time_ms": 1}
//	}
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {"code": "NOT_FOUND", "message": "unknown activity: a99"},
//	  "metadata": {"timestamp": "2026-03-01T09:30:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata accompanies every response.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is the error body of a failed request.
//
// Codes:
//   - VALIDATION_ERROR: malformed or out-of-range input (400)
//   - NOT_FOUND: unknown activity (404)
//   - RATE_LIMIT_EXCEEDED: too many requests (429)
//   - SERVICE_UNAVAILABLE: interaction log circuit open or not configured (503)
//   - INTERNAL_ERROR: anything else (500)
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeInternal           = "INTERNAL_ERROR"
)
