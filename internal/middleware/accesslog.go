// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/nurture/internal/logging"
)

// DefaultSlowRequestThreshold is used when AccessLog gets a zero threshold.
const DefaultSlowRequestThreshold = time.Second

// AccessLog writes one debug entry per request and a warning for requests
// slower than threshold. It must run inside RequestID so entries carry the
// request_id.
func AccessLog(threshold time.Duration) func(http.Handler) http.Handler {
	if threshold <= 0 {
		threshold = DefaultSlowRequestThreshold
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			elapsed := time.Since(start)

			logger := logging.Ctx(r.Context())
			event := logger.Debug()
			msg := "request"
			if elapsed > threshold {
				event = logger.Warn().Dur("threshold", threshold)
				msg = "slow request"
			}
			event.
				Str("method", r.Method).
				Str("route", routePattern(r)).
				Int("status", sw.status).
				Dur("duration", elapsed).
				Msg(msg)
		})
	}
}
