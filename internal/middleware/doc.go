// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

// Package middleware provides HTTP middleware shared by the API router.
//
//   - RequestID: propagates or generates X-Request-ID into the logging context
//   - PrometheusMetrics: request count, latency and in-flight gauge per chi route
//   - AccessLog: per-request debug entry, warning above a latency threshold
//
// All three are plain func(http.Handler) http.Handler and are mounted with
// chi's Use.
package middleware
