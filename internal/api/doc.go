// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

/*
Package api serves the wellness recommender over HTTP with chi.

# Endpoints

	GET  /health                    liveness, catalog size, interaction log state
	GET  /metrics                   Prometheus exposition
	GET  /api/v1/activities         catalog with tag vocabulary
	GET  /api/v1/activities/{id}    one activity
	POST /api/v1/recommendations    {metrics, label, top_k}
	POST /api/v1/feedback           {user_id, item_id, feedback}
	GET  /api/v1/popularity         counts, bonus and feedback polarity per activity
	POST /api/v1/assessments        {stress_level, sentiment, consent, metrics | check_in, top_k}

Every response uses the models.APIResponse envelope. Request bodies are
limited to 64 KiB, unknown fields are rejected and struct validation runs
before any engine call.

# Middleware

Global: request ID, RealIP, Recoverer, CORS. Under /api/v1: httprate
limiting, Prometheus request metrics and the access log.

# Errors

	VALIDATION_ERROR     400  bad JSON, failed validation, invalid interaction, bad stress level
	NOT_FOUND            404  unknown activity or route
	RATE_LIMIT_EXCEEDED  429
	SERVICE_UNAVAILABLE  503  interaction log breaker open, log closed or missing, timeout
	INTERNAL_ERROR       500
*/
package api
