// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Recommender:
  - recommendations_total{signal}
  - recommendation_duration_seconds
  - recommendation_items
  - interactions_logged_total{polarity}
  - interactions_rejected_total{reason}
  - popularity_tracked_activities
  - popularity_rebuild_activities
  - assessments_total{stress}
  - assessment_risk_flags_total

Event bus:
  - events_published_total{topic}
  - events_consumed_total{handler, result}

Interaction log metrics (interaction_log_*) are defined in
internal/recommend/storage.

# Thread Safety

All recording functions are safe for concurrent use.
*/
package metrics
