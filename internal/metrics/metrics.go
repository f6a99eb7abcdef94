// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the HTTP API, the recommender and the event bus.
// Interaction log metrics live in internal/recommend/storage next to the
// backends that record them.

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests by matched signal kind",
		},
		[]string{"signal"}, // "emotion", "sentiment", "none"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time to rank the catalog for one request",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		},
	)

	RecommendationItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_items",
			Help:    "Number of items returned per recommendation",
			Buckets: []float64{1, 3, 5, 10, 25, 50},
		},
	)

	// Feedback / Popularity Metrics
	InteractionsLogged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_logged_total",
			Help: "Total number of feedback interactions accepted",
		},
		[]string{"polarity"}, // "positive", "negative", "neutral"
	)

	InteractionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_rejected_total",
			Help: "Total number of feedback interactions that were not logged",
		},
		[]string{"reason"}, // "invalid", "unknown_activity", "circuit_open", "storage"
	)

	PopularityTrackedActivities = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "popularity_tracked_activities",
			Help: "Number of activities with at least one interaction",
		},
	)

	PopularityRebuildRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "popularity_rebuild_activities",
			Help: "Number of activities counted by the last startup rebuild",
		},
	)

	// Assessment Metrics
	AssessmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessments_total",
			Help: "Total number of wellness assessments by stress level",
		},
		[]string{"stress"},
	)

	AssessmentRiskFlags = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assessment_risk_flags_total",
			Help: "Total number of assessments that raised the risk flag",
		},
	)

	// Event Bus Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published to the in-process bus",
		},
		[]string{"topic"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_consumed_total",
			Help: "Total number of events handled by consumers",
		},
		[]string{"handler", "result"}, // result: "ok", "error"
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecommendation records one served recommendation.
func RecordRecommendation(signal string, items int, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(signal).Inc()
	RecommendationItems.Observe(float64(items))
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordInteraction records an accepted interaction by feedback sign.
func RecordInteraction(feedback float64) {
	InteractionsLogged.WithLabelValues(Polarity(feedback)).Inc()
}

// RecordInteractionRejected records an interaction that was not logged.
func RecordInteractionRejected(reason string) {
	InteractionsRejected.WithLabelValues(reason).Inc()
}

// SetPopularityTracked sets the number of activities with a count.
func SetPopularityTracked(n int) {
	PopularityTrackedActivities.Set(float64(n))
}

// RecordPopularityRebuild records the size of a startup rebuild.
func RecordPopularityRebuild(activities int) {
	PopularityRebuildRecords.Set(float64(activities))
	PopularityTrackedActivities.Set(float64(activities))
}

// RecordAssessment records one assessment.
func RecordAssessment(stress string, risk bool) {
	AssessmentsTotal.WithLabelValues(stress).Inc()
	if risk {
		AssessmentRiskFlags.Inc()
	}
}

// RecordEventPublished records a published event.
func RecordEventPublished(topic string) {
	EventsPublished.WithLabelValues(topic).Inc()
}

// RecordEventConsumed records a handled event.
func RecordEventConsumed(handler string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	EventsConsumed.WithLabelValues(handler, result).Inc()
}

// Polarity classifies a feedback value by sign.
func Polarity(feedback float64) string {
	switch {
	case feedback > 0:
		return "positive"
	case feedback < 0:
		return "negative"
	default:
		return "neutral"
	}
}
