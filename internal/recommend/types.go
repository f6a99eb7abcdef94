// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/nurture/internal/recommend/profile"
	"github.com/tomtom215/nurture/internal/recommend/storage"
)

// Sentinel errors returned by the engine.
var (
	// ErrUnknownActivity is returned by LogInteraction when the item id is
	// not in the catalog and Feedback.RequireKnownItem is set.
	ErrUnknownActivity = errors.New("unknown activity")

	// ErrInvalidK is returned for a negative K.
	ErrInvalidK = errors.New("k must not be negative")
)

// Request is a recommendation request.
type Request struct {
	// Metrics are the user's self-reported numeric signals. Missing or
	// unparseable values count as zero.
	Metrics profile.Metrics

	// Label is the detected emotion or coarse sentiment. Matched
	// case-insensitively; unknown labels add no boost.
	Label string

	// K is the number of items to return. Zero means Limits.DefaultK;
	// values above Limits.MaxK are capped.
	K int

	// RequestID is used for tracing. Generated when empty.
	RequestID string
}

// ActivityResult is one ranked activity.
type ActivityResult struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Tags    []string `json:"tags"`
	Minutes *int     `json:"duration_minutes"`
	Score   float64  `json:"score"`
}

// Response contains ranked activities and metadata.
type Response struct {
	// Items are sorted by non-increasing score; ties keep catalog order.
	Items []ActivityResult `json:"items"`

	// Metadata contains request processing information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains information about request processing.
type ResponseMetadata struct {
	RequestID string `json:"request_id"`

	// Signal is the kind of label match: "emotion", "sentiment" or "none".
	Signal string `json:"signal"`

	// HasMetrics reports whether any metric was positive, which selects
	// the smaller emotion boost.
	HasMetrics bool `json:"has_metrics"`

	// CatalogSize is the number of activities scored.
	CatalogSize int `json:"catalog_size"`

	// PopularityTotal is the number of interactions in the snapshot used.
	PopularityTotal int64 `json:"popularity_total"`

	// LatencyMS is the processing time in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// InteractionPublisher is notified after an interaction has been durably
// logged and counted. Implementations must not block for long; errors are
// logged by the engine and never returned to the caller.
type InteractionPublisher interface {
	PublishInteraction(ctx context.Context, rec storage.Interaction) error
}

// Metrics contains engine counters.
type Metrics struct {
	// RequestCount is the total number of Recommend calls.
	RequestCount int64 `json:"request_count"`

	// ErrorCount is the number of Recommend calls that failed.
	ErrorCount int64 `json:"error_count"`

	// InteractionsLogged is the number of successful LogInteraction calls.
	InteractionsLogged int64 `json:"interactions_logged"`

	// InteractionFailures is the number of LogInteraction calls whose
	// append failed.
	InteractionFailures int64 `json:"interaction_failures"`

	// PublishFailures is the number of post-commit notifications that failed.
	PublishFailures int64 `json:"publish_failures"`

	// TrackedActivities is the number of activities with a non-zero count.
	TrackedActivities int `json:"tracked_activities"`
}
