// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package api

import (
	"time"

	"github.com/tomtom215/nurture/internal/events"
	"github.com/tomtom215/nurture/internal/recommend"
)

// defaultRequestTimeout bounds engine calls made by a handler.
const defaultRequestTimeout = 10 * time.Second

// FeedbackSummaries provides per-activity feedback polarity tallies.
// events.FeedbackRecorder implements it.
type FeedbackSummaries interface {
	Summary(itemID string) (events.FeedbackSummary, bool)
}

// Handler serves the wellness API on top of a recommend.Engine.
type Handler struct {
	engine    *recommend.Engine
	summaries FeedbackSummaries
	logState  func() string
	version   string
	timeout   time.Duration
	startTime time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithFeedbackSummaries adds polarity tallies to the popularity endpoint.
func WithFeedbackSummaries(s FeedbackSummaries) HandlerOption {
	return func(h *Handler) { h.summaries = s }
}

// WithLogState reports the interaction log's breaker state on /health.
// An "open" state marks the service degraded.
func WithLogState(fn func() string) HandlerOption {
	return func(h *Handler) { h.logState = fn }
}

// WithVersion sets the version reported by /health.
func WithVersion(v string) HandlerOption {
	return func(h *Handler) { h.version = v }
}

// WithRequestTimeout overrides the per-request engine timeout.
func WithRequestTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// NewHandler creates a handler for engine.
func NewHandler(engine *recommend.Engine, opts ...HandlerOption) *Handler {
	h := &Handler{
		engine:    engine,
		version:   "dev",
		timeout:   defaultRequestTimeout,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
