// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package events

import (
	"sort"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/nurture/internal/metrics"
)

// FeedbackSummary aggregates feedback polarity for one activity.
type FeedbackSummary struct {
	ItemID   string  `json:"item_id"`
	Positive int64   `json:"positive"`
	Negative int64   `json:"negative"`
	Neutral  int64   `json:"neutral"`
	Sum      float64 `json:"sum"`
}

// FeedbackRecorder consumes InteractionLogged events and keeps per-activity
// polarity tallies since process start. Popularity itself is not derived
// from these tallies; it counts events regardless of sign.
type FeedbackRecorder struct {
	logger zerolog.Logger

	mu     sync.RWMutex
	byItem map[string]*FeedbackSummary
}

// NewFeedbackRecorder creates a recorder.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFeedbackRecorder(logger zerolog.Logger) *FeedbackRecorder {
	return &FeedbackRecorder{
		logger: logger.With().Str("component", "feedback-recorder").Logger(),
		byItem: make(map[string]*FeedbackSummary),
	}
}

// Name implements Handler.
func (r *FeedbackRecorder) Name() string {
	return "feedback-recorder"
}

// Handle implements Handler. Undecodable payloads are logged and acked.
func (r *FeedbackRecorder) Handle(msg *message.Message) error {
	event, err := DecodeInteractionLogged(msg)
	if err != nil {
		r.logger.Warn().Err(err).Msg("skipping malformed interaction event")
		return nil
	}

	r.mu.Lock()
	s, ok := r.byItem[event.ItemID]
	if !ok {
		s = &FeedbackSummary{ItemID: event.ItemID}
		r.byItem[event.ItemID] = s
	}
	switch metrics.Polarity(event.Feedback) {
	case "positive":
		s.Positive++
	case "negative":
		s.Negative++
	default:
		s.Neutral++
	}
	s.Sum += event.Feedback
	r.mu.Unlock()

	metrics.RecordInteraction(event.Feedback)

	r.logger.Debug().
		Str("event_id", event.EventID).
		Str("item_id", event.ItemID).
		Str("request_id", msg.Metadata.Get(MetadataRequestID)).
		Float64("feedback", event.Feedback).
		Msg("interaction event recorded")
	return nil
}

// Summaries returns the tallies sorted by item id.
func (r *FeedbackRecorder) Summaries() []FeedbackSummary {
	r.mu.RLock()
	out := make([]FeedbackSummary, 0, len(r.byItem))
	for _, s := range r.byItem {
		out = append(out, *s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

// Summary returns the tally for one item.
func (r *FeedbackRecorder) Summary(itemID string) (FeedbackSummary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byItem[itemID]
	if !ok {
		return FeedbackSummary{}, false
	}
	return *s, true
}
