// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Sentinel errors for interaction log operations.
var (
	// ErrLogClosed is returned when operating on a closed log.
	ErrLogClosed = errors.New("interaction log is closed")

	// ErrInvalidInteraction is returned for records missing an id or
	// carrying a non-finite feedback value.
	ErrInvalidInteraction = errors.New("invalid interaction")

	// ErrCircuitOpen is returned by BreakerLog while the breaker rejects writes.
	ErrCircuitOpen = errors.New("interaction log circuit open")
)

// Interaction is one feedback event. Records are append-only: they are never
// updated or deleted, and their order in the log is their time order.
type Interaction struct {
	// UserID identifies the user giving feedback.
	UserID string `json:"user_id"`

	// ItemID is the activity the feedback refers to.
	ItemID string `json:"item_id"`

	// Feedback is the raw feedback value (e.g. 1 like, -1 dislike).
	// It is recorded verbatim; popularity counts events, not magnitude.
	Feedback float64 `json:"feedback"`

	// Timestamp is when the event was logged. The CSV format does not
	// carry it, so replayed CSV records have a zero Timestamp.
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Validate checks the fields every backend needs.
func (i Interaction) Validate() error {
	if strings.TrimSpace(i.UserID) == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInteraction)
	}
	if strings.TrimSpace(i.ItemID) == "" {
		return fmt.Errorf("%w: item_id is required", ErrInvalidInteraction)
	}
	if math.IsNaN(i.Feedback) || math.IsInf(i.Feedback, 0) {
		return fmt.Errorf("%w: feedback must be finite", ErrInvalidInteraction)
	}
	return nil
}

// InteractionLog is the durable, append-only record of feedback events.
// It is the single source of truth for popularity counts.
type InteractionLog interface {
	// Append durably records one interaction. When Append returns an
	// error the record must be treated as not written.
	Append(ctx context.Context, rec Interaction) error

	// Replay calls fn for every stored interaction in append order.
	// A missing log replays nothing. Replay stops at the first error
	// returned by fn.
	Replay(ctx context.Context, fn func(Interaction) error) error

	// Close releases the underlying storage.
	Close() error
}
