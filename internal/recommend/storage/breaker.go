// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package storage

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerConfig configures the circuit breaker wrapped around appends.
type BreakerConfig struct {
	// Name identifies the breaker in logs.
	Name string

	// MaxRequests allowed through while half-open.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state for clearing counts.
	// Zero never clears.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// FailureThreshold is the number of consecutive failures that trips the breaker.
	FailureThreshold uint32
}

// DefaultBreakerConfig returns production defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "interaction-log",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// BreakerLog wraps an InteractionLog so that a failing backend is not hammered
// by every feedback request. While open, Append fails fast with ErrCircuitOpen
// and no record is written. Replay and Close pass straight through.
type BreakerLog struct {
	next InteractionLog
	cb   *gobreaker.CircuitBreaker[struct{}]
}

// NewBreakerLog wraps next with a circuit breaker.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBreakerLog(next InteractionLog, cfg BreakerConfig, logger zerolog.Logger) *BreakerLog {
	def := DefaultBreakerConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = def.MaxRequests
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}

	log := logger.With().Str("component", "interaction-log-breaker").Logger()
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// Rejected input and caller cancellation say nothing about backend health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrInvalidInteraction) ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			SetBreakerState(breakerStateValue(to))
			event := log.Info()
			if to == gobreaker.StateOpen {
				event = log.Warn()
			}
			event.Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("interaction log circuit breaker state changed")
		},
	}

	SetBreakerState(0)
	return &BreakerLog{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

// Append forwards to the wrapped log through the breaker.
func (b *BreakerLog) Append(ctx context.Context, rec Interaction) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, b.next.Append(ctx, rec)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		RecordBreakerRejected()
		return ErrCircuitOpen
	}
	return err
}

// Replay forwards to the wrapped log.
func (b *BreakerLog) Replay(ctx context.Context, fn func(Interaction) error) error {
	return b.next.Replay(ctx, fn)
}

// Close closes the wrapped log.
func (b *BreakerLog) Close() error {
	return b.next.Close()
}

// State returns the breaker state name ("closed", "half-open", "open").
func (b *BreakerLog) State() string {
	return b.cb.State().String()
}

// Unwrap returns the wrapped log.
func (b *BreakerLog) Unwrap() InteractionLog {
	return b.next
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
