// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

// flakyLog fails every append while failing is set.
type flakyLog struct {
	mu      sync.Mutex
	failing bool
	calls   int
	records []Interaction
}

func (f *flakyLog) Append(_ context.Context, rec Interaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := rec.Validate(); err != nil {
		return err
	}
	if f.failing {
		return errors.New("disk full")
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *flakyLog) Replay(_ context.Context, fn func(Interaction) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

func (f *flakyLog) Close() error { return nil }

func (f *flakyLog) setFailing(v bool) {
	f.mu.Lock()
	f.failing = v
	f.mu.Unlock()
}

func (f *flakyLog) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestBreakerLog_OpensAfterConsecutiveFailures(t *testing.T) {
	inner := &flakyLog{failing: true}
	b := NewBreakerLog(inner, BreakerConfig{FailureThreshold: 3, Timeout: time.Hour}, zerolog.Nop())
	ctx := context.Background()
	rec := Interaction{UserID: "u1", ItemID: "a1", Feedback: 1}

	for i := 0; i < 3; i++ {
		if err := b.Append(ctx, rec); err == nil || errors.Is(err, ErrCircuitOpen) {
			t.Fatalf("Append(%d) error = %v, want backend error", i, err)
		}
	}
	if b.State() != "open" {
		t.Fatalf("State() = %q, want open", b.State())
	}

	before := testutil.ToFloat64(interactionBreakerRejected)
	if err := b.Append(ctx, rec); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Append() while open error = %v, want ErrCircuitOpen", err)
	}
	if inner.callCount() != 3 {
		t.Errorf("backend called %d times, want 3", inner.callCount())
	}
	if got := testutil.ToFloat64(interactionBreakerRejected) - before; got != 1 {
		t.Errorf("rejected counter delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(interactionBreakerState); got != 2 {
		t.Errorf("breaker state gauge = %v, want 2", got)
	}
}

func TestBreakerLog_RecoversAfterTimeout(t *testing.T) {
	inner := &flakyLog{failing: true}
	b := NewBreakerLog(inner, BreakerConfig{FailureThreshold: 1, Timeout: 20 * time.Millisecond}, zerolog.Nop())
	ctx := context.Background()
	rec := Interaction{UserID: "u1", ItemID: "a1", Feedback: 1}

	_ = b.Append(ctx, rec)
	if b.State() != "open" {
		t.Fatalf("State() = %q, want open", b.State())
	}

	inner.setFailing(false)
	time.Sleep(40 * time.Millisecond)

	if err := b.Append(ctx, rec); err != nil {
		t.Fatalf("Append() after timeout error = %v", err)
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}

func TestBreakerLog_InvalidInputDoesNotTrip(t *testing.T) {
	inner := &flakyLog{}
	b := NewBreakerLog(inner, BreakerConfig{FailureThreshold: 1}, zerolog.Nop())

	for i := 0; i < 5; i++ {
		err := b.Append(context.Background(), Interaction{UserID: "u1"})
		if !errors.Is(err, ErrInvalidInteraction) {
			t.Fatalf("Append() error = %v, want ErrInvalidInteraction", err)
		}
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}

func TestBreakerLog_PassThrough(t *testing.T) {
	inner := &flakyLog{}
	b := NewBreakerLog(inner, DefaultBreakerConfig(), zerolog.Nop())
	ctx := context.Background()

	if err := b.Append(ctx, Interaction{UserID: "u1", ItemID: "a1", Feedback: 1}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if got := collect(t, b); len(got) != 1 {
		t.Errorf("Replay() returned %d records, want 1", len(got))
	}
	if b.Unwrap() != InteractionLog(inner) {
		t.Error("Unwrap() did not return the wrapped log")
	}
	if err := b.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestLoadPopularity_ReplayErrorYieldsEmpty(t *testing.T) {
	counts := LoadPopularity(context.Background(), failingReplayLog{}, zerolog.Nop())
	if len(counts) != 0 {
		t.Errorf("LoadPopularity() = %v, want empty", counts)
	}
}

func TestLoadPopularity_NilLog(t *testing.T) {
	if counts := LoadPopularity(context.Background(), nil, zerolog.Nop()); counts == nil || len(counts) != 0 {
		t.Errorf("LoadPopularity(nil) = %v, want empty non-nil map", counts)
	}
}

// failingReplayLog delivers one record and then fails, so a partial count
// would be visible if LoadPopularity kept it.
type failingReplayLog struct{}

func (failingReplayLog) Append(context.Context, Interaction) error { return nil }
func (failingReplayLog) Close() error                              { return nil }
func (failingReplayLog) Replay(_ context.Context, fn func(Interaction) error) error {
	if err := fn(Interaction{UserID: "u1", ItemID: "a1"}); err != nil {
		return err
	}
	return errors.New("corrupt log")
}
