// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package services

import (
	"context"
	"errors"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/nurture/internal/logging"
	"github.com/tomtom215/nurture/internal/recommend/storage"
)

const defaultGCInterval = 10 * time.Minute

// GarbageCollector matches *storage.BadgerLog.
type GarbageCollector interface {
	RunGC() error
}

// GCService periodically reclaims Badger value log space. A failed pass is
// logged and retried on the next tick; a closed log ends the service.
type GCService struct {
	gc       GarbageCollector
	interval time.Duration
	name     string
}

// NewGCService creates the service. A non-positive interval uses 10m.
func NewGCService(gc GarbageCollector, interval time.Duration) *GCService {
	if interval <= 0 {
		interval = defaultGCInterval
	}
	return &GCService{gc: gc, interval: interval, name: "badger-gc"}
}

// Serve implements suture.Service.
func (s *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			err := s.gc.RunGC()
			switch {
			case err == nil:
			case errors.Is(err, storage.ErrLogClosed):
				return suture.ErrDoNotRestart
			default:
				logging.Warn().Err(err).Str("service", s.name).Msg("Value log GC failed")
			}
		}
	}
}

// String identifies the service in supervisor events.
func (s *GCService) String() string {
	return s.name
}
