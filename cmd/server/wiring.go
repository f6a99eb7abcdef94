// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package main

import (
	"fmt"

	"github.com/tomtom215/nurture/internal/config"
	"github.com/tomtom215/nurture/internal/events"
	"github.com/tomtom215/nurture/internal/logging"
	"github.com/tomtom215/nurture/internal/recommend/storage"
	"github.com/tomtom215/nurture/internal/supervisor/services"
)

// interactionLog is the opened log plus the concrete layers main needs to
// reach: the breaker for health reporting and Badger for GC.
type interactionLog struct {
	log     storage.InteractionLog
	breaker *storage.BreakerLog
	badger  *storage.BadgerLog
}

// openInteractionLog opens the configured backend and wraps it in a
// circuit breaker when enabled.
func openInteractionLog(cfg *config.InteractionsConfig) (*interactionLog, error) {
	logger := logging.WithComponent("interaction-log")
	out := &interactionLog{}

	switch cfg.Backend {
	case config.BackendBadger:
		b, err := storage.OpenBadger(storage.BadgerConfig{
			Path:           cfg.BadgerPath,
			SyncWrites:     cfg.SyncWrites,
			GCDiscardRatio: cfg.GCDiscardRatio,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("open badger log: %w", err)
		}
		out.badger = b
		out.log = b
		logger.Info().Str("path", cfg.BadgerPath).Msg("Badger interaction log opened")

	case config.BackendCSV, "":
		c, err := storage.NewCSVLog(storage.CSVConfig{
			Path:       cfg.CSVPath,
			SyncWrites: cfg.SyncWrites,
		})
		if err != nil {
			return nil, fmt.Errorf("open csv log: %w", err)
		}
		out.log = c
		logger.Info().Str("path", cfg.CSVPath).Msg("CSV interaction log configured")

	default:
		return nil, fmt.Errorf("unknown interaction log backend %q", cfg.Backend)
	}

	if cfg.Breaker.Enabled {
		out.breaker = storage.NewBreakerLog(out.log, storage.BreakerConfig{
			Name:             "interaction-log-" + backendName(cfg.Backend),
			MaxRequests:      cfg.Breaker.MaxRequests,
			Interval:         cfg.Breaker.Interval,
			Timeout:          cfg.Breaker.Timeout,
			FailureThreshold: cfg.Breaker.FailureThreshold,
		}, logger)
		out.log = out.breaker
	}
	return out, nil
}

func backendName(b string) string {
	if b == "" {
		return config.BackendCSV
	}
	return b
}

// newEventBus creates the bus and the consumer that tallies feedback.
func newEventBus(cfg *config.EventsConfig) (*events.Bus, *events.FeedbackRecorder) {
	adapter := events.NewZerologAdapter(logging.WithComponent("events"))
	bus := events.NewBus(events.Config{
		OutputChannelBuffer:            cfg.Buffer,
		BlockPublishUntilSubscriberAck: cfg.BlockPublish,
	}, adapter)
	return bus, events.NewFeedbackRecorder(logging.WithComponent("feedback-recorder"))
}

// eventRouterFactory builds a router subscribed to interaction events. The
// supervisor calls it on every (re)start.
func eventRouterFactory(cfg *config.EventsConfig, bus *events.Bus, recorder *events.FeedbackRecorder) services.EventRouterFactory {
	adapter := events.NewZerologAdapter(logging.WithComponent("event-router"))
	return func() (services.EventRouter, error) {
		r, err := events.NewRouter(events.RouterConfig{
			CloseTimeout:         cfg.CloseTimeout,
			RetryMaxRetries:      cfg.RetryMaxRetries,
			RetryInitialInterval: cfg.RetryInitialInterval,
		}, adapter)
		if err != nil {
			return nil, err
		}
		r.AddConsumer(events.TopicInteractionLogged, bus.Subscriber(), recorder)
		return r, nil
	}
}
