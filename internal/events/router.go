// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/tomtom215/nurture/internal/metrics"
)

// RouterConfig holds configuration for the event router.
type RouterConfig struct {
	// CloseTimeout is how long to wait for handlers to finish when closing.
	CloseTimeout time.Duration `koanf:"close_timeout"`

	// Retry configuration
	RetryMaxRetries      int           `koanf:"retry_max_retries"`
	RetryInitialInterval time.Duration `koanf:"retry_initial_interval"`
}

// DefaultRouterConfig returns production defaults for the router.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         10 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
	}
}

// Handler consumes one message. Returning an error triggers a retry.
type Handler interface {
	Name() string
	Handle(msg *message.Message) error
}

// Router wraps the watermill router with panic recovery and retry.
// Handlers that still fail after retries are logged and the message is
// dropped; the interaction log is the durable record.
type Router struct {
	router *message.Router
	logger watermill.LoggerAdapter
}

// NewRouter creates a router.
func NewRouter(cfg RouterConfig, logger watermill.LoggerAdapter) (*Router, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	def := DefaultRouterConfig()
	if cfg.CloseTimeout <= 0 {
		cfg.CloseTimeout = def.CloseTimeout
	}
	if cfg.RetryInitialInterval <= 0 {
		cfg.RetryInitialInterval = def.RetryInitialInterval
	}

	wmRouter, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	// Order (outer to inner): drop after retries, recover panics, retry.
	wmRouter.AddMiddleware(dropAfterRetries(logger))
	wmRouter.AddMiddleware(middleware.Recoverer)
	if cfg.RetryMaxRetries > 0 {
		retry := middleware.Retry{
			MaxRetries:      cfg.RetryMaxRetries,
			InitialInterval: cfg.RetryInitialInterval,
			MaxInterval:     2 * time.Second,
			Multiplier:      2.0,
			Logger:          logger,
		}
		wmRouter.AddMiddleware(retry.Middleware)
	}

	return &Router{router: wmRouter, logger: logger}, nil
}

// AddConsumer subscribes h to topic.
func (r *Router) AddConsumer(topic string, subscriber message.Subscriber, h Handler) {
	name := h.Name()
	r.router.AddConsumerHandler(name, topic, subscriber, func(msg *message.Message) error {
		err := h.Handle(msg)
		metrics.RecordEventConsumed(name, err)
		return err
	})
}

// Run runs the router until ctx is canceled or Close is called.
func (r *Router) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running is closed once all handlers are subscribed.
func (r *Router) Running() chan struct{} {
	return r.router.Running()
}

// Close stops the router.
func (r *Router) Close() error {
	return r.router.Close()
}

// dropAfterRetries acks messages whose handler still fails so a poisoned
// event cannot block the subscription.
func dropAfterRetries(logger watermill.LoggerAdapter) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			out, err := h(msg)
			if err != nil {
				logger.Error("dropping event after failed handling", err, watermill.LogFields{
					"message_uuid": msg.UUID,
					"event_type":   msg.Metadata.Get(MetadataEventType),
				})
				return nil, nil
			}
			return out, nil
		}
	}
}
