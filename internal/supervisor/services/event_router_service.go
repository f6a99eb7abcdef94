// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/nurture/internal/logging"
)

// errRouterStopped is returned when a router exits while its context is
// still live, so the supervisor restarts it.
var errRouterStopped = errors.New("event router stopped unexpectedly")

// EventRouter matches *events.Router.
type EventRouter interface {
	Run(ctx context.Context) error
	Running() chan struct{}
	Close() error
}

// EventRouterFactory builds a fresh router with its consumers attached.
// Watermill routers cannot be run twice, so every restart needs a new one.
type EventRouterFactory func() (EventRouter, error)

// EventRouterService runs the interaction event router under suture.
//
//	tree.Add(supervisor.LayerMessaging, services.NewEventRouterService(func() (services.EventRouter, error) {
//	    r, err := events.NewRouter(cfg, adapter)
//	    if err != nil {
//	        return nil, err
//	    }
//	    r.AddConsumer(events.TopicInteractionLogged, bus.Subscriber(), recorder)
//	    return r, nil
//	}))
type EventRouterService struct {
	factory EventRouterFactory
	name    string
}

// NewEventRouterService creates the service.
func NewEventRouterService(factory EventRouterFactory) *EventRouterService {
	return &EventRouterService{factory: factory, name: "event-router"}
}

// Serve implements suture.Service.
func (s *EventRouterService) Serve(ctx context.Context) error {
	router, err := s.factory()
	if err != nil {
		return fmt.Errorf("build event router: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Run(ctx)
	}()

	select {
	case <-router.Running():
		logging.Info().Str("service", s.name).Msg("Event router running")
	case err := <-errCh:
		return exitError(ctx, err)
	}

	return exitError(ctx, <-errCh)
}

// String identifies the service in supervisor events.
func (s *EventRouterService) String() string {
	return s.name
}

func exitError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("event router failed: %w", err)
	}
	return errRouterStopped
}
