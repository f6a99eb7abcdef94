// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

// Package events provides the in-process event bus.
//
// The bus uses watermill's Go channel pub/sub. The recommend engine publishes
// an InteractionLogged event on topic "interaction.logged" after each
// successful LogInteraction; a Router delivers events to Handlers such as
// FeedbackRecorder. Delivery is best effort: events are never persisted and
// a failed handler does not affect the interaction log or popularity.
//
// # Usage
//
//	adapter := events.NewZerologAdapter(logger)
//	bus := events.NewBus(events.DefaultConfig(), adapter)
//	router, err := events.NewRouter(events.DefaultRouterConfig(), adapter)
//	router.AddConsumer(events.TopicInteractionLogged, bus.Subscriber(), events.NewFeedbackRecorder(logger))
//	go router.Run(ctx)
//	engine.SetPublisher(bus)
package events
