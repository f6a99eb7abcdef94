// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

// Package main is the Nurture HTTP server.
//
// Nurture recommends short wellness activities from a fixed catalog by
// blending content similarity between a user's current state and each
// activity's tags with a popularity bonus learned from logged feedback.
//
// # Startup
//
//  1. Configuration: defaults, config.yaml, environment (koanf v2)
//  2. Logging: zerolog, with a slog bridge for the supervisor
//  3. Catalog: built-in, or the YAML file at CATALOG_PATH
//  4. Interaction log: CSV file or BadgerDB, behind a circuit breaker
//  5. Engine: popularity rebuilt by replaying the log
//  6. Event bus: watermill Go channels feeding the feedback recorder
//  7. Supervisor tree: HTTP server, event router, Badger GC
//
// # Configuration
//
// Common environment variables:
//
//	HTTP_PORT=8080
//	LOG_LEVEL=info            LOG_FORMAT=json|console
//	CATALOG_PATH=/etc/nurture/catalog.yaml
//	INTERACTIONS_BACKEND=csv|badger
//	INTERACTIONS_CSV_PATH=data/interactions.csv
//	INTERACTIONS_BADGER_PATH=data/interactions
//	CORS_ORIGINS=https://app.example.com
//	EVENTS_ENABLED=true
//
// See internal/config for the full list.
//
// # Signals
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains for
// up to HTTP_SHUTDOWN_TIMEOUT, then the event bus and interaction log are
// closed.
package main
