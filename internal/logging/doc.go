// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

// Package logging holds the process-wide zerolog logger and helpers around it.
//
// Init is called once from main with the resolved logging config; before that
// the package logs JSON at info level to stderr. Components take a child
// logger (WithComponent) at construction time and pass it down explicitly.
// Request-scoped code uses Ctx, which adds the request_id set by the HTTP
// middleware.
//
//	logging.Init(logging.Config{Level: "debug", Format: "console", Timestamp: true})
//	logger := logging.WithComponent("api")
//	logging.Ctx(r.Context()).Info().Str("item_id", id).Msg("feedback logged")
//
// SlogHandler bridges slog-only libraries (sutureslog) into the same stream.
// SanitizeUserID and SanitizeLabel keep raw user identifiers and free text
// out of log entries.
package logging
