// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

// Package models defines the HTTP API's request and response bodies.
//
// Every response is wrapped in APIResponse. Request types carry validate
// tags checked by the validation package before they reach the engine.
package models
