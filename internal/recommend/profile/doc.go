// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

// Package profile builds the request-scoped user state vector.
//
// Numeric metrics are normalized and spread over tags through a static
// field table. The emotion label is parsed into a closed Signal variant
// (fine-grained emotion, coarse sentiment, or none) whose boost is scaled
// by 2.0 when no metric is positive and 1.2 otherwise. The result is
// L2-normalized; an all-zero input yields the zero vector.
package profile
