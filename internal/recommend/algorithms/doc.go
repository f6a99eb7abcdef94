// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

// Package algorithms holds the two scoring components of the hybrid ranker.
//
// Content similarity:
//
//	Cosine(user, activity)   dot / (max(|u|, eps) * max(|a|, eps)), gonum/floats
//
// Popularity:
//
//	Bonus(item) = ln(1 + count)
//
// PopularityIndex keeps the counts behind a copy-on-write snapshot so
// readers never block the single writer. The engine combines the two as
// 0.8*cos + 0.2*bonus/(1+bonus) by default.
package algorithms
