// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package algorithms

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Epsilon floors each norm in Cosine so degenerate vectors score 0.
const Epsilon = 1e-9

// Cosine returns the cosine similarity of a and b in [-1, 1].
// An all-zero operand yields 0. Vectors of different length are not
// comparable and also yield 0.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	normA := math.Max(floats.Norm(a, 2), Epsilon)
	normB := math.Max(floats.Norm(b, 2), Epsilon)

	return floats.Dot(a, b) / (normA * normB)
}
