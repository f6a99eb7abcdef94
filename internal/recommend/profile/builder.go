// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package profile

import (
	"math"

	"github.com/tomtom215/nurture/internal/recommend/catalog"
)

// Epsilon floors vector norms so zero vectors never divide by zero.
const Epsilon = 1e-9

// Sentiment boost factors. Emotional signal weighs more when the user gave
// no positive numeric metric at all.
const (
	BoostWithoutMetrics = 2.0
	BoostWithMetrics    = 1.2
)

type resolvedWeight struct {
	index  int
	weight float64
}

type resolvedField struct {
	field   string
	weights []resolvedWeight
}

// Builder turns user metrics and an emotion label into a unit-length
// vector over a vocabulary. A Builder holds only immutable lookup tables
// and is safe for concurrent use.
type Builder struct {
	vocab  *catalog.Vocabulary
	fields []resolvedField
}

// NewBuilder resolves the field table against vocab. Tags that the
// vocabulary does not define are dropped.
func NewBuilder(vocab *catalog.Vocabulary) *Builder {
	b := &Builder{vocab: vocab}
	for _, fm := range FieldWeights {
		rf := resolvedField{field: fm.Field}
		for _, tw := range fm.Weights {
			if i, ok := vocab.Index(tw.Tag); ok {
				rf.weights = append(rf.weights, resolvedWeight{index: i, weight: tw.Weight})
			}
		}
		b.fields = append(b.fields, rf)
	}
	return b
}

// Dim returns the vector length.
func (b *Builder) Dim() int {
	return b.vocab.Len()
}

// Build returns the L2-normalized user state vector. The zero vector is
// returned when no metric or signal contributes.
func (b *Builder) Build(metrics Metrics, label string) []float64 {
	return b.BuildSignal(metrics, ParseSignal(label))
}

// BuildSignal is Build with an already parsed signal.
func (b *Builder) BuildSignal(metrics Metrics, sig Signal) []float64 {
	vec := make([]float64, b.vocab.Len())

	boost := BoostWithoutMetrics
	if metrics.HasSignal() {
		boost = BoostWithMetrics
	}

	for _, rf := range b.fields {
		raw, ok := metrics[rf.field]
		if !ok {
			continue
		}
		v := Normalize(Float(raw))
		for _, w := range rf.weights {
			vec[w.index] += w.weight * v
		}
	}

	weight, tags := sig.boostTags()
	for _, tag := range tags {
		if i, ok := b.vocab.Index(tag); ok {
			vec[i] += weight * boost
		}
	}

	normalize(vec)
	return vec
}

// normalize scales vec to unit length in place.
func normalize(vec []float64) {
	var sum float64
	for _, x := range vec {
		sum += x * x
	}
	norm := math.Max(math.Sqrt(sum), Epsilon)
	for i := range vec {
		vec[i] /= norm
	}
}
