// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package catalog

import (
	"fmt"
	"strings"
)

// Tag names used by the built-in vocabulary.
const (
	TagMindfulness    = "mindfulness"
	TagBreathing      = "breathing"
	TagExercise       = "exercise"
	TagSleep          = "sleep"
	TagSocial         = "social"
	TagJournaling     = "journaling"
	TagNutrition      = "nutrition"
	TagTherapy        = "therapy"
	TagTimeManagement = "time_management"
)

// DefaultTags is the built-in tag order. Component i of every vector refers to
// DefaultTags[i]; changing the order invalidates every compiled vector.
var DefaultTags = []string{
	TagMindfulness,
	TagBreathing,
	TagExercise,
	TagSleep,
	TagSocial,
	TagJournaling,
	TagNutrition,
	TagTherapy,
	TagTimeManagement,
}

// Vocabulary is a fixed ordered set of tags. It defines the dimensionality
// of activity and user vectors. A Vocabulary is immutable and safe for
// concurrent use.
type Vocabulary struct {
	tags  []string
	index map[string]int
}

// NewVocabulary builds a vocabulary from an ordered tag list.
// Tags must be non-empty and unique.
func NewVocabulary(tags []string) (*Vocabulary, error) {
	if len(tags) == 0 {
		return nil, ErrEmptyVocabulary
	}

	v := &Vocabulary{
		tags:  make([]string, len(tags)),
		index: make(map[string]int, len(tags)),
	}
	for i, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return nil, fmt.Errorf("%w: empty tag at position %d", ErrInvalidVocabulary, i)
		}
		if _, dup := v.index[tag]; dup {
			return nil, fmt.Errorf("%w: duplicate tag %q", ErrInvalidVocabulary, tag)
		}
		v.tags[i] = tag
		v.index[tag] = i
	}
	return v, nil
}

// DefaultVocabulary returns the built-in nine-tag vocabulary.
func DefaultVocabulary() *Vocabulary {
	v, err := NewVocabulary(DefaultTags)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid default vocabulary: %v", err))
	}
	return v
}

// Len returns the vector dimensionality.
func (v *Vocabulary) Len() int {
	return len(v.tags)
}

// Index returns the component index of tag.
func (v *Vocabulary) Index(tag string) (int, bool) {
	i, ok := v.index[tag]
	return i, ok
}

// Tags returns a copy of the ordered tag list.
func (v *Vocabulary) Tags() []string {
	out := make([]string, len(v.tags))
	copy(out, v.tags)
	return out
}

// Vector compiles a tag set into a binary vector. Tags outside the
// vocabulary are ignored.
func (v *Vocabulary) Vector(tags []string) []float64 {
	vec := make([]float64, len(v.tags))
	for _, tag := range tags {
		if i, ok := v.index[tag]; ok {
			vec[i] = 1.0
		}
	}
	return vec
}
