// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned while building a catalog.
var (
	ErrEmptyVocabulary   = errors.New("vocabulary has no tags")
	ErrInvalidVocabulary = errors.New("invalid vocabulary")
	ErrEmptyCatalog      = errors.New("catalog has no activities")
	ErrInvalidActivity   = errors.New("invalid activity")
	ErrDuplicateActivity = errors.New("duplicate activity id")
	ErrActivityNotFound  = errors.New("activity not found")
)

// Activity is a recommendable wellness activity.
type Activity struct {
	// ID is the unique activity identifier (e.g. "a1").
	ID string `json:"id" yaml:"id"`

	// Title is the human-readable name.
	Title string `json:"title" yaml:"title"`

	// Tags lists the semantic tags of the activity.
	Tags []string `json:"tags" yaml:"tags"`

	// Minutes is the expected duration; nil when unknown.
	Minutes *int `json:"duration_minutes" yaml:"minutes,omitempty"`
}

// Entry is an activity with its compiled tag vector.
type Entry struct {
	Activity
	Vector []float64
}

// Catalog is the immutable activity registry. Vectors are compiled once in
// New and never change afterwards; accessors hand out copies so callers
// cannot mutate catalog state.
type Catalog struct {
	vocab   *Vocabulary
	entries []Entry
	byID    map[string]int
}

// New compiles activities against vocab. It fails fast on malformed input:
// empty IDs or titles and duplicate IDs. Tags outside the vocabulary are
// kept on the activity but contribute nothing to its vector.
func New(vocab *Vocabulary, activities []Activity) (*Catalog, error) {
	if vocab == nil {
		return nil, ErrEmptyVocabulary
	}
	if len(activities) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		vocab:   vocab,
		entries: make([]Entry, 0, len(activities)),
		byID:    make(map[string]int, len(activities)),
	}

	for i, a := range activities {
		a.ID = strings.TrimSpace(a.ID)
		if a.ID == "" {
			return nil, fmt.Errorf("%w: activity %d has no id", ErrInvalidActivity, i)
		}
		if strings.TrimSpace(a.Title) == "" {
			return nil, fmt.Errorf("%w: activity %q has no title", ErrInvalidActivity, a.ID)
		}
		if _, dup := c.byID[a.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateActivity, a.ID)
		}

		c.byID[a.ID] = len(c.entries)
		c.entries = append(c.entries, Entry{
			Activity: cloneActivity(a),
			Vector:   vocab.Vector(a.Tags),
		})
	}

	return c, nil
}

// Vocabulary returns the vocabulary the catalog was compiled against.
func (c *Catalog) Vocabulary() *Vocabulary {
	return c.vocab
}

// Len returns the number of activities.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns the compiled activities in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = cloneEntry(e)
	}
	return out
}

// Activities returns the activities in catalog order without vectors.
func (c *Catalog) Activities() []Activity {
	out := make([]Activity, len(c.entries))
	for i, e := range c.entries {
		out[i] = cloneActivity(e.Activity)
	}
	return out
}

// Get returns the activity with the given id.
func (c *Catalog) Get(id string) (Entry, error) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrActivityNotFound, id)
	}
	return cloneEntry(c.entries[i]), nil
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Each calls fn for every entry in catalog order without copying.
// fn must not modify the entry; iteration stops when fn returns false.
func (c *Catalog) Each(fn func(i int, e *Entry) bool) {
	for i := range c.entries {
		if !fn(i, &c.entries[i]) {
			return
		}
	}
}

func cloneActivity(a Activity) Activity {
	out := a
	out.Tags = append([]string(nil), a.Tags...)
	if a.Minutes != nil {
		m := *a.Minutes
		out.Minutes = &m
	}
	return out
}

func cloneEntry(e Entry) Entry {
	return Entry{
		Activity: cloneActivity(e.Activity),
		Vector:   append([]float64(nil), e.Vector...),
	}
}
