// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package algorithms

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
)

// PopularitySnapshot is an immutable view of interaction counts.
// It must not be modified by callers.
type PopularitySnapshot map[string]int64

// Count returns the number of logged interactions for id.
func (s PopularitySnapshot) Count(id string) int64 {
	return s[id]
}

// Bonus returns ln(1 + count) for id.
func (s PopularitySnapshot) Bonus(id string) float64 {
	return math.Log1p(float64(s[id]))
}

// Total returns the sum of all counts.
func (s PopularitySnapshot) Total() int64 {
	var total int64
	for _, c := range s {
		total += c
	}
	return total
}

// ItemCount is one row of a ranked popularity listing.
type ItemCount struct {
	ItemID string `json:"item_id"`
	Count  int64  `json:"count"`
}

// Ranked returns the counts ordered by count descending, then item ID.
func (s PopularitySnapshot) Ranked() []ItemCount {
	out := make([]ItemCount, 0, len(s))
	for id, c := range s {
		out = append(out, ItemCount{ItemID: id, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out
}

// PopularityIndex counts logged interactions per activity. It is a
// materialized view of the interaction log: counts only ever grow by one
// per logged event, independent of the feedback value.
//
// Writers serialize on an internal mutex and publish a fresh copy of the
// map; readers load the current copy atomically and never block.
type PopularityIndex struct {
	mu      sync.Mutex
	current atomic.Pointer[PopularitySnapshot]
}

// NewPopularityIndex returns an index seeded with counts (which may be nil).
// Non-positive seed counts are dropped.
func NewPopularityIndex(counts map[string]int64) *PopularityIndex {
	idx := &PopularityIndex{}
	snap := seedSnapshot(counts)
	idx.current.Store(&snap)
	return idx
}

func seedSnapshot(counts map[string]int64) PopularitySnapshot {
	snap := make(PopularitySnapshot, len(counts))
	for id, c := range counts {
		if c > 0 {
			snap[id] = c
		}
	}
	return snap
}

// Replace swaps in a freshly rebuilt set of counts.
func (p *PopularityIndex) Replace(counts map[string]int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := seedSnapshot(counts)
	p.current.Store(&snap)
}

// Snapshot returns the latest committed counts.
func (p *PopularityIndex) Snapshot() PopularitySnapshot {
	return *p.current.Load()
}

// Count returns the current count for id.
func (p *PopularityIndex) Count(id string) int64 {
	return p.Snapshot().Count(id)
}

// Len returns the number of items with at least one interaction.
func (p *PopularityIndex) Len() int {
	return len(p.Snapshot())
}

// Increment adds one interaction for id and returns the new count.
func (p *PopularityIndex) Increment(id string) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	prev := *p.current.Load()
	next := make(PopularitySnapshot, len(prev)+1)
	for k, v := range prev {
		next[k] = v
	}
	next[id]++
	p.current.Store(&next)

	return next[id]
}
