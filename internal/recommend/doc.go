// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

// Package recommend implements a hybrid wellness activity recommender.
//
// # Architecture
//
// A request flows through four stages:
//
//   - profile: metrics and an emotion/sentiment label become a unit-length
//     user vector over the catalog's tag vocabulary
//   - algorithms.Cosine: the user vector is compared to every precomputed
//     activity tag vector
//   - algorithms.PopularityIndex: a snapshot of feedback counts supplies a
//     bonus ln(1+count), squashed to p/(1+p)
//   - Engine: blends the two (0.8 similarity, 0.2 popularity by default),
//     sorts stably and returns the top K
//
// The catalog is built once and never modified. There is no model training;
// the only learned signal is popularity, which follows the interaction log.
//
// # Interaction Log
//
// storage.InteractionLog is the durable source of truth. On startup
// LoadPopularity replays it into the in-memory index. LogInteraction appends
// a record and, only if the append succeeded, increments the index.
//
// # Usage
//
//	eng, err := recommend.NewEngine(recommend.DefaultConfig(), catalog.Default(), log, logger)
//	if err != nil {
//	    return err
//	}
//	eng.LoadPopularity(ctx)
//
//	resp, err := eng.Recommend(ctx, recommend.Request{
//	    Metrics: profile.Metrics{"sleep_quality": 3, "anxiety_level": 14},
//	    Label:   "anxious",
//	    K:       5,
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. Recommend reads the immutable
// catalog and an atomically published popularity snapshot and takes no lock.
// LogInteraction holds a single writer mutex around append+increment so the
// log and the index cannot diverge; a recommendation running concurrently
// may or may not see an interaction that is being logged.
package recommend
