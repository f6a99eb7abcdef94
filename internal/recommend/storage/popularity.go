// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package storage

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// LoadPopularity replays the log and counts interactions per item id.
//
// Popularity is a soft signal, so this never fails: a missing log yields an
// empty map, and a replay error is logged and also yields an empty map rather
// than a partial count.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func LoadPopularity(ctx context.Context, log InteractionLog, logger zerolog.Logger) map[string]int64 {
	counts := make(map[string]int64)
	if log == nil {
		return counts
	}

	start := time.Now()
	var n int
	err := log.Replay(ctx, func(rec Interaction) error {
		counts[rec.ItemID]++
		n++
		return nil
	})
	if err != nil {
		RecordReplayFailure()
		logger.Warn().Err(err).Int("records_read", n).Msg("popularity replay failed, starting with empty counts")
		return make(map[string]int64)
	}

	RecordReplayed(n)
	logger.Info().
		Int("records", n).
		Int("items", len(counts)).
		Dur("duration", time.Since(start)).
		Msg("popularity loaded from interaction log")
	return counts
}
