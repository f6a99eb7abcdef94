// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

// Package storage provides the append-only interaction log that backs
// activity popularity.
//
// # Overview
//
// Every feedback event is recorded as an Interaction (user_id, item_id,
// feedback). The log is the only durable state of the service: popularity
// counts are rebuilt from it on startup with LoadPopularity and kept in
// memory afterwards.
//
// # Backends
//
//   - CSVLog: a delimited text file with a user_id,item_id,feedback header.
//     The header is written when the file is created or empty. Replay skips
//     the leading header row and any row with fewer than two fields.
//   - BadgerLog: BadgerDB with one key per record, ordered by a persistent
//     sequence. Supports value log GC.
//
// Either backend can be wrapped in a BreakerLog, which fails appends fast
// with ErrCircuitOpen after repeated backend failures.
//
// # Usage Example
//
//	log, err := storage.NewCSVLog(storage.CSVConfig{Path: "data/interactions.csv"})
//	if err != nil {
//	    return err
//	}
//	defer log.Close()
//
//	counts := storage.LoadPopularity(ctx, log, logger)
//	err = log.Append(ctx, storage.Interaction{UserID: "u1", ItemID: "a1", Feedback: 1})
//
// # Thread Safety
//
// All backends are safe for concurrent use. Append serializes writers;
// callers that must keep a derived index consistent with the log (such as
// the recommendation engine) hold their own lock around Append.
//
// # Metrics
//
// Appends, failures, latency, replays and breaker state are exported as
// Prometheus metrics labelled by backend.
package storage
