// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Key layout:
//
//	interaction:<20-digit sequence>  -> JSON Interaction
//	seq:interaction                  -> badger sequence state
const (
	prefixInteraction = "interaction:"
	sequenceKey       = "seq:interaction"
	sequenceBandwidth = 128
)

// BadgerConfig configures a BadgerLog.
//
// Environment Variables (see internal/config):
//   - INTERACTIONS_BADGER_PATH: Directory for BadgerDB files (default: data/interactions.badger)
//   - INTERACTIONS_SYNC_WRITES: fsync every append (default: true)
type BadgerConfig struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string

	// SyncWrites forces an fsync per append.
	SyncWrites bool

	// InMemory keeps the log in memory only. Intended for tests.
	InMemory bool

	// GCDiscardRatio is passed to RunValueLogGC.
	// Default: 0.5
	GCDiscardRatio float64

	// CloseTimeout bounds how long Close waits for BadgerDB.
	// Default: 30s
	CloseTimeout time.Duration
}

// BadgerLog is an append-only interaction log stored in BadgerDB. Records are
// keyed by a monotonically increasing sequence so prefix iteration returns
// them in append order.
type BadgerLog struct {
	db     *badger.DB
	seq    *badger.Sequence
	config BadgerConfig
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// OpenBadger opens (or creates) a BadgerDB-backed interaction log.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func OpenBadger(cfg BadgerConfig, logger zerolog.Logger) (*BadgerLog, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badger log path is required")
	}
	if cfg.GCDiscardRatio <= 0 || cfg.GCDiscardRatio >= 1 {
		cfg.GCDiscardRatio = 0.5
	}
	if cfg.CloseTimeout <= 0 {
		cfg.CloseTimeout = 30 * time.Second
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	seq, err := db.GetSequence([]byte(sequenceKey), sequenceBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open interaction sequence: %w", err)
	}

	l := &BadgerLog{
		db:     db,
		seq:    seq,
		config: cfg,
		logger: logger.With().Str("component", "interaction-log").Str("backend", BackendBadger).Logger(),
	}

	l.logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("interaction log opened")
	return l, nil
}

func interactionKey(n uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", prefixInteraction, n))
}

// Append stores one interaction under the next sequence number.
func (l *BadgerLog) Append(ctx context.Context, rec Interaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := rec.Validate(); err != nil {
		return err
	}

	start := time.Now()
	defer func() {
		RecordAppendLatency(BackendBadger, time.Since(start).Seconds())
	}()

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return ErrLogClosed
	}

	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		RecordAppendFailure(BackendBadger)
		return fmt.Errorf("marshal interaction: %w", err)
	}

	n, err := l.seq.Next()
	if err != nil {
		RecordAppendFailure(BackendBadger)
		return fmt.Errorf("next sequence: %w", err)
	}

	err = l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(interactionKey(n), data)
	})
	if err != nil {
		RecordAppendFailure(BackendBadger)
		return fmt.Errorf("write to BadgerDB: %w", err)
	}

	RecordAppend(BackendBadger)
	return nil
}

// Replay iterates interactions in sequence order from a consistent snapshot.
// Entries that fail to decode are logged and skipped.
func (l *BadgerLog) Replay(ctx context.Context, fn func(Interaction) error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return ErrLogClosed
	}

	return l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixInteraction)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			item := it.Item()
			var rec Interaction
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				l.logger.Warn().Err(err).Str("key", string(item.Key())).Msg("skipping undecodable interaction")
				continue
			}
			if err := fn(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// RunGC runs one value log garbage collection pass. Returns nil when there
// was nothing to rewrite.
func (l *BadgerLog) RunGC() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return ErrLogClosed
	}

	err := l.db.RunValueLogGC(l.config.GCDiscardRatio)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		return fmt.Errorf("value log gc: %w", err)
	}
	return nil
}

// Close releases the sequence lease and closes BadgerDB, giving up after
// CloseTimeout.
func (l *BadgerLog) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	if err := l.seq.Release(); err != nil {
		l.logger.Warn().Err(err).Msg("release interaction sequence")
	}

	done := make(chan error, 1)
	go func() {
		done <- l.db.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("close BadgerDB: %w", err)
		}
		l.logger.Info().Msg("interaction log closed")
		return nil
	case <-time.After(l.config.CloseTimeout):
		return fmt.Errorf("badgerdb close timeout after %v", l.config.CloseTimeout)
	}
}
