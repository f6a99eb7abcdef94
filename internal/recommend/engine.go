// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/nurture/internal/recommend/algorithms"
	"github.com/tomtom215/nurture/internal/recommend/catalog"
	"github.com/tomtom215/nurture/internal/recommend/profile"
	"github.com/tomtom215/nurture/internal/recommend/storage"
)

// ErrNoInteractionLog is returned by LogInteraction when the engine was
// built without a log.
var ErrNoInteractionLog = errors.New("interaction log not configured")

// scoreScale rounds displayed scores to 4 decimal digits.
const scoreScale = 1e4

// Engine ranks catalog activities for a user state and records feedback.
// It is safe for concurrent use.
type Engine struct {
	// Configuration
	config *Config
	logger zerolog.Logger

	// Immutable after construction
	catalog *catalog.Catalog
	builder *profile.Builder

	// Write path: the log is authoritative, popularity is its view.
	// writeMu serializes append+increment and is never taken by Recommend.
	writeMu    sync.Mutex
	log        storage.InteractionLog
	popularity *algorithms.PopularityIndex
	publisher  InteractionPublisher

	// Metrics
	requestCount        atomic.Int64
	errorCount          atomic.Int64
	interactionsLogged  atomic.Int64
	interactionFailures atomic.Int64
	publishFailures     atomic.Int64
}

// NewEngine creates an engine over cat. log may be nil for read-only use
// (LogInteraction then fails with ErrNoInteractionLog). Popularity starts
// empty; call LoadPopularity to rebuild it from the log.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, cat *catalog.Catalog, log storage.InteractionLog, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cat == nil {
		return nil, errors.New("catalog is required")
	}

	return &Engine{
		config:     cfg,
		logger:     logger.With().Str("component", "recommend").Logger(),
		catalog:    cat,
		builder:    profile.NewBuilder(cat.Vocabulary()),
		log:        log,
		popularity: algorithms.NewPopularityIndex(nil),
	}, nil
}

// SetPublisher sets the notifier called after each logged interaction.
func (e *Engine) SetPublisher(p InteractionPublisher) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	e.publisher = p
}

// LoadPopularity rebuilds the popularity index by replaying the log and
// returns the number of activities with a non-zero count. It never fails;
// an unreadable log leaves popularity empty.
func (e *Engine) LoadPopularity(ctx context.Context) int {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	counts := storage.LoadPopularity(ctx, e.log, e.logger)
	e.popularity.Replace(counts)
	return e.popularity.Len()
}

// Catalog returns the activity catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Popularity returns the latest committed popularity counts.
func (e *Engine) Popularity() algorithms.PopularitySnapshot {
	return e.popularity.Snapshot()
}

// Vector returns the normalized user vector for metrics and label.
func (e *Engine) Vector(metrics profile.Metrics, label string) []float64 {
	return e.builder.Build(metrics, label)
}

// Recommend ranks the catalog for the request's user state.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if err := ctx.Err(); err != nil {
		e.errorCount.Add(1)
		return nil, err
	}
	if req.K < 0 {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, req.K)
	}

	req = e.prepareRequest(req)
	logger := e.createRequestLogger(req)

	sig := profile.ParseSignal(req.Label)
	user := e.builder.BuildSignal(req.Metrics, sig)
	snap := e.popularity.Snapshot()

	items := e.rank(user, snap, req.K)

	resp := &Response{
		Items: items,
		Metadata: ResponseMetadata{
			RequestID:       req.RequestID,
			Signal:          sig.Kind.String(),
			HasMetrics:      req.Metrics.HasSignal(),
			CatalogSize:     e.catalog.Len(),
			PopularityTotal: snap.Total(),
			LatencyMS:       time.Since(start).Milliseconds(),
			Timestamp:       time.Now(),
		},
	}

	logger.Debug().
		Str("signal", resp.Metadata.Signal).
		Bool("has_metrics", resp.Metadata.HasMetrics).
		Int("returned", len(items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.K == 0 {
		req.K = e.config.Limits.DefaultK
	}
	if req.K > e.config.Limits.MaxK {
		req.K = e.config.Limits.MaxK
	}
	return req
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("label", req.Label).
		Int("k", req.K).
		Logger()
}

type scored struct {
	entry *catalog.Entry
	score float64
}

// rank scores every entry, sorts by non-increasing score with catalog order
// kept on ties, and returns the first min(k, n) items.
func (e *Engine) rank(user []float64, snap algorithms.PopularitySnapshot, k int) []ActivityResult {
	w := e.config.Weights

	all := make([]scored, 0, e.catalog.Len())
	e.catalog.Each(func(_ int, entry *catalog.Entry) bool {
		all = append(all, scored{
			entry: entry,
			score: w.Similarity*algorithms.Cosine(user, entry.Vector) + w.Popularity*squash(snap.Bonus(entry.ID)),
		})
		return true
	})

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].score > all[j].score
	})

	if k > len(all) {
		k = len(all)
	}

	out := make([]ActivityResult, k)
	for i := 0; i < k; i++ {
		a := all[i].entry.Activity
		out[i] = ActivityResult{
			ID:      a.ID,
			Title:   a.Title,
			Tags:    append([]string(nil), a.Tags...),
			Minutes: copyMinutes(a.Minutes),
			Score:   roundScore(all[i].score),
		}
	}
	return out
}

// LogInteraction durably appends rec and, only if the append succeeds,
// increments the item's popularity. On failure the error is returned and
// popularity is unchanged. Registered publishers are notified after the
// write lock is released; their failures are logged, not returned.
//
//nolint:gocritic // hugeParam: rec passed by value for immutability
func (e *Engine) LogInteraction(ctx context.Context, rec storage.Interaction) (int64, error) {
	if e.log == nil {
		return 0, ErrNoInteractionLog
	}
	if err := rec.Validate(); err != nil {
		return 0, err
	}
	if e.config.Feedback.RequireKnownItem && !e.catalog.Has(rec.ItemID) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownActivity, rec.ItemID)
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	count, publisher, err := e.commit(ctx, rec)
	if err != nil {
		e.interactionFailures.Add(1)
		e.logger.Error().Err(err).
			Str("user_id", rec.UserID).
			Str("item_id", rec.ItemID).
			Msg("failed to log interaction")
		return 0, fmt.Errorf("log interaction: %w", err)
	}
	e.interactionsLogged.Add(1)

	if publisher != nil {
		if err := publisher.PublishInteraction(ctx, rec); err != nil {
			e.publishFailures.Add(1)
			e.logger.Warn().Err(err).
				Str("item_id", rec.ItemID).
				Msg("failed to publish interaction event")
		}
	}

	return count, nil
}

// commit performs append+increment under the writer lock.
//
//nolint:gocritic // hugeParam: rec passed by value for immutability
func (e *Engine) commit(ctx context.Context, rec storage.Interaction) (int64, InteractionPublisher, error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if err := e.log.Append(ctx, rec); err != nil {
		return 0, nil, err
	}
	return e.popularity.Increment(rec.ItemID), e.publisher, nil
}

// GetMetrics returns the current engine metrics.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:        e.requestCount.Load(),
		ErrorCount:          e.errorCount.Load(),
		InteractionsLogged:  e.interactionsLogged.Load(),
		InteractionFailures: e.interactionFailures.Load(),
		PublishFailures:     e.publishFailures.Load(),
		TrackedActivities:   e.popularity.Len(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// squash maps a non-negative bonus into [0, 1).
func squash(p float64) float64 {
	return p / (1 + p)
}

func roundScore(s float64) float64 {
	return math.Round(s*scoreScale) / scoreScale
}

func copyMinutes(m *int) *int {
	if m == nil {
		return nil
	}
	v := *m
	return &v
}
