// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package recommend

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/nurture/internal/recommend/catalog"
	"github.com/tomtom215/nurture/internal/recommend/profile"
	"github.com/tomtom215/nurture/internal/recommend/storage"
)

// mockLog is an in-memory InteractionLog.
type mockLog struct {
	mu        sync.Mutex
	records   []storage.Interaction
	appendErr error
	replayErr error
}

func (m *mockLog) Append(_ context.Context, rec storage.Interaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *mockLog) Replay(_ context.Context, fn func(storage.Interaction) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replayErr != nil {
		return m.replayErr
	}
	for _, rec := range m.records {
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockLog) Close() error { return nil }

func (m *mockLog) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// mockPublisher records published interactions.
type mockPublisher struct {
	mu        sync.Mutex
	published []storage.Interaction
	err       error
	onPublish func()
}

func (m *mockPublisher) PublishInteraction(_ context.Context, rec storage.Interaction) error {
	if m.onPublish != nil {
		m.onPublish()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, rec)
	return m.err
}

func newTestEngine(t *testing.T, log storage.InteractionLog) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), catalog.Default(), log, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func ids(items []ActivityResult) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestNewEngine(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		e, err := NewEngine(nil, catalog.Default(), nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine() error = %v", err)
		}
		if e.GetConfig().Limits.DefaultK != 5 {
			t.Errorf("DefaultK = %d, want 5", e.GetConfig().Limits.DefaultK)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Limits.DefaultK = 0
		if _, err := NewEngine(cfg, catalog.Default(), nil, zerolog.Nop()); err == nil {
			t.Error("NewEngine() with invalid config should fail")
		}
	})

	t.Run("nil catalog", func(t *testing.T) {
		if _, err := NewEngine(nil, nil, nil, zerolog.Nop()); err == nil {
			t.Error("NewEngine() with nil catalog should fail")
		}
	})
}

func TestEngine_Recommend_SadLabel(t *testing.T) {
	e := newTestEngine(t, nil)

	resp, err := e.Recommend(context.Background(), Request{Metrics: profile.Metrics{}, Label: "sad"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if len(resp.Items) != 5 {
		t.Fatalf("len(Items) = %d, want default 5", len(resp.Items))
	}
	// u = (journaling+therapy+social)/sqrt3; a23 has journaling and therapy.
	top := resp.Items[0]
	if top.ID != "a23" {
		t.Errorf("top item = %s, want a23", top.ID)
	}
	want := roundScore(0.8 * 2 / (math.Sqrt(3) * math.Sqrt(2)))
	if top.Score != want {
		t.Errorf("top score = %v, want %v", top.Score, want)
	}
	if top.Minutes == nil || *top.Minutes != 20 {
		t.Errorf("top minutes = %v, want 20", top.Minutes)
	}
	if resp.Metadata.Signal != "emotion" || resp.Metadata.HasMetrics {
		t.Errorf("metadata = %+v, want emotion signal without metrics", resp.Metadata)
	}
	if resp.Metadata.RequestID == "" {
		t.Error("RequestID should be generated")
	}
}

func TestEngine_Recommend_SleepQuality(t *testing.T) {
	e := newTestEngine(t, nil)

	resp, err := e.Recommend(context.Background(), Request{
		Metrics: profile.Metrics{"sleep_quality": 30},
		Label:   "Neutral",
		K:       4,
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// Only the sleep tag is set: single-tag sleep items tie at 0.8 and keep
	// catalog order, then sleep+time_management items at 0.8/sqrt2.
	want := []string{"a19", "a25", "a4", "a13"}
	if got := ids(resp.Items); !reflect.DeepEqual(got, want) {
		t.Errorf("items = %v, want %v", got, want)
	}
	if resp.Items[0].Score != 0.8 {
		t.Errorf("top score = %v, want 0.8", resp.Items[0].Score)
	}
	if resp.Items[2].Score != roundScore(0.8/math.Sqrt2) {
		t.Errorf("third score = %v, want %v", resp.Items[2].Score, roundScore(0.8/math.Sqrt2))
	}
}

func TestEngine_Recommend_K(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		k    int
		want int
	}{
		{"zero uses default", 0, 5},
		{"one", 1, 1},
		{"whole catalog", 25, 25},
		{"larger than catalog", 40, 25},
		{"above max k", 1000, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := e.Recommend(ctx, Request{Label: "anxious", K: tt.k})
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if len(resp.Items) != tt.want {
				t.Errorf("len(Items) = %d, want %d", len(resp.Items), tt.want)
			}
			for i := 1; i < len(resp.Items); i++ {
				if resp.Items[i].Score > resp.Items[i-1].Score {
					t.Fatalf("items not sorted by non-increasing score at %d: %v > %v",
						i, resp.Items[i].Score, resp.Items[i-1].Score)
				}
			}
		})
	}

	t.Run("negative", func(t *testing.T) {
		if _, err := e.Recommend(ctx, Request{K: -1}); !errors.Is(err, ErrInvalidK) {
			t.Errorf("Recommend() error = %v, want ErrInvalidK", err)
		}
		if e.GetMetrics().ErrorCount != 1 {
			t.Errorf("ErrorCount = %d, want 1", e.GetMetrics().ErrorCount)
		}
	})
}

func TestEngine_Recommend_ZeroVectorKeepsCatalogOrder(t *testing.T) {
	e := newTestEngine(t, nil)

	resp, err := e.Recommend(context.Background(), Request{Label: "Skipped", K: 3})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	want := []string{"a1", "a2", "a3"}
	if got := ids(resp.Items); !reflect.DeepEqual(got, want) {
		t.Errorf("items = %v, want %v", got, want)
	}
	for _, it := range resp.Items {
		if it.Score != 0 {
			t.Errorf("score for %s = %v, want 0", it.ID, it.Score)
		}
	}
}

func TestEngine_Recommend_Deterministic(t *testing.T) {
	e := newTestEngine(t, nil)
	req := Request{
		Metrics: profile.Metrics{"anxiety_level": 14, "depression": "12", "study_load": 3.5},
		Label:   "Negative",
		K:       25,
	}

	first, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := e.Recommend(context.Background(), req)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if !reflect.DeepEqual(first.Items, again.Items) {
			t.Fatalf("run %d differs:\n%v\n%v", i, first.Items, again.Items)
		}
	}
}

func TestEngine_Recommend_ResultsAreCopies(t *testing.T) {
	e := newTestEngine(t, nil)

	resp, err := e.Recommend(context.Background(), Request{Label: "sad", K: 1})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	resp.Items[0].Tags[0] = "mutated"
	*resp.Items[0].Minutes = 999

	entry, err := e.Catalog().Get(resp.Items[0].ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if entry.Tags[0] == "mutated" || *entry.Minutes == 999 {
		t.Error("mutating a result changed the catalog")
	}
}

func TestEngine_Recommend_CanceledContext(t *testing.T) {
	e := newTestEngine(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Recommend(ctx, Request{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Recommend() error = %v, want context.Canceled", err)
	}
}

func TestEngine_LogInteraction_PopularityMonotonic(t *testing.T) {
	e := newTestEngine(t, &mockLog{})
	ctx := context.Background()
	req := Request{Metrics: profile.Metrics{"sleep_quality": 30}, Label: "Neutral", K: 25}

	scoreOf := func(id string) float64 {
		t.Helper()
		resp, err := e.Recommend(ctx, req)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		for _, it := range resp.Items {
			if it.ID == id {
				return it.Score
			}
		}
		t.Fatalf("%s not in results", id)
		return 0
	}

	prev := scoreOf("a25")
	for i := 0; i < 5; i++ {
		if _, err := e.LogInteraction(ctx, storage.Interaction{UserID: "u1", ItemID: "a25", Feedback: 1}); err != nil {
			t.Fatalf("LogInteraction() error = %v", err)
		}
		cur := scoreOf("a25")
		if cur < prev {
			t.Fatalf("score decreased after interaction %d: %v < %v", i, cur, prev)
		}
		prev = cur
	}

	resp, err := e.Recommend(ctx, req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Items[0].ID != "a25" {
		t.Errorf("top item = %s, want a25 after feedback", resp.Items[0].ID)
	}
	if resp.Metadata.PopularityTotal != 5 {
		t.Errorf("PopularityTotal = %d, want 5", resp.Metadata.PopularityTotal)
	}
}

func TestEngine_LogInteraction_CountsEventsNotMagnitude(t *testing.T) {
	e := newTestEngine(t, &mockLog{})
	ctx := context.Background()

	for _, fb := range []float64{1, -1, 0, 5} {
		if _, err := e.LogInteraction(ctx, storage.Interaction{UserID: "u1", ItemID: "a3", Feedback: fb}); err != nil {
			t.Fatalf("LogInteraction() error = %v", err)
		}
	}
	if got := e.Popularity().Count("a3"); got != 4 {
		t.Errorf("Count(a3) = %d, want 4", got)
	}
}

func TestEngine_LogInteraction_AppendFailureLeavesIndex(t *testing.T) {
	log := &mockLog{appendErr: errors.New("disk full")}
	e := newTestEngine(t, log)

	_, err := e.LogInteraction(context.Background(), storage.Interaction{UserID: "u1", ItemID: "a1", Feedback: 1})
	if err == nil {
		t.Fatal("LogInteraction() should return the append error")
	}
	if e.Popularity().Count("a1") != 0 {
		t.Error("popularity changed after a failed append")
	}
	if m := e.GetMetrics(); m.InteractionFailures != 1 || m.InteractionsLogged != 0 {
		t.Errorf("metrics = %+v, want one failure and nothing logged", m)
	}
}

func TestEngine_LogInteraction_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("no log", func(t *testing.T) {
		e := newTestEngine(t, nil)
		_, err := e.LogInteraction(ctx, storage.Interaction{UserID: "u1", ItemID: "a1"})
		if !errors.Is(err, ErrNoInteractionLog) {
			t.Errorf("error = %v, want ErrNoInteractionLog", err)
		}
	})

	t.Run("unknown item rejected when required", func(t *testing.T) {
		log := &mockLog{}
		cfg := DefaultConfig()
		cfg.Feedback.RequireKnownItem = true
		e, err := NewEngine(cfg, catalog.Default(), log, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine() error = %v", err)
		}
		_, err = e.LogInteraction(ctx, storage.Interaction{UserID: "u1", ItemID: "zz"})
		if !errors.Is(err, ErrUnknownActivity) {
			t.Errorf("error = %v, want ErrUnknownActivity", err)
		}
		if log.len() != 0 {
			t.Error("rejected interaction was appended")
		}
	})

	t.Run("unknown item counted by default", func(t *testing.T) {
		e := newTestEngine(t, &mockLog{})
		if _, err := e.LogInteraction(ctx, storage.Interaction{UserID: "u1", ItemID: "zz"}); err != nil {
			t.Errorf("LogInteraction() error = %v", err)
		}
		if e.Popularity().Count("zz") != 1 {
			t.Error("unknown item was not counted")
		}
	})

	t.Run("invalid record", func(t *testing.T) {
		e := newTestEngine(t, &mockLog{})
		_, err := e.LogInteraction(ctx, storage.Interaction{ItemID: "a1"})
		if !errors.Is(err, storage.ErrInvalidInteraction) {
			t.Errorf("error = %v, want ErrInvalidInteraction", err)
		}
	})
}

func TestEngine_LogInteraction_Publishes(t *testing.T) {
	e := newTestEngine(t, &mockLog{})

	pub := &mockPublisher{err: errors.New("bus down")}
	// Publishing runs outside the writer lock, so taking it here must not deadlock.
	pub.onPublish = func() { e.SetPublisher(pub) }
	e.SetPublisher(pub)

	count, err := e.LogInteraction(context.Background(), storage.Interaction{UserID: "u1", ItemID: "a2", Feedback: 1})
	if err != nil {
		t.Fatalf("LogInteraction() error = %v, publish errors must not be returned", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if len(pub.published) != 1 || pub.published[0].ItemID != "a2" {
		t.Errorf("published = %+v, want one a2 event", pub.published)
	}
	if pub.published[0].Timestamp.IsZero() {
		t.Error("published interaction should carry a timestamp")
	}
	if e.GetMetrics().PublishFailures != 1 {
		t.Errorf("PublishFailures = %d, want 1", e.GetMetrics().PublishFailures)
	}
}

func TestEngine_LoadPopularity_RoundTrip(t *testing.T) {
	log, err := storage.NewCSVLog(storage.CSVConfig{Path: filepath.Join(t.TempDir(), "interactions.csv")})
	if err != nil {
		t.Fatalf("NewCSVLog() error = %v", err)
	}
	defer func() { _ = log.Close() }()

	live := newTestEngine(t, log)
	ctx := context.Background()
	for _, rec := range []storage.Interaction{
		{UserID: "u1", ItemID: "a1", Feedback: 1},
		{UserID: "u2", ItemID: "a1", Feedback: 1},
		{UserID: "u3", ItemID: "a2", Feedback: 1},
	} {
		if _, err := live.LogInteraction(ctx, rec); err != nil {
			t.Fatalf("LogInteraction() error = %v", err)
		}
	}

	restarted := newTestEngine(t, log)
	if n := restarted.LoadPopularity(ctx); n != 2 {
		t.Errorf("LoadPopularity() = %d, want 2", n)
	}

	want := map[string]int64{"a1": 2, "a2": 1}
	if got := map[string]int64(restarted.Popularity()); !reflect.DeepEqual(got, want) {
		t.Errorf("replayed popularity = %v, want %v", got, want)
	}
	if got := map[string]int64(live.Popularity()); !reflect.DeepEqual(got, want) {
		t.Errorf("incremental popularity = %v, want %v", got, want)
	}
}

func TestEngine_LoadPopularity_CorruptLog(t *testing.T) {
	log := &mockLog{
		records:   []storage.Interaction{{UserID: "u1", ItemID: "a1"}},
		replayErr: errors.New("corrupt"),
	}
	e := newTestEngine(t, log)

	if n := e.LoadPopularity(context.Background()); n != 0 {
		t.Errorf("LoadPopularity() = %d, want 0", n)
	}
}

func TestEngine_ConcurrentLogAndRecommend(t *testing.T) {
	log := &mockLog{}
	e := newTestEngine(t, log)
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if _, err := e.LogInteraction(ctx, storage.Interaction{UserID: "u1", ItemID: "a8", Feedback: 1}); err != nil {
					t.Errorf("LogInteraction() error = %v", err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if _, err := e.Recommend(ctx, Request{Label: "lonely"}); err != nil {
					t.Errorf("Recommend() error = %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := e.Popularity().Count("a8"); got != 200 || log.len() != 200 {
		t.Errorf("count = %d, log = %d, want 200 each", got, log.len())
	}
}
