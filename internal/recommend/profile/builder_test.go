// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package profile

import (
	"math"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nurture/internal/recommend/catalog"
)

const tolerance = 1e-9

func newTestBuilder() *Builder {
	return NewBuilder(catalog.DefaultVocabulary())
}

func idx(t *testing.T, tag string) int {
	t.Helper()
	i, ok := catalog.DefaultVocabulary().Index(tag)
	if !ok {
		t.Fatalf("unknown tag %q", tag)
	}
	return i
}

func l2(vec []float64) float64 {
	var s float64
	for _, x := range vec {
		s += x * x
	}
	return math.Sqrt(s)
}

func TestBuild_EmotionWithoutMetrics(t *testing.T) {
	b := newTestBuilder()

	vec := b.Build(Metrics{}, "sad")

	want := 1 / math.Sqrt(3)
	nonZero := map[int]bool{
		idx(t, catalog.TagJournaling): true,
		idx(t, catalog.TagTherapy):    true,
		idx(t, catalog.TagSocial):     true,
	}
	for i, x := range vec {
		if nonZero[i] {
			if math.Abs(x-want) > tolerance {
				t.Errorf("component %d = %f, want %f", i, x, want)
			}
		} else if x != 0 {
			t.Errorf("component %d = %f, want 0", i, x)
		}
	}
}

func TestBuild_SaturatingMetric(t *testing.T) {
	b := newTestBuilder()

	if got := Normalize(30); math.Abs(got-0.75) > tolerance {
		t.Fatalf("Normalize(30) = %f, want 0.75", got)
	}

	vec := b.Build(Metrics{FieldSleepQuality: 30}, "Neutral")

	sleep := idx(t, catalog.TagSleep)
	for i, x := range vec {
		want := 0.0
		if i == sleep {
			want = 1.0
		}
		if math.Abs(x-want) > tolerance {
			t.Errorf("component %d = %f, want %f", i, x, want)
		}
	}
}

func TestBuild_SentimentBoostFactor(t *testing.T) {
	b := newTestBuilder()
	sleep := idx(t, catalog.TagSleep)
	journaling := idx(t, catalog.TagJournaling)

	t.Run("positive metric uses 1.2", func(t *testing.T) {
		// sleep_quality 10 normalizes to 1.0, grateful adds 1.2 to journaling.
		vec := b.Build(Metrics{FieldSleepQuality: 10}, "grateful")
		if ratio := vec[journaling] / vec[sleep]; math.Abs(ratio-1.2) > tolerance {
			t.Errorf("journaling/sleep = %f, want 1.2", ratio)
		}
	})

	t.Run("unmapped positive metric still counts", func(t *testing.T) {
		vec := b.Build(Metrics{FieldBasicNeeds: 4, FieldSleepQuality: 10}, "grateful")
		if ratio := vec[journaling] / vec[sleep]; math.Abs(ratio-1.2) > tolerance {
			t.Errorf("journaling/sleep = %f, want 1.2", ratio)
		}
	})

	t.Run("zero metrics use 2.0", func(t *testing.T) {
		// sleep 0 contributes nothing, so boost is 2.0 and only journaling is set.
		vec := b.Build(Metrics{FieldSleepQuality: 0}, "grateful")
		if math.Abs(vec[journaling]-1) > tolerance || vec[sleep] != 0 {
			t.Errorf("vec = %v, want unit journaling", vec)
		}
	})
}

func TestBuild_CoarseSentiment(t *testing.T) {
	b := newTestBuilder()

	tests := []struct {
		label string
		tags  []string
	}{
		{"Negative", []string{catalog.TagTherapy, catalog.TagJournaling, catalog.TagSocial, catalog.TagBreathing}},
		{"negative", []string{catalog.TagTherapy, catalog.TagJournaling, catalog.TagSocial, catalog.TagBreathing}},
		{"Positive", []string{catalog.TagExercise, catalog.TagTimeManagement, catalog.TagSocial}},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			vec := b.Build(nil, tt.label)
			want := 1 / math.Sqrt(float64(len(tt.tags)))
			for _, tag := range tt.tags {
				if got := vec[idx(t, tag)]; math.Abs(got-want) > tolerance {
					t.Errorf("%s = %f, want %f", tag, got, want)
				}
			}
			if n := l2(vec); math.Abs(n-1) > 1e-6 {
				t.Errorf("norm = %f, want 1", n)
			}
		})
	}
}

func TestBuild_SentimentMagnitudes(t *testing.T) {
	b := newTestBuilder()
	sleep := idx(t, catalog.TagSleep)
	therapy := idx(t, catalog.TagTherapy)
	exercise := idx(t, catalog.TagExercise)

	neg := b.Build(Metrics{FieldSleepQuality: 10}, "Negative")
	if ratio := neg[therapy] / neg[sleep]; math.Abs(ratio-0.8*1.2) > tolerance {
		t.Errorf("Negative therapy/sleep = %f, want %f", ratio, 0.8*1.2)
	}

	pos := b.Build(Metrics{FieldSleepQuality: 10}, "Positive")
	if ratio := pos[exercise] / pos[sleep]; math.Abs(ratio-0.5*1.2) > tolerance {
		t.Errorf("Positive exercise/sleep = %f, want %f", ratio, 0.5*1.2)
	}
}

func TestBuild_NoContributionYieldsZeroVector(t *testing.T) {
	b := newTestBuilder()

	labels := []string{"Neutral", "Skipped", "", "bewildered"}
	for _, label := range labels {
		t.Run(label, func(t *testing.T) {
			vec := b.Build(Metrics{"unknown_field": -3, FieldSleepQuality: "not a number"}, label)
			for i, x := range vec {
				if x != 0 {
					t.Errorf("component %d = %f, want 0", i, x)
				}
			}
		})
	}
}

func TestBuild_UnitNorm(t *testing.T) {
	b := newTestBuilder()

	tests := []struct {
		name    string
		metrics Metrics
		label   string
	}{
		{"all fields", Metrics{
			FieldSleepQuality: 3, FieldAnxietyLevel: 15, FieldDepression: 21,
			FieldSelfEsteem: 25, FieldAcademicPerf: 2, FieldStudyLoad: 4, FieldExtracurricular: 1,
		}, "anxious"},
		{"large values", Metrics{FieldStudyLoad: 1e9}, "Neutral"},
		{"string values", Metrics{FieldAnxietyLevel: "7", FieldDepression: " 2.5 "}, "Negative"},
		{"emotion only", nil, "Lonely"},
		{"negative metric", Metrics{FieldDepression: -4}, "happy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vec := b.Build(tt.metrics, tt.label)
			if n := l2(vec); math.Abs(n-1) > 1e-6 {
				t.Errorf("norm = %f, want 1", n)
			}
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	b := newTestBuilder()
	m := Metrics{
		FieldDepression: 6, FieldSelfEsteem: 30, FieldExtracurricular: 2, FieldAnxietyLevel: 8,
	}

	first := b.Build(m, "proud")
	for i := 0; i < 50; i++ {
		again := b.Build(m, "proud")
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d component %d: %v != %v", i, j, again[j], first[j])
			}
		}
	}
}

func TestBuild_AcceptsDecodedJSON(t *testing.T) {
	b := newTestBuilder()

	var m Metrics
	if err := json.Unmarshal([]byte(`{"sleep_quality": 30, "anxiety_level": "4"}`), &m); err != nil {
		t.Fatal(err)
	}

	vec := b.Build(m, "")
	if vec[idx(t, catalog.TagSleep)] == 0 || vec[idx(t, catalog.TagBreathing)] == 0 {
		t.Errorf("decoded metrics did not contribute: %v", vec)
	}
}

func TestParseSignal(t *testing.T) {
	tests := []struct {
		label string
		kind  SignalKind
	}{
		{"sad", KindEmotion},
		{"  Anxious ", KindEmotion},
		{"GRATEFUL", KindEmotion},
		{"Positive", KindSentiment},
		{"NEGATIVE", KindSentiment},
		{"Neutral", KindNone},
		{"Skipped", KindNone},
		{"", KindNone},
		{"meh", KindNone},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := ParseSignal(tt.label).Kind; got != tt.kind {
				t.Errorf("ParseSignal(%q).Kind = %v, want %v", tt.label, got, tt.kind)
			}
		})
	}
}

func TestEmotionTags_UseVocabulary(t *testing.T) {
	vocab := catalog.DefaultVocabulary()
	if len(EmotionTags) != 32 {
		t.Errorf("len(EmotionTags) = %d, want 32", len(EmotionTags))
	}
	for emotion, tags := range EmotionTags {
		for _, tag := range tags {
			if _, ok := vocab.Index(tag); !ok {
				t.Errorf("%s: tag %q not in vocabulary", emotion, tag)
			}
		}
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float64", 2.5, 2.5},
		{"int", 3, 3},
		{"uint8", uint8(7), 7},
		{"numeric string", "4.5", 4.5},
		{"garbage string", "high", 0},
		{"bool true", true, 1},
		{"nil", nil, 0},
		{"NaN string", "NaN", 0},
		{"slice", []int{1}, 0},
		{"json number", json.Number("6"), 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Float(tt.in); got != tt.want {
				t.Errorf("Float(%v) = %f, want %f", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromCheckIn(t *testing.T) {
	tests := []struct {
		name      string
		in        CheckIn
		wantSleep int
	}{
		{"eight hours", CheckIn{SleepHours: 8, WaterIntake: 2, PhysicalActivity: 30}, 4},
		{"clamped high", CheckIn{SleepHours: 14}, 5},
		{"odd hours truncate", CheckIn{SleepHours: 7}, 3},
		{"negative clamps to zero", CheckIn{SleepHours: -3}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := FromCheckIn(tt.in)
			if got := m[FieldSleepQuality]; got != tt.wantSleep {
				t.Errorf("sleep_quality = %v, want %d", got, tt.wantSleep)
			}
			if got := m[FieldExtracurricular]; got != int(tt.in.PhysicalActivity) {
				t.Errorf("extracurricular = %v, want %d", got, int(tt.in.PhysicalActivity))
			}
			if got := m[FieldBasicNeeds]; got != int(tt.in.WaterIntake) {
				t.Errorf("basic_needs = %v, want %d", got, int(tt.in.WaterIntake))
			}
		})
	}
}
