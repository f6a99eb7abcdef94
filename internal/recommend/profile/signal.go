// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package profile

import (
	"strings"

	"github.com/tomtom215/nurture/internal/recommend/catalog"
)

// SignalKind discriminates the emotional signal attached to a request.
type SignalKind int

const (
	// KindNone carries no boost: Neutral, Skipped and unrecognized labels.
	KindNone SignalKind = iota
	// KindEmotion is a fine-grained emotion such as "lonely" or "grateful".
	KindEmotion
	// KindSentiment is a coarse Positive/Negative sentiment class.
	KindSentiment
)

// String returns the kind name used in logs and API metadata.
func (k SignalKind) String() string {
	switch k {
	case KindEmotion:
		return "emotion"
	case KindSentiment:
		return "sentiment"
	default:
		return "none"
	}
}

// Sentiment is a coarse sentiment class produced by the sentiment engine.
type Sentiment string

// Coarse sentiment vocabulary.
const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentSkipped  Sentiment = "Skipped"
)

// Signal is the parsed form of an emotion or sentiment label.
type Signal struct {
	Kind      SignalKind
	Emotion   string    // set for KindEmotion, lower-cased
	Sentiment Sentiment // set for KindSentiment, and for Neutral/Skipped under KindNone
}

// EmotionTags maps each fine-grained emotion to the tags it favors.
var EmotionTags = map[string][]string{
	"angry":        {catalog.TagBreathing, catalog.TagMindfulness, catalog.TagExercise},
	"furious":      {catalog.TagBreathing, catalog.TagExercise},
	"annoyed":      {catalog.TagBreathing, catalog.TagMindfulness},
	"afraid":       {catalog.TagBreathing, catalog.TagTherapy, catalog.TagMindfulness},
	"terrified":    {catalog.TagBreathing, catalog.TagTherapy},
	"anxious":      {catalog.TagBreathing, catalog.TagMindfulness},
	"apprehensive": {catalog.TagMindfulness},
	"sad":          {catalog.TagJournaling, catalog.TagTherapy, catalog.TagSocial},
	"lonely":       {catalog.TagSocial, catalog.TagJournaling},
	"devastated":   {catalog.TagTherapy, catalog.TagJournaling},
	"disappointed": {catalog.TagJournaling, catalog.TagMindfulness},
	"joyful":       {catalog.TagSocial, catalog.TagExercise},
	"excited":      {catalog.TagSocial, catalog.TagExercise},
	"happy":        {catalog.TagSocial, catalog.TagExercise},
	"content":      {catalog.TagMindfulness, catalog.TagJournaling},
	"grateful":     {catalog.TagJournaling},
	"proud":        {catalog.TagSocial, catalog.TagJournaling},
	"confident":    {catalog.TagSocial, catalog.TagTimeManagement},
	"faithful":     {catalog.TagMindfulness, catalog.TagSocial},
	"trusting":     {catalog.TagSocial},
	"jealous":      {catalog.TagJournaling, catalog.TagMindfulness},
	"ashamed":      {catalog.TagJournaling, catalog.TagTherapy},
	"guilty":       {catalog.TagJournaling, catalog.TagTherapy},
	"disgusted":    {catalog.TagBreathing},
	"surprised":    {catalog.TagMindfulness},
	"nostalgic":    {catalog.TagJournaling, catalog.TagSocial},
	"sentimental":  {catalog.TagJournaling},
	"hopeful":      {catalog.TagTimeManagement, catalog.TagJournaling},
	"prepared":     {catalog.TagTimeManagement},
	"anticipating": {catalog.TagTimeManagement},
	"caring":       {catalog.TagSocial},
	"impressed":    {catalog.TagSocial},
}

// sentimentBoost describes the fixed boost applied for a coarse sentiment.
type sentimentBoost struct {
	weight float64
	tags   []string
}

var sentimentBoosts = map[Sentiment]sentimentBoost{
	SentimentNegative: {
		weight: 0.8,
		tags:   []string{catalog.TagTherapy, catalog.TagJournaling, catalog.TagSocial, catalog.TagBreathing},
	},
	SentimentPositive: {
		weight: 0.5,
		tags:   []string{catalog.TagExercise, catalog.TagTimeManagement, catalog.TagSocial},
	},
}

// emotionWeight is the per-tag weight of a fine-grained emotion before boost.
const emotionWeight = 1.0

// ParseSignal classifies a free-form label. Fine-grained emotions win over
// coarse sentiments; both are matched case-insensitively after trimming.
func ParseSignal(label string) Signal {
	key := strings.ToLower(strings.TrimSpace(label))
	if key == "" {
		return Signal{Kind: KindNone}
	}

	if _, ok := EmotionTags[key]; ok {
		return Signal{Kind: KindEmotion, Emotion: key}
	}

	switch key {
	case "positive":
		return Signal{Kind: KindSentiment, Sentiment: SentimentPositive}
	case "negative":
		return Signal{Kind: KindSentiment, Sentiment: SentimentNegative}
	case "neutral":
		return Signal{Kind: KindNone, Sentiment: SentimentNeutral}
	case "skipped":
		return Signal{Kind: KindNone, Sentiment: SentimentSkipped}
	}

	return Signal{Kind: KindNone}
}

// boostTags returns the per-tag weight (before the sentiment boost factor)
// and tag list for the signal.
func (s Signal) boostTags() (float64, []string) {
	switch s.Kind {
	case KindEmotion:
		return emotionWeight, EmotionTags[s.Emotion]
	case KindSentiment:
		b := sentimentBoosts[s.Sentiment]
		return b.weight, b.tags
	case KindNone:
		return 0, nil
	}
	return 0, nil
}
