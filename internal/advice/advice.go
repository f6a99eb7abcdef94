// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package advice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/nurture/internal/recommend/profile"
)

// ErrInvalidStressLevel is returned by Assess for a level outside 0..2.
var ErrInvalidStressLevel = errors.New("invalid stress level")

// StressLevel is the output of the external stress classifier.
type StressLevel int

const (
	// StressLow is classifier class 0.
	StressLow StressLevel = iota
	// StressMedium is classifier class 1.
	StressMedium
	// StressHigh is classifier class 2.
	StressHigh
)

// String returns the level name.
func (l StressLevel) String() string {
	switch l {
	case StressLow:
		return "low"
	case StressMedium:
		return "medium"
	case StressHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Valid reports whether l is one of the three classifier classes.
func (l StressLevel) Valid() bool {
	return l >= StressLow && l <= StressHigh
}

// Advice texts.
const (
	TextHigh       = "Your stress markers are high. Please take a break immediately."
	TextMediumDown = "You seem a bit down. Try a short walk or meditation."
	TextMedium     = "You are doing okay, but watch your workload."
	TextLow        = "You are doing great! Keep up the good work."
	TextNoConsent  = "Consent not provided for text analysis."
)

// Input is one check-in assessment request.
type Input struct {
	StressLevel StressLevel
	// Sentiment is the coarse label from the external sentiment classifier.
	Sentiment string
	// Consent allows the free-text sentiment to be used.
	Consent bool
}

// Assessment is the outcome of Assess.
type Assessment struct {
	StressLevel StressLevel `json:"stress_level"`
	Stress      string      `json:"stress"`
	Sentiment   string      `json:"sentiment"`
	Advice      string      `json:"advice"`
	// RiskFlag is set for high stress with negative sentiment.
	RiskFlag bool `json:"risk_flag"`
	// SentimentText explains a skipped sentiment; empty otherwise.
	SentimentText string `json:"sentiment_text,omitempty"`
}

// Advice returns the advice line for a stress level and sentiment label.
// Sentiment is compared case-insensitively.
func Advice(level StressLevel, sentiment string) string {
	switch {
	case level == StressHigh:
		return TextHigh
	case level == StressMedium && isNegative(sentiment):
		return TextMediumDown
	case level == StressMedium:
		return TextMedium
	default:
		return TextLow
	}
}

// Assess combines the classifier outputs into advice. Without consent the
// sentiment is replaced by "Skipped" and the advice is TextNoConsent.
func Assess(in Input) (Assessment, error) {
	if !in.StressLevel.Valid() {
		return Assessment{}, fmt.Errorf("%w: must be 0, 1 or 2, got %d", ErrInvalidStressLevel, in.StressLevel)
	}

	out := Assessment{
		StressLevel: in.StressLevel,
		Stress:      in.StressLevel.String(),
		Sentiment:   canonicalSentiment(in.Sentiment),
	}
	if in.Consent {
		out.Advice = Advice(in.StressLevel, out.Sentiment)
	} else {
		out.Sentiment = string(profile.SentimentSkipped)
		out.SentimentText = TextNoConsent
		out.Advice = TextNoConsent
	}

	out.RiskFlag = in.StressLevel == StressHigh && isNegative(out.Sentiment)
	return out, nil
}

func isNegative(sentiment string) bool {
	return strings.EqualFold(strings.TrimSpace(sentiment), string(profile.SentimentNegative))
}

// canonicalSentiment maps known coarse labels to their canonical spelling
// and passes anything else through trimmed.
func canonicalSentiment(s string) string {
	s = strings.TrimSpace(s)
	for _, known := range []profile.Sentiment{
		profile.SentimentPositive,
		profile.SentimentNegative,
		profile.SentimentNeutral,
		profile.SentimentSkipped,
	} {
		if strings.EqualFold(s, string(known)) {
			return string(known)
		}
	}
	if s == "" {
		return string(profile.SentimentNeutral)
	}
	return s
}
