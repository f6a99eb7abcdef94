// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package models

import (
	"time"

	"github.com/tomtom215/nurture/internal/advice"
	"github.com/tomtom215/nurture/internal/recommend"
	"github.com/tomtom215/nurture/internal/recommend/profile"
)

// Activity is a catalog entry as served by GET /api/v1/activities.
type Activity struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Tags    []string `json:"tags"`
	Minutes *int     `json:"duration_minutes"`
}

// ActivityList is the body of GET /api/v1/activities.
type ActivityList struct {
	Activities []Activity `json:"activities"`
	Tags       []string   `json:"tags"`
	Total      int        `json:"total"`
}

// RecommendationRequest is the body of POST /api/v1/recommendations.
// Metric values may be numbers, numeric strings or booleans; anything else
// counts as zero.
type RecommendationRequest struct {
	Metrics map[string]interface{} `json:"metrics" validate:"max=32,dive,keys,ident,endkeys"`
	Label   string                 `json:"label" validate:"max=64"`
	TopK    int                    `json:"top_k" validate:"gte=0,lte=1000"`
}

// FeedbackRequest is the body of POST /api/v1/feedback.
type FeedbackRequest struct {
	UserID   string  `json:"user_id" validate:"required,max=128"`
	ItemID   string  `json:"item_id" validate:"required,ident"`
	Feedback float64 `json:"feedback" validate:"finite"`
}

// FeedbackResponse reports the item's popularity after the interaction.
type FeedbackResponse struct {
	ItemID     string    `json:"item_id"`
	Count      int64     `json:"count"`
	RecordedAt time.Time `json:"recorded_at"`
}

// PopularityEntry is one item of GET /api/v1/popularity.
type PopularityEntry struct {
	ItemID   string  `json:"item_id"`
	Count    int64   `json:"count"`
	Bonus    float64 `json:"bonus"`
	Positive int64   `json:"positive,omitempty"`
	Negative int64   `json:"negative,omitempty"`
	Neutral  int64   `json:"neutral,omitempty"`
}

// PopularityResponse is the body of GET /api/v1/popularity.
type PopularityResponse struct {
	Total int64             `json:"total"`
	Items []PopularityEntry `json:"items"`
}

// AssessmentRequest is the body of POST /api/v1/assessments. StressLevel and
// Sentiment are classifier outputs supplied by the caller. Metrics takes
// precedence over CheckIn when both are present.
type AssessmentRequest struct {
	StressLevel int                    `json:"stress_level" validate:"gte=0,lte=2"`
	Sentiment   string                 `json:"sentiment" validate:"omitempty,max=32"`
	Consent     bool                   `json:"consent"`
	Metrics     map[string]interface{} `json:"metrics,omitempty" validate:"max=32,dive,keys,ident,endkeys"`
	CheckIn     *profile.CheckIn       `json:"check_in,omitempty"`
	TopK        int                    `json:"top_k" validate:"gte=0,lte=1000"`
}

// AssessmentResponse combines advice with personalized recommendations.
type AssessmentResponse struct {
	advice.Assessment
	Recommendations []recommend.ActivityResult `json:"recommendations"`
}
