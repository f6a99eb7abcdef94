// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package profile

import (
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/nurture/internal/recommend/catalog"
)

// Metrics is an open mapping of self-reported user metrics. Values may be
// any numeric type, a numeric string or a bool; anything else reads as 0.
type Metrics map[string]any

// Known metric field names.
const (
	FieldSleepQuality    = "sleep_quality"
	FieldAnxietyLevel    = "anxiety_level"
	FieldDepression      = "depression"
	FieldSelfEsteem      = "self_esteem"
	FieldAcademicPerf    = "academic_performance"
	FieldStudyLoad       = "study_load"
	FieldExtracurricular = "extracurricular_activities"
	FieldBasicNeeds      = "basic_needs"
)

// TagWeight is one (tag, weight) pair of a field mapping.
type TagWeight struct {
	Tag    string
	Weight float64
}

// FieldMapping ties one metric field to the tags it pushes.
type FieldMapping struct {
	Field   string
	Weights []TagWeight
}

// FieldWeights is the static field to tag-weight table, in evaluation order.
// Fields absent from this table still count toward "has metrics" but add no
// tag weight.
var FieldWeights = []FieldMapping{
	{FieldSleepQuality, []TagWeight{
		{catalog.TagSleep, 1.0},
	}},
	{FieldAnxietyLevel, []TagWeight{
		{catalog.TagMindfulness, 0.6},
		{catalog.TagBreathing, 0.6},
		{catalog.TagTherapy, 0.4},
	}},
	{FieldDepression, []TagWeight{
		{catalog.TagSocial, 0.5},
		{catalog.TagJournaling, 0.6},
		{catalog.TagTherapy, 0.6},
	}},
	{FieldSelfEsteem, []TagWeight{
		{catalog.TagSocial, 0.3},
		{catalog.TagJournaling, 0.2},
	}},
	{FieldAcademicPerf, []TagWeight{
		{catalog.TagTimeManagement, 0.6},
	}},
	{FieldStudyLoad, []TagWeight{
		{catalog.TagTimeManagement, 0.6},
	}},
	{FieldExtracurricular, []TagWeight{
		{catalog.TagSocial, 0.4},
		{catalog.TagExercise, 0.4},
	}},
}

// Float coerces a metric value to float64. Values that cannot be coerced,
// including NaN and infinities, read as 0.
func Float(v any) float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case bool:
		if x {
			f = 1
		}
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case interface{ Float64() (float64, error) }:
		parsed, err := x.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Normalize compresses a raw metric onto a comparable scale. Values above
// 20 saturate toward 1 as v/(v+10); everything else is read as a 0-10 score.
func Normalize(v float64) float64 {
	if v > 20 {
		return v / (v + 10)
	}
	return v / 10.0
}

// HasSignal reports whether any metric value is strictly positive.
func (m Metrics) HasSignal() bool {
	for _, v := range m {
		if Float(v) > 0 {
			return true
		}
	}
	return false
}
