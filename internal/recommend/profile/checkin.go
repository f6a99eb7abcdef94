// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package profile

// CheckIn is the short daily form collected by the mobile client.
type CheckIn struct {
	SleepHours       float64 `json:"sleep_hours" validate:"min=0,max=24"`
	WaterIntake      float64 `json:"water_intake" validate:"min=0,max=50"`
	PhysicalActivity float64 `json:"physical_activity" validate:"min=0,max=100"`
}

// FromCheckIn maps a check-in onto the metric fields the builder knows.
// Sleep hours become a 0-5 quality score; water intake lands on
// basic_needs, which only influences the sentiment boost factor.
func FromCheckIn(c CheckIn) Metrics {
	quality := int(c.SleepHours / 2)
	if quality < 0 {
		quality = 0
	}
	if quality > 5 {
		quality = 5
	}

	return Metrics{
		FieldSleepQuality:    quality,
		FieldExtracurricular: int(c.PhysicalActivity),
		FieldBasicNeeds:      int(c.WaterIntake),
	}
}
