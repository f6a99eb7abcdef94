// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	CatalogSize       int     `json:"catalog_size"`
	TrackedActivities int     `json:"tracked_activities"`
	InteractionLog    string  `json:"interaction_log,omitempty"`
	Uptime            float64 `json:"uptime_seconds"`
}

// Health handles GET /health. It always answers 200; Status is "degraded"
// while the interaction log breaker is open, since recommendations still work.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:            "healthy",
		Version:           h.version,
		CatalogSize:       h.engine.Catalog().Len(),
		TrackedActivities: h.engine.GetMetrics().TrackedActivities,
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if h.logState != nil {
		status.InteractionLog = h.logState()
		if status.InteractionLog == "open" {
			status.Status = "degraded"
		}
	}

	respondSuccess(w, r, http.StatusOK, status, time.Time{})
}
