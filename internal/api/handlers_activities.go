// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/nurture/internal/models"
	"github.com/tomtom215/nurture/internal/recommend/catalog"
)

// ListActivities handles GET /api/v1/activities.
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cat := h.engine.Catalog()

	acts := cat.Activities()
	out := make([]models.Activity, len(acts))
	for i := range acts {
		out[i] = toActivity(acts[i])
	}

	respondSuccess(w, r, http.StatusOK, models.ActivityList{
		Activities: out,
		Tags:       cat.Vocabulary().Tags(),
		Total:      len(out),
	}, start)
}

// GetActivity handles GET /api/v1/activities/{id}.
func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	entry, err := h.engine.Catalog().Get(id)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, toActivity(entry.Activity), start)
}

func toActivity(a catalog.Activity) models.Activity {
	return models.Activity{ID: a.ID, Title: a.Title, Tags: a.Tags, Minutes: a.Minutes}
}
