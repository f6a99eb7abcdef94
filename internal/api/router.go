// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/nurture/internal/middleware"
	"github.com/tomtom215/nurture/internal/models"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	slowRequest   time.Duration
}

// NewRouter creates a router. A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// SetSlowRequestThreshold sets the latency above which requests are logged
// as warnings.
func (router *Router) SetSlowRequestThreshold(d time.Duration) {
	router.slowRequest = d
}

// Setup builds the HTTP handler.
//
//	GET  /health
//	GET  /metrics
//	GET  /api/v1/activities
//	GET  /api/v1/activities/{id}
//	POST /api/v1/recommendations
//	POST /api/v1/feedback
//	GET  /api/v1/popularity
//	POST /api/v1/assessments
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Get("/health", router.handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.AccessLog(router.slowRequest))

		r.Get("/activities", router.handler.ListActivities)
		r.Get("/activities/{id}", router.handler.GetActivity)
		r.Post("/recommendations", router.handler.Recommend)
		r.Post("/feedback", router.handler.Feedback)
		r.Get("/popularity", router.handler.Popularity)
		r.Post("/assessments", router.handler.Assess)
	})

	return r
}
