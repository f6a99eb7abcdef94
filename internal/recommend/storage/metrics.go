// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package storage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Backend label values.
const (
	BackendCSV    = "csv"
	BackendBadger = "badger"
)

// Prometheus metrics for interaction log operations
var (
	// interactionAppendsTotal counts successful appends.
	interactionAppendsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interaction_log_appends_total",
		Help: "Total number of interactions appended to the log",
	}, []string{"backend"})

	// interactionAppendFailures counts failed appends.
	interactionAppendFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interaction_log_append_failures_total",
		Help: "Total number of failed interaction log appends",
	}, []string{"backend"})

	// interactionAppendLatency measures append latency.
	interactionAppendLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "interaction_log_append_latency_seconds",
		Help:    "Interaction log append latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend"})

	// interactionReplayedTotal counts records read back on startup.
	interactionReplayedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interaction_log_replayed_total",
		Help: "Total number of interactions replayed from the log",
	})

	// interactionReplayFailures counts replays that ended in an error.
	interactionReplayFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interaction_log_replay_failures_total",
		Help: "Total number of interaction log replays that failed",
	})

	// interactionReplaySkipped counts rows the CSV reader could not parse.
	interactionReplaySkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interaction_log_replay_skipped_rows_total",
		Help: "Total number of unparseable rows skipped during replay",
	})

	// interactionBreakerState is the write breaker state (0=closed, 1=half-open, 2=open).
	interactionBreakerState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "interaction_log_circuit_breaker_state",
		Help: "Interaction log circuit breaker state (0=closed, 1=half-open, 2=open)",
	})

	// interactionBreakerRejected counts appends rejected by the open breaker.
	interactionBreakerRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interaction_log_circuit_breaker_rejected_total",
		Help: "Total number of appends rejected by the open circuit breaker",
	})
)

// RecordAppend increments the successful append counter.
func RecordAppend(backend string) {
	interactionAppendsTotal.WithLabelValues(backend).Inc()
}

// RecordAppendFailure increments the failed append counter.
func RecordAppendFailure(backend string) {
	interactionAppendFailures.WithLabelValues(backend).Inc()
}

// RecordAppendLatency records the latency of an append in seconds.
func RecordAppendLatency(backend string, seconds float64) {
	interactionAppendLatency.WithLabelValues(backend).Observe(seconds)
}

// RecordReplayed adds n to the replayed record counter.
func RecordReplayed(n int) {
	interactionReplayedTotal.Add(float64(n))
}

// RecordReplayFailure increments the failed replay counter.
func RecordReplayFailure() {
	interactionReplayFailures.Inc()
}

// RecordReplaySkipped increments the skipped row counter.
func RecordReplaySkipped() {
	interactionReplaySkipped.Inc()
}

// SetBreakerState sets the breaker state gauge.
func SetBreakerState(state float64) {
	interactionBreakerState.Set(state)
}

// RecordBreakerRejected increments the rejected append counter.
func RecordBreakerRejected() {
	interactionBreakerRejected.Inc()
}
