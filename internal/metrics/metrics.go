// Cordial - Cocktail Catalog and List Management
// Copyright 2026 Cordial Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cordialhq/cordial

// Package metrics defines the Prometheus instrumentation for the catalog:
// API request latency and throughput, list membership mutations, and login
// outcomes. Metrics are registered on the default registry and served by
// the /metrics endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// List subsystem metrics
	FavoriteToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorite_toggles_total",
			Help: "Total favorite toggles by resulting action",
		},
		[]string{"action"},
	)

	BulkOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bulk_operations_total",
			Help: "Total bulk list operations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	ListsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lists_created_total",
			Help: "Total lists created by list type",
		},
		[]string{"list_type"},
	)

	// Auth metrics
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total login attempts by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordFavoriteToggle records one toggle by its resulting action.
func RecordFavoriteToggle(action string) {
	FavoriteToggles.WithLabelValues(action).Inc()
}

// RecordBulkOperation records one bulk call. outcome is "success" or the
// gate that refused it.
func RecordBulkOperation(operation, outcome string) {
	BulkOperations.WithLabelValues(operation, outcome).Inc()
}

// RecordListCreated records a list creation by type.
func RecordListCreated(listType string) {
	ListsCreated.WithLabelValues(listType).Inc()
}

// RecordLoginAttempt records a login by outcome ("success", "failure",
// "rate_limited").
func RecordLoginAttempt(outcome string) {
	LoginAttempts.WithLabelValues(outcome).Inc()
}
