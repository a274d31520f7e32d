// Copyright (C) 2025 MeetMind AI (dev@meetmind.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides metrics and instrumentation for the
// orchestrator.
//
// # Description
//
// This package implements Prometheus metrics for monitoring assignee
// recommendation and index maintenance. Metrics include:
//   - Recommendation counters (by outcome source)
//   - Stage latency histograms (expand, retrieve, rank)
//   - Retrieval result-count histogram
//   - Reindex counters and document counts
//
// # Integration
//
// Metrics are exposed via the /metrics endpoint. Use with Prometheus +
// Grafana for dashboards and alerting.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// Metric Definitions
// =============================================================================

// Namespace for all metrics
const metricsNamespace = "meetmind"

// Subsystem for recommendation metrics
const recommendSubsystem = "recommend"

// RecommendationMetrics holds all Prometheus metrics for the
// recommendation and index-sync paths.
//
// # Description
//
// Provides counters and histograms for monitoring recommendation outcomes
// and latency. Initialize once at startup via InitMetrics().
//
// # Thread Safety
//
// All operations are thread-safe.
type RecommendationMetrics struct {
	// RecommendationsTotal counts recommendation calls by outcome source.
	// Labels: source (model, parse_fallback, heuristic, unassigned)
	RecommendationsTotal *prometheus.CounterVec

	// StageDurationSeconds measures per-stage latency.
	// Labels: stage (expand, retrieve, rank, heuristic)
	StageDurationSeconds *prometheus.HistogramVec

	// RetrievalResults measures how many candidates each search returned.
	RetrievalResults prometheus.Histogram

	// ReindexTotal counts reindex invocations by result.
	// Labels: status (success, error)
	ReindexTotal *prometheus.CounterVec

	// ReindexedDocuments counts documents uploaded by successful reindexes.
	ReindexedDocuments prometheus.Counter
}

// DefaultMetrics is the singleton instance of RecommendationMetrics.
// Initialized by InitMetrics().
var DefaultMetrics *RecommendationMetrics

// InitMetrics initializes the default metrics instance.
//
// # Description
//
// Creates and registers all Prometheus metrics. Should be called once
// at application startup.
//
// # Limitations
//
//   - Panics if called twice (duplicate registration).
func InitMetrics() *RecommendationMetrics {
	DefaultMetrics = &RecommendationMetrics{
		RecommendationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: recommendSubsystem,
				Name:      "recommendations_total",
				Help:      "Total assignee recommendations by outcome source",
			},
			[]string{"source"},
		),

		StageDurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: recommendSubsystem,
				Name:      "stage_duration_seconds",
				Help:      "Recommendation stage latency in seconds",
				Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 15.0},
			},
			[]string{"stage"},
		),

		RetrievalResults: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: recommendSubsystem,
				Name:      "retrieval_results",
				Help:      "Number of candidates returned per staff search",
				Buckets:   []float64{0, 1, 2, 3, 5, 10},
			},
		),

		ReindexTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: recommendSubsystem,
				Name:      "reindex_total",
				Help:      "Total staff reindex invocations by status",
			},
			[]string{"status"},
		),

		ReindexedDocuments: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: recommendSubsystem,
				Name:      "reindexed_documents_total",
				Help:      "Total staff documents uploaded by successful reindexes",
			},
		),
	}

	return DefaultMetrics
}

// =============================================================================
// Helper Methods
// =============================================================================

// RecordRecommendation records one recommendation outcome.
//
// # Inputs
//
//   - source: The outcome source label (model, parse_fallback, heuristic,
//     unassigned).
func (m *RecommendationMetrics) RecordRecommendation(source string) {
	m.RecommendationsTotal.WithLabelValues(source).Inc()
}

// RecordStage records one stage's latency.
func (m *RecommendationMetrics) RecordStage(stage string, seconds float64) {
	m.StageDurationSeconds.WithLabelValues(stage).Observe(seconds)
}

// RecordRetrieval records the candidate count of one search call.
func (m *RecommendationMetrics) RecordRetrieval(results int) {
	m.RetrievalResults.Observe(float64(results))
}

// RecordReindex records a reindex attempt and, on success, the number of
// documents uploaded.
func (m *RecommendationMetrics) RecordReindex(success bool, documents int) {
	status := "success"
	if !success {
		status = "error"
	}
	m.ReindexTotal.WithLabelValues(status).Inc()
	if success {
		m.ReindexedDocuments.Add(float64(documents))
	}
}
