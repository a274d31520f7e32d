// Copyright (C) 2025 MeetMind AI (dev@meetmind.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// ============================================================================
// Test Helper: Create isolated metrics for testing
// ============================================================================

// newTestMetrics creates a RecommendationMetrics instance with a custom
// registry. This avoids conflicts with the global Prometheus registry and
// allows parallel testing.
func newTestMetrics(t *testing.T) *RecommendationMetrics {
	t.Helper()

	reg := prometheus.NewRegistry()

	recommendationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: recommendSubsystem,
			Name:      "recommendations_total",
			Help:      "Total assignee recommendations by outcome source",
		},
		[]string{"source"},
	)

	stageDurationSeconds := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: recommendSubsystem,
			Name:      "stage_duration_seconds",
			Help:      "Recommendation stage latency in seconds",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 15.0},
		},
		[]string{"stage"},
	)

	retrievalResults := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: recommendSubsystem,
			Name:      "retrieval_results",
			Help:      "Number of candidates returned per staff search",
			Buckets:   []float64{0, 1, 2, 3, 5, 10},
		},
	)

	reindexTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: recommendSubsystem,
			Name:      "reindex_total",
			Help:      "Total staff reindex invocations by status",
		},
		[]string{"status"},
	)

	reindexedDocuments := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: recommendSubsystem,
			Name:      "reindexed_documents_total",
			Help:      "Total staff documents uploaded by successful reindexes",
		},
	)

	// Register all metrics with the test registry
	reg.MustRegister(
		recommendationsTotal,
		stageDurationSeconds,
		retrievalResults,
		reindexTotal,
		reindexedDocuments,
	)

	return &RecommendationMetrics{
		RecommendationsTotal: recommendationsTotal,
		StageDurationSeconds: stageDurationSeconds,
		RetrievalResults:     retrievalResults,
		ReindexTotal:         reindexTotal,
		ReindexedDocuments:   reindexedDocuments,
	}
}

// ============================================================================
// Recording Tests
// ============================================================================

func TestRecordRecommendation(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordRecommendation("model")
	m.RecordRecommendation("model")
	m.RecordRecommendation("heuristic")

	if got := testutil.ToFloat64(m.RecommendationsTotal.WithLabelValues("model")); got != 2 {
		t.Errorf("model count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.RecommendationsTotal.WithLabelValues("heuristic")); got != 1 {
		t.Errorf("heuristic count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RecommendationsTotal.WithLabelValues("unassigned")); got != 0 {
		t.Errorf("unassigned count = %v, want 0", got)
	}
}

func TestRecordStage(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordStage("expand", 0.002)
	m.RecordStage("rank", 1.3)

	if got := testutil.CollectAndCount(m.StageDurationSeconds); got != 2 {
		t.Errorf("stage series = %v, want 2", got)
	}
}

func TestRecordRetrieval(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordRetrieval(0)
	m.RecordRetrieval(5)

	if got := testutil.CollectAndCount(m.RetrievalResults); got != 1 {
		t.Errorf("retrieval series = %v, want 1", got)
	}
}

func TestRecordReindex(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordReindex(true, 12)
	m.RecordReindex(true, 3)
	m.RecordReindex(false, 0)

	if got := testutil.ToFloat64(m.ReindexTotal.WithLabelValues("success")); got != 2 {
		t.Errorf("success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ReindexTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ReindexedDocuments); got != 15 {
		t.Errorf("documents uploaded = %v, want 15", got)
	}
}
