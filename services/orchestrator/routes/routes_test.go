// Copyright (C) 2025 MeetMind AI (dev@meetmind.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"

	"github.com/meetmindai/meetmind/services/orchestrator/directory"
	"github.com/meetmindai/meetmind/services/orchestrator/recommend"
	"github.com/meetmindai/meetmind/services/orchestrator/staffindex"
)

// ============================================================================
// Test Setup
// ============================================================================

func init() {
	// Set Gin to test mode to reduce noise in test output
	gin.SetMode(gin.TestMode)
}

// stubRecommender satisfies handlers.AssigneeRecommender without a backend.
type stubRecommender struct{}

func (s *stubRecommender) RecommendAssignee(_ context.Context, _, _ string) (*recommend.Outcome, error) {
	return &recommend.Outcome{Source: recommend.SourceUnassigned}, nil
}

func testStore(t *testing.T) *directory.Store {
	t.Helper()
	store, err := directory.Open(directory.InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func hasRoute(router *gin.Engine, method, path string) bool {
	for _, r := range router.Routes() {
		if r.Method == method && r.Path == path {
			return true
		}
	}
	return false
}

// ============================================================================
// SetupRoutes Tests
// ============================================================================

func TestSetupRoutes_LightweightMode(t *testing.T) {
	router := gin.New()

	// Should not panic when the search backend is absent
	SetupRoutes(router, nil, nil, testStore(t), nil)

	coreRoutes := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/metrics"},
		{"POST", "/v1/staff"},
		{"GET", "/v1/staff"},
		{"GET", "/v1/staff/:id"},
		{"PUT", "/v1/staff/:id"},
		{"DELETE", "/v1/staff/:id"},
	}
	for _, expected := range coreRoutes {
		assert.True(t, hasRoute(router, expected.method, expected.path),
			"missing route %s %s", expected.method, expected.path)
	}

	// Search-backed routes must not be registered
	assert.False(t, hasRoute(router, "POST", "/v1/assignees/recommend"))
	assert.False(t, hasRoute(router, "POST", "/v1/search/reindex"))
	assert.False(t, hasRoute(router, "POST", "/v1/search/cleanup-legacy"))
	assert.False(t, hasRoute(router, "GET", "/v1/search/summary"))
}

func TestSetupRoutes_FullMode(t *testing.T) {
	client, err := weaviate.NewClient(weaviate.Config{Host: "localhost:8080", Scheme: "http"})
	require.NoError(t, err)

	router := gin.New()
	SetupRoutes(router, client, &stubRecommender{}, testStore(t), staffindex.NewSyncer(client, nil))

	for _, expected := range []struct {
		method string
		path   string
	}{
		{"POST", "/v1/assignees/recommend"},
		{"POST", "/v1/search/reindex"},
		{"POST", "/v1/search/cleanup-legacy"},
		{"GET", "/v1/search/summary"},
	} {
		assert.True(t, hasRoute(router, expected.method, expected.path),
			"missing route %s %s", expected.method, expected.path)
	}
}

func TestSetupRoutes_HealthResponds(t *testing.T) {
	router := gin.New()
	SetupRoutes(router, nil, nil, testStore(t), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
