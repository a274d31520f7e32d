// Copyright (C) 2025 MeetMind AI (dev@meetmind.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"

	"github.com/meetmindai/meetmind/services/orchestrator/directory"
	"github.com/meetmindai/meetmind/services/orchestrator/handlers"
	"github.com/meetmindai/meetmind/services/orchestrator/staffindex"
)

// SetupRoutes wires the HTTP surface.
//
// client, recommender, and syncer may be nil in lightweight mode (no search
// backend configured); the affected route groups are then not registered.
func SetupRoutes(router *gin.Engine, client *weaviate.Client,
	recommender handlers.AssigneeRecommender, store *directory.Store,
	syncer *staffindex.Syncer) {

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1 group
	v1 := router.Group("/v1")
	{
		if recommender != nil {
			v1.POST("/assignees/recommend", handlers.HandleRecommendAssignee(recommender))
		}

		// Staff directory routes. The syncer is passed so mutations can
		// refresh the search index in the background.
		staff := v1.Group("/staff")
		{
			staff.POST("", handlers.HandleCreateStaff(store, syncerOrNil(syncer)))
			staff.GET("", handlers.HandleListStaff(store))
			staff.GET("/:id", handlers.HandleGetStaff(store))
			staff.PUT("/:id", handlers.HandleUpdateStaff(store, syncerOrNil(syncer)))
			staff.DELETE("/:id", handlers.HandleDeleteStaff(store, syncerOrNil(syncer)))
		}

		// Search index administration routes
		if client != nil && syncer != nil {
			search := v1.Group("/search")
			{
				search.POST("/reindex", handlers.HandleReindexStaff(store, syncer))
				search.POST("/cleanup-legacy", handlers.HandleCleanupLegacyStaff(syncer))
				search.GET("/summary", handlers.GetSearchSummary(client))
			}
		}
	}
}

// syncerOrNil keeps a typed nil *Syncer from becoming a non-nil interface.
func syncerOrNil(s *staffindex.Syncer) handlers.StaffReindexer {
	if s == nil {
		return nil
	}
	return s
}
