// Copyright (C) 2025 MeetMind AI (dev@meetmind.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"

	"github.com/meetmindai/meetmind/services/orchestrator/directory"
	"github.com/meetmindai/meetmind/services/orchestrator/staffindex"
)

// HandleReindexStaff rebuilds the staff search index from the directory.
// Synchronous: the response reports how many documents made it in.
func HandleReindexStaff(store *directory.Store, syncer *staffindex.Syncer) gin.HandlerFunc {
	return func(c *gin.Context) {
		slog.Info("Received a staff reindex request")
		records, err := store.ListAll(c.Request.Context())
		if err != nil {
			slog.Error("failed to list staff records for reindex", "error", err)
			c.JSON(http.StatusInternalServerError,
				gin.H{"error": "failed to list staff records for reindex"})
			return
		}

		indexed, err := syncer.ReindexAll(c.Request.Context(), records)
		if err != nil {
			slog.Error("staff reindex failed", "error", err, "indexed", indexed)
			c.JSON(http.StatusInternalServerError,
				gin.H{"success": false, "indexed": indexed, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "indexed": indexed})
	}
}

// HandleCleanupLegacyStaff removes staff documents that older releases
// wrote into the meetings index.
func HandleCleanupLegacyStaff(syncer *staffindex.Syncer) gin.HandlerFunc {
	return func(c *gin.Context) {
		slog.Info("Received a legacy staff document cleanup request")
		removed, err := syncer.CleanupLegacyStaffDocs(c.Request.Context())
		if err != nil {
			slog.Error("legacy staff cleanup failed", "error", err)
			c.JSON(http.StatusInternalServerError,
				gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "removed": removed})
	}
}

// GetSearchSummary reports the search backend's schema.
func GetSearchSummary(client *weaviate.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		slog.Info("Received request for search index summary")
		schema, err := client.Schema().Getter().Do(context.Background())
		if err != nil {
			slog.Error("Failed to get the weaviate schema", "error", err)
			c.JSON(http.StatusInternalServerError,
				gin.H{"error": "failed to get the weaviate schema"})
			return
		}
		c.JSON(http.StatusOK, schema)
	}
}
