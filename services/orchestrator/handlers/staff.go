// Copyright (C) 2025 MeetMind AI (dev@meetmind.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meetmindai/meetmind/services/orchestrator/datatypes"
	"github.com/meetmindai/meetmind/services/orchestrator/directory"
)

// reindexTimeout bounds the background reindex kicked off after a
// directory mutation.
const reindexTimeout = 60 * time.Second

// StaffReindexer triggers a rebuild of the staff search index from a
// directory snapshot.
type StaffReindexer interface {
	ReindexAll(ctx context.Context, records []datatypes.StaffRecord) (int, error)
}

// scheduleReindex rebuilds the search index in the background after a
// directory write. Best effort: a failure leaves the index stale, not the
// directory, and is only logged. syncer may be nil in lightweight mode.
func scheduleReindex(store *directory.Store, syncer StaffReindexer) {
	if syncer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), reindexTimeout)
		defer cancel()

		records, err := store.ListAll(ctx)
		if err != nil {
			slog.Error("skipping reindex, directory listing failed", "error", err)
			return
		}
		if _, err := syncer.ReindexAll(ctx, records); err != nil {
			slog.Error("background staff reindex failed", "error", err)
		}
	}()
}

func HandleCreateStaff(store *directory.Store, syncer StaffReindexer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var record datatypes.StaffRecord
		if err := c.BindJSON(&record); err != nil {
			slog.Error("failed to parse the staff record to json", "error", err)
			c.JSON(http.StatusBadRequest,
				gin.H{"error": "failed to parse the staff record to json"})
			return
		}

		if err := store.Add(c.Request.Context(), &record); err != nil {
			slog.Error("failed to create staff record", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Info("Created staff record", "id", record.ID, "name", record.Name)
		scheduleReindex(store, syncer)
		c.JSON(http.StatusCreated, record)
	}
}

func HandleListStaff(store *directory.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := store.ListAll(c.Request.Context())
		if err != nil {
			slog.Error("failed to list staff records", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list staff records"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"staff": records, "count": len(records)})
	}
}

func HandleGetStaff(store *directory.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, err := store.Get(c.Request.Context(), c.Param("id"))
		if errors.Is(err, directory.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "staff record not found"})
			return
		}
		if err != nil {
			slog.Error("failed to get staff record", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get staff record"})
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

func HandleUpdateStaff(store *directory.Store, syncer StaffReindexer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var record datatypes.StaffRecord
		if err := c.BindJSON(&record); err != nil {
			c.JSON(http.StatusBadRequest,
				gin.H{"error": "failed to parse the staff record to json"})
			return
		}
		record.ID = c.Param("id")

		err := store.Update(c.Request.Context(), &record)
		if errors.Is(err, directory.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "staff record not found"})
			return
		}
		if err != nil {
			slog.Error("failed to update staff record", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Info("Updated staff record", "id", record.ID)
		scheduleReindex(store, syncer)
		c.JSON(http.StatusOK, record)
	}
}

func HandleDeleteStaff(store *directory.Store, syncer StaffReindexer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		err := store.Delete(c.Request.Context(), id)
		if errors.Is(err, directory.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "staff record not found"})
			return
		}
		if err != nil {
			slog.Error("failed to delete staff record", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete staff record"})
			return
		}
		slog.Info("Deleted staff record", "id", id)
		scheduleReindex(store, syncer)
		c.JSON(http.StatusOK, gin.H{"status": "success", "id": id})
	}
}
