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

	"github.com/meetmindai/meetmind/services/orchestrator/datatypes"
	"github.com/meetmindai/meetmind/services/orchestrator/recommend"
)

// AssigneeRecommender is the slice of the recommendation pipeline the
// handler needs.
type AssigneeRecommender interface {
	RecommendAssignee(ctx context.Context, taskDescription, meetingContext string) (*recommend.Outcome, error)
}

// HandleRecommendAssignee suggests an assignee for a task description.
//
// # Description
//
// Always answers 200 on a well-formed request. When no staff member can be
// matched the response carries status "unassigned" with the sentinel name,
// so callers can store the result without branching on errors.
func HandleRecommendAssignee(recommender AssigneeRecommender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.RecommendAssigneeRequest
		if err := c.BindJSON(&req); err != nil {
			slog.Error("failed to parse the recommend request to json", "error", err)
			c.JSON(http.StatusBadRequest,
				gin.H{"error": "failed to parse the recommend request to json"})
			return
		}
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "task_description is required"})
			return
		}

		outcome, err := recommender.RecommendAssignee(c.Request.Context(), req.TaskDescription, req.MeetingContext)
		if err != nil {
			slog.Error("assignee recommendation failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "assignee recommendation failed"})
			return
		}

		if outcome == nil || outcome.Recommendation == nil {
			c.JSON(http.StatusOK, gin.H{
				"status":           "unassigned",
				"source":           string(recommend.SourceUnassigned),
				"recommended_name": datatypes.Unassigned,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"source":         string(outcome.Source),
			"recommendation": outcome.Recommendation,
		})
	}
}
