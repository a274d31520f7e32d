// Copyright (C) 2025 MeetMind AI (dev@meetmind.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	recommendContext    string // Meeting context passed alongside the task
	recommendJSONOutput bool   // Output raw JSON
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// recommendCmd asks the orchestrator to suggest an assignee for a task.
//
// # Examples
//
//	meetmind recommend "백엔드 API 버그 수정"
//	meetmind recommend "QA 시나리오 작성" --context "릴리즈 회의"
//	meetmind recommend "ETL 파이프라인 점검" --json
var recommendCmd = &cobra.Command{
	Use:   "recommend <task description>",
	Short: "Suggest an assignee for a task description",
	Args:  cobra.MinimumNArgs(1),
	Run:   runRecommendCommand,
}

func init() {
	recommendCmd.Flags().StringVarP(&recommendContext, "context", "c", "",
		"Meeting context to include with the task")
	recommendCmd.Flags().BoolVar(&recommendJSONOutput, "json", false,
		"Output the raw JSON response")
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

type recommendResponse struct {
	Status         string `json:"status"`
	Source         string `json:"source"`
	Recommendation *struct {
		RecommendedUserID int     `json:"recommended_user_id"`
		RecommendedName   string  `json:"recommended_name"`
		ConfidenceScore   float64 `json:"confidence_score"`
		Reasoning         string  `json:"reasoning"`
	} `json:"recommendation"`
	RecommendedName string `json:"recommended_name"`
}

func runRecommendCommand(cmd *cobra.Command, args []string) {
	task := strings.Join(args, " ")
	payload, _ := json.Marshal(map[string]string{
		"task_description": task,
		"meeting_context":  recommendContext,
	})

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Post(apiBaseURL()+"/v1/assignees/recommend",
		"application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Error: server returned %d: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	if recommendJSONOutput {
		fmt.Println(string(body))
		return
	}

	var parsed recommendResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not parse response: %v\n", err)
		os.Exit(1)
	}

	if parsed.Status == "unassigned" || parsed.Recommendation == nil {
		fmt.Printf("No assignee could be recommended (%s)\n", parsed.RecommendedName)
		return
	}

	rec := parsed.Recommendation
	fmt.Printf("Recommended: %s (user %d)\n", rec.RecommendedName, rec.RecommendedUserID)
	fmt.Printf("Confidence:  %.2f (source: %s)\n", rec.ConfidenceScore, parsed.Source)
	fmt.Printf("Reasoning:   %s\n", rec.Reasoning)
}
