// Copyright (C) 2025 MeetMind AI (dev@meetmind.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// reindexCmd rebuilds the staff search index from the directory.
var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the staff search index from the directory",
	Run: func(cmd *cobra.Command, args []string) {
		body := postAdmin("/v1/search/reindex")
		var parsed struct {
			Success bool `json:"success"`
			Indexed int  `json:"indexed"`
		}
		if err := json.Unmarshal(body, &parsed); err == nil && parsed.Success {
			fmt.Printf("Reindexed %d staff documents\n", parsed.Indexed)
			return
		}
		fmt.Fprintf(os.Stderr, "Reindex failed: %s\n", string(body))
		os.Exit(1)
	},
}

// cleanupLegacyCmd removes staff documents left behind in the meetings index.
var cleanupLegacyCmd = &cobra.Command{
	Use:   "cleanup-legacy",
	Short: "Remove legacy staff documents from the meetings index",
	Run: func(cmd *cobra.Command, args []string) {
		body := postAdmin("/v1/search/cleanup-legacy")
		var parsed struct {
			Success bool `json:"success"`
			Removed int  `json:"removed"`
		}
		if err := json.Unmarshal(body, &parsed); err == nil && parsed.Success {
			fmt.Printf("Removed %d legacy staff documents\n", parsed.Removed)
			return
		}
		fmt.Fprintf(os.Stderr, "Cleanup failed: %s\n", string(body))
		os.Exit(1)
	},
}

// postAdmin sends an empty-body POST to an admin endpoint and returns the
// response body. Exits on transport failure.
func postAdmin(path string) []byte {
	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Post(apiBaseURL()+path, "application/json", nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return body
}
