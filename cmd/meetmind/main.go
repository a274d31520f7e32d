// Copyright (C) 2025 MeetMind AI (dev@meetmind.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meetmind",
	Short: "Operator CLI for the MeetMind orchestrator",
	Long: `Administrative client for a running MeetMind orchestrator.

Talks to the orchestrator's REST API. Set MEETMIND_API_URL to point at a
non-default deployment (default http://localhost:12210).`,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(staffCmd)
	rootCmd.AddCommand(reindexCmd)
	rootCmd.AddCommand(cleanupLegacyCmd)
}

// apiBaseURL resolves the orchestrator endpoint.
func apiBaseURL() string {
	if url := os.Getenv("MEETMIND_API_URL"); url != "" {
		return url
	}
	return "http://localhost:12210"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}
