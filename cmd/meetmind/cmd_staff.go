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
	"time"

	"github.com/spf13/cobra"

	"github.com/meetmindai/meetmind/services/orchestrator/datatypes"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "Manage the staff directory",
}

// staffImportCmd bulk-loads staff records from a JSON file.
//
// # Examples
//
//	meetmind staff import staff.json
//
// The file holds a JSON array of staff records:
//
//	[{"id": "u1", "user_id": 1, "name": "김철수", "department": "개발팀",
//	  "position": "백엔드 개발자", "skills": ["Go", "PostgreSQL"]}]
var staffImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import staff records from a JSON file",
	Args:  cobra.ExactArgs(1),
	Run:   runStaffImportCommand,
}

var staffListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all staff records",
	Run:   runStaffListCommand,
}

func init() {
	staffCmd.AddCommand(staffImportCmd)
	staffCmd.AddCommand(staffListCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runStaffImportCommand(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not read %s: %v\n", args[0], err)
		os.Exit(1)
	}

	var records []datatypes.StaffRecord
	if err := json.Unmarshal(data, &records); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s is not a JSON array of staff records: %v\n", args[0], err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	imported := 0
	for _, record := range records {
		payload, _ := json.Marshal(record)
		resp, err := client.Post(apiBaseURL()+"/v1/staff",
			"application/json", bytes.NewReader(payload))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: request failed for %q: %v\n", record.Name, err)
			os.Exit(1)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			fmt.Fprintf(os.Stderr, "Skipped %q: server returned %d: %s\n",
				record.Name, resp.StatusCode, string(body))
			continue
		}
		imported++
	}

	fmt.Printf("Imported %d of %d staff records\n", imported, len(records))
}

func runStaffListCommand(cmd *cobra.Command, args []string) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(apiBaseURL() + "/v1/staff")
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

	var parsed struct {
		Staff []datatypes.StaffRecord `json:"staff"`
		Count int                     `json:"count"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not parse response: %v\n", err)
		os.Exit(1)
	}

	for _, record := range parsed.Staff {
		fmt.Printf("%-12s %-16s %-12s %-20s %v\n",
			record.ID, record.Name, record.Department, record.Position, record.Skills)
	}
	fmt.Printf("%d staff records\n", parsed.Count)
}
