// Copyright (C) 2025 MeetMind AI (dev@meetmind.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/weaviate/weaviate/entities/models"
)

// =============================================================================
// Generic GraphQL Response Parser
// =============================================================================

// ParseGraphQLResponse parses a Weaviate GraphQL response into the target type.
//
// # Description
//
// This generic function encapsulates the marshal/unmarshal pattern required to
// convert Weaviate's dynamic response (map[string]models.JSONObject) into a
// strongly-typed Go struct. The target type T must have json tags matching
// the expected response shape.
//
// # Type Parameters
//
//   - T: The target struct type with json tags matching the response shape.
//
// # Inputs
//
//   - resp: The GraphQL response from Weaviate client's Do() method.
//
// # Outputs
//
//   - *T: Pointer to the parsed struct.
//   - error: Non-nil if response is nil or parsing fails.
//
// # Example
//
//	resp, err := client.GraphQL().Get().WithClassName("StaffDocument").Do(ctx)
//	if err != nil { ... }
//
//	parsed, err := ParseGraphQLResponse[StaffQueryResponse](resp)
//	if err != nil { ... }
//
//	for _, doc := range parsed.Get.StaffDocument {
//	    fmt.Println(doc.Name)
//	}
//
// # Limitations
//
//   - Requires the target type to exactly match the expected response structure.
//   - Type mismatches will result in zero values, not errors.
//
// # Assumptions
//
//   - The response Data field is JSON-marshalable.
//   - The target type T has correct json tags.
func ParseGraphQLResponse[T any](resp *models.GraphQLResponse) (*T, error) {
	if resp == nil {
		return nil, fmt.Errorf("nil GraphQL response")
	}

	respBytes, err := json.Marshal(resp.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal GraphQL response data: %w", err)
	}

	var result T
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal into target type: %w", err)
	}

	return &result, nil
}

// =============================================================================
// Common Weaviate Response Types
// =============================================================================

// StaffQueryResponse represents the response from querying the StaffDocument class.
//
// # Fields
//
//   - Get.StaffDocument: Array of staff documents with BM25 scores.
type StaffQueryResponse struct {
	Get struct {
		StaffDocument []StaffDocumentResult `json:"StaffDocument"`
	} `json:"Get"`
}

// StaffDocumentResult represents a single staff document from a query.
type StaffDocumentResult struct {
	DocID      string `json:"doc_id"`
	UserID     int    `json:"user_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
	SkillsText string `json:"skills_text"`
	Additional struct {
		ID    string `json:"id"`
		Score string `json:"score"`
	} `json:"_additional"`
}

// RelevanceScore parses the BM25 score Weaviate returns as a string.
// Unparsable or missing scores read as 0.
func (r StaffDocumentResult) RelevanceScore() float64 {
	if r.Additional.Score == "" {
		return 0
	}
	score, err := strconv.ParseFloat(r.Additional.Score, 64)
	if err != nil {
		return 0
	}
	return score
}

// ToCandidateMatch converts a query result into the transient candidate
// shape consumed by the ranker.
func (r StaffDocumentResult) ToCandidateMatch() CandidateMatch {
	doc := StaffSearchDocument{SkillsText: r.SkillsText}
	return CandidateMatch{
		ID:             r.DocID,
		UserID:         r.UserID,
		Name:           r.Name,
		Department:     r.Department,
		Position:       r.Position,
		Skills:         doc.Skills(),
		RelevanceScore: r.RelevanceScore(),
	}
}

// MeetingDocIDResponse projects only document identifiers from the
// MeetingDocument class, used by the legacy cleanup migration.
type MeetingDocIDResponse struct {
	Get struct {
		MeetingDocument []struct {
			DocID      string `json:"doc_id"`
			Additional struct {
				ID string `json:"id"`
			} `json:"_additional"`
		} `json:"MeetingDocument"`
	} `json:"Get"`
}

// =============================================================================
// ToMap Methods for Property Structs
// =============================================================================

// ToMap converts a StaffSearchDocument to map[string]interface{} for Weaviate.
//
// # Description
//
// Converts the typed projection struct to the map format required by
// Weaviate's batch object properties.
//
// # Outputs
//
//   - map[string]interface{}: Property map ready for Weaviate client.
//
// # Example
//
//	doc := FromStaffRecord(record)
//	obj := &models.Object{Class: StaffDocumentClassName, Properties: doc.ToMap()}
func (d StaffSearchDocument) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"doc_id":      d.DocID,
		"user_id":     d.UserID,
		"name":        d.Name,
		"department":  d.Department,
		"position":    d.Position,
		"email":       d.Email,
		"skills_text": d.SkillsText,
		"created_at":  d.CreatedAt,
		"updated_at":  d.UpdatedAt,
	}
}
