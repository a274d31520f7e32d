// Copyright (C) 2025 MeetMind AI (dev@meetmind.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Unassigned is the marker surfaced to callers when no assignee could be
// recommended (empty directory, or every fallback exhausted).
const Unassigned = "미할당"

var validate = validator.New()

// StaffRecord is the authoritative representation of a staff member.
//
// # Description
//
// StaffRecord lives in the staff directory store, which is the source of
// truth. The search index holds a derived projection (StaffSearchDocument)
// that is rebuilt wholesale from these records and may lag behind them.
//
// # JSON Serialization
//
//	{
//	    "id": "a3f1...",
//	    "user_id": 42,
//	    "name": "김철수",
//	    "department": "개발팀",
//	    "position": "백엔드 개발자",
//	    "email": "kim@example.com",
//	    "skills": ["Python", "Backend", "API"]
//	}
type StaffRecord struct {
	// ID is the directory key for this record.
	ID string `json:"id" validate:"required"`

	// UserID is the numeric identity carried through recommendations.
	UserID int `json:"user_id"`

	// Name is the staff member's display name.
	Name string `json:"name" validate:"required"`

	// Department the staff member belongs to (e.g., "개발팀", "마케팅팀").
	Department string `json:"department"`

	// Position is the staff member's role title.
	Position string `json:"position"`

	// Email is the staff member's contact address.
	Email string `json:"email"`

	// Skills is an ordered list of skill strings. Duplicates are allowed;
	// order does not affect matching.
	Skills []string `json:"skills"`

	// CreatedAt and UpdatedAt are carried into the search projection as
	// opaque strings.
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Validate checks required fields on a StaffRecord.
func (r *StaffRecord) Validate() error {
	return validate.Struct(r)
}

// StaffSearchDocument is the denormalized projection of a StaffRecord
// stored in the search index.
//
// # Description
//
// Skills are flattened into a single searchable string (SkillsText) because
// the index schema stores text properties only. FromStaffRecord and Skills
// convert between the two shapes.
type StaffSearchDocument struct {
	DocID      string `json:"doc_id"`
	UserID     int    `json:"user_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Email      string `json:"email"`
	SkillsText string `json:"skills_text"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// skillsDelimiter joins and re-splits the skills list for index storage.
const skillsDelimiter = ", "

// FromStaffRecord projects an authoritative record into its index document.
func FromStaffRecord(r StaffRecord) StaffSearchDocument {
	return StaffSearchDocument{
		DocID:      r.ID,
		UserID:     r.UserID,
		Name:       r.Name,
		Department: r.Department,
		Position:   r.Position,
		Email:      r.Email,
		SkillsText: strings.Join(r.Skills, skillsDelimiter),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// Skills splits SkillsText back into a discrete list. Empty text yields an
// empty (non-nil) slice.
func (d StaffSearchDocument) Skills() []string {
	if d.SkillsText == "" {
		return []string{}
	}
	parts := strings.Split(d.SkillsText, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		skills = append(skills, strings.TrimSpace(p))
	}
	return skills
}

// CandidateMatch is a transient retrieval hit produced per search call.
//
// Ordering is the index's descending relevance order; this subsystem never
// re-sorts matches, so ties keep the engine's native order.
type CandidateMatch struct {
	ID             string   `json:"id"`
	UserID         int      `json:"user_id"`
	Name           string   `json:"name"`
	Department     string   `json:"department"`
	Position       string   `json:"position"`
	Skills         []string `json:"skills"`
	RelevanceScore float64  `json:"relevance_score"`
}

// AssigneeRecommendation is the subsystem's output: one suggested staff
// member for a task, with a confidence score in [0.0, 1.0] and a short
// free-text rationale. It is never persisted here; callers attach it to
// their own records.
type AssigneeRecommendation struct {
	RecommendedUserID int     `json:"recommended_user_id"`
	RecommendedName   string  `json:"recommended_name"`
	ConfidenceScore   float64 `json:"confidence_score"`
	Reasoning         string  `json:"reasoning"`
}

// RecommendAssigneeRequest is the REST payload for a recommendation call.
type RecommendAssigneeRequest struct {
	TaskDescription string `json:"task_description" validate:"required,min=1"`
	MeetingContext  string `json:"meeting_context"`
}

// Validate checks the recommendation request payload.
func (r *RecommendAssigneeRequest) Validate() error {
	return validate.Struct(r)
}
