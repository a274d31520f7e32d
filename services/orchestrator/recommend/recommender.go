// Copyright (C) 2025 MeetMind AI (dev@meetmind.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package recommend implements the assignee-recommendation chain: query
// expansion, candidate retrieval, LLM ranking, and the degraded fallbacks
// that keep the chain total when the index or the model is unavailable.
package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/meetmindai/meetmind/services/orchestrator/datatypes"
	"github.com/meetmindai/meetmind/services/orchestrator/observability"
)

// recommendTracer is the OpenTelemetry tracer for recommendation operations.
var recommendTracer = otel.Tracer("meetmind.orchestrator.recommend")

// =============================================================================
// Interfaces
// =============================================================================

// DirectoryLister exposes the authoritative staff directory snapshot used
// by the degraded heuristic path.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use.
type DirectoryLister interface {
	// ListAll returns every staff record in a deterministic order for a
	// fixed directory state.
	ListAll(ctx context.Context) ([]datatypes.StaffRecord, error)
}

// =============================================================================
// Implementation
// =============================================================================

// retrievalTopK is how many candidates the search step requests; the ranker
// then caps its own input separately.
const retrievalTopK = 5

// heuristicReasoning is attached to picks made by the directory heuristic.
const heuristicReasoning = "검색 인덱스를 사용할 수 없어 직원 디렉토리 기반으로 추천되었습니다"

// Recommender composes the expand, retrieve, rank, and fallback chain.
//
// # Description
//
// RecommendAssignee is total for environmental failures: an unreachable
// index degrades to the directory heuristic, an unusable model response
// degrades inside the ranker, and an empty directory yields an explicit
// unassigned outcome. The only errors it returns are caller bugs (empty
// task description).
//
// Dependencies are injected at construction so tests can substitute fakes
// for the index, the model, and the directory.
//
// # Thread Safety
//
// Recommender is safe for concurrent use; concurrent calls may interleave
// freely against the shared index and model endpoints.
//
// # Example
//
//	rec := NewRecommender(expander, retriever, ranker, directory, metrics)
//	outcome, err := rec.RecommendAssignee(ctx, "Backend API 개발 작업", "")
type Recommender struct {
	expander  *KeywordExpander
	searcher  StaffSearcher
	ranker    Ranker
	directory DirectoryLister
	heuristic *HeuristicMatcher
	metrics   *observability.RecommendationMetrics
}

// NewRecommender wires the recommendation chain. metrics may be nil (e.g.
// in tests); all other dependencies are required.
func NewRecommender(expander *KeywordExpander, searcher StaffSearcher, ranker Ranker,
	directory DirectoryLister, metrics *observability.RecommendationMetrics) *Recommender {
	return &Recommender{
		expander:  expander,
		searcher:  searcher,
		ranker:    ranker,
		directory: directory,
		heuristic: NewHeuristicMatcher(),
		metrics:   metrics,
	}
}

// RecommendAssignee picks one assignee for a task.
//
// # Description
//
// The chain is linear with no retry loop:
//
//  1. Expand the task description into an OR query.
//  2. Retrieve up to 5 candidates. A transport error or empty result
//     falls through to the degraded path.
//  3. Rank the candidates with the model (the ranker absorbs its own
//     failures into a first-candidate fallback).
//  4. Degraded path: score the full directory with the in-process
//     heuristic; an empty directory yields the unassigned outcome.
//
// # Inputs
//
//   - ctx: Context for cancellation and timeout of the network stages.
//   - taskDescription: The work to assign. Must be non-empty.
//   - meetingContext: Optional surrounding meeting text for the ranker.
//
// # Outputs
//
//   - *Outcome: Always non-nil on success; Source tags which path produced
//     it and Recommendation is nil only for SourceUnassigned.
//   - error: Non-nil only for empty taskDescription.
func (r *Recommender) RecommendAssignee(ctx context.Context, taskDescription, meetingContext string) (*Outcome, error) {
	if taskDescription == "" {
		return nil, fmt.Errorf("empty task description")
	}

	ctx, span := recommendTracer.Start(ctx, "recommend.assignee")
	defer span.End()
	span.SetAttributes(attribute.Int("task.length", len(taskDescription)))

	expandStart := time.Now()
	expanded := r.expander.Expand(taskDescription)
	r.recordStage("expand", expandStart)

	retrieveStart := time.Now()
	candidates, err := r.searcher.Search(ctx, expanded, retrievalTopK)
	r.recordStage("retrieve", retrieveStart)
	if err != nil {
		// Read-path index failures degrade, they never propagate.
		slog.Warn("Staff search unavailable, falling back to directory heuristic", "error", err)
		span.RecordError(err)
		candidates = nil
	}
	span.SetAttributes(attribute.Int("retrieval.candidates", len(candidates)))
	if r.metrics != nil {
		r.metrics.RecordRetrieval(len(candidates))
	}

	if len(candidates) > 0 {
		rankStart := time.Now()
		outcome, rankErr := r.ranker.Rank(ctx, taskDescription, candidates, meetingContext)
		r.recordStage("rank", rankStart)
		if rankErr == nil && outcome != nil {
			r.recordOutcome(outcome)
			return outcome, nil
		}
		if rankErr != nil {
			slog.Warn("Ranker failed, falling back to directory heuristic", "error", rankErr)
			span.RecordError(rankErr)
		}
	}

	outcome := r.heuristicOutcome(ctx, taskDescription)
	if outcome.Source == SourceUnassigned {
		span.SetStatus(codes.Ok, "no assignee available")
	}
	r.recordOutcome(outcome)
	return outcome, nil
}

// heuristicOutcome runs the degraded directory scoring path.
func (r *Recommender) heuristicOutcome(ctx context.Context, taskDescription string) *Outcome {
	start := time.Now()
	defer r.recordStage("heuristic", start)

	records, err := r.directory.ListAll(ctx)
	if err != nil {
		slog.Warn("Staff directory unavailable for heuristic fallback", "error", err)
		return &Outcome{Source: SourceUnassigned}
	}

	match := r.heuristic.Match(taskDescription, records)
	if match == nil {
		slog.Info("Staff directory empty, returning unassigned")
		return &Outcome{Source: SourceUnassigned}
	}

	return &Outcome{
		Recommendation: &datatypes.AssigneeRecommendation{
			RecommendedUserID: match.UserID,
			RecommendedName:   match.Name,
			ConfidenceScore:   0.5,
			Reasoning:         heuristicReasoning,
		},
		Source: SourceHeuristic,
	}
}

func (r *Recommender) recordStage(stage string, start time.Time) {
	if r.metrics != nil {
		r.metrics.RecordStage(stage, time.Since(start).Seconds())
	}
}

func (r *Recommender) recordOutcome(outcome *Outcome) {
	if r.metrics != nil {
		r.metrics.RecordRecommendation(string(outcome.Source))
	}
}
