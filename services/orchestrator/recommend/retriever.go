// Copyright (C) 2025 MeetMind AI (dev@meetmind.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package recommend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"

	"github.com/meetmindai/meetmind/services/orchestrator/datatypes"
)

// StaffSearcher retrieves ranked staff candidates for an expanded query.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use.
type StaffSearcher interface {
	// Search returns at most topK candidates in the index's descending
	// relevance order. An unreachable index is an error here; the
	// orchestrator decides whether to absorb it.
	Search(ctx context.Context, expandedQuery string, topK int) ([]datatypes.CandidateMatch, error)
}

// WeaviateStaffRetriever implements StaffSearcher over the StaffDocument
// class using BM25 keyword search.
//
// # Description
//
// The disjuncts of the expanded query are plain BM25 terms; a document
// matches when it contains any of them, which gives the match-any semantics
// the expander's OR string is built for. Results keep the engine's score
// order and are never re-sorted here.
type WeaviateStaffRetriever struct {
	client *weaviate.Client
}

// NewWeaviateStaffRetriever creates a retriever over the given client.
func NewWeaviateStaffRetriever(client *weaviate.Client) *WeaviateStaffRetriever {
	return &WeaviateStaffRetriever{client: client}
}

// staffSearchFields is the bounded projection requested per search call.
var staffSearchFields = []graphql.Field{
	{Name: "doc_id"},
	{Name: "user_id"},
	{Name: "name"},
	{Name: "department"},
	{Name: "position"},
	{Name: "skills_text"},
	{Name: "_additional", Fields: []graphql.Field{
		{Name: "id"},
		{Name: "score"},
	}},
}

// Search runs a BM25 query against the staff index.
//
// # Inputs
//
//   - ctx: Context for cancellation and timeout.
//   - expandedQuery: OR-joined query from the expander (or raw task text).
//   - topK: Result cap. Negative values are a caller bug and fail fast.
//
// # Outputs
//
//   - []datatypes.CandidateMatch: At most topK matches, best first.
//   - error: Non-nil on transport failure or a malformed response.
func (r *WeaviateStaffRetriever) Search(ctx context.Context, expandedQuery string, topK int) ([]datatypes.CandidateMatch, error) {
	if topK < 0 {
		return nil, fmt.Errorf("negative result cap %d", topK)
	}
	if topK == 0 {
		return []datatypes.CandidateMatch{}, nil
	}

	result, err := r.client.GraphQL().Get().
		WithClassName(datatypes.StaffDocumentClassName).
		WithFields(staffSearchFields...).
		WithBM25(r.client.GraphQL().Bm25ArgBuilder().WithQuery(expandedQuery)).
		WithLimit(topK).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("staff search failed: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("staff search error: %s", result.Errors[0].Message)
	}

	parsed, err := datatypes.ParseGraphQLResponse[datatypes.StaffQueryResponse](result)
	if err != nil {
		return nil, fmt.Errorf("parsing staff search response: %w", err)
	}

	matches := make([]datatypes.CandidateMatch, 0, len(parsed.Get.StaffDocument))
	for _, doc := range parsed.Get.StaffDocument {
		matches = append(matches, doc.ToCandidateMatch())
	}

	slog.Debug("Staff search complete", "query_len", len(expandedQuery), "matches", len(matches))
	return matches, nil
}
