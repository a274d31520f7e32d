// Copyright (C) 2025 MeetMind AI (dev@meetmind.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package staffindex maintains the derived StaffDocument search index from
// the authoritative staff directory.
//
// The index is rebuilt wholesale: delete everything, upload a fresh
// projection. There is no transactional guarantee; searches running during
// a rebuild may observe an empty or partial index, and a failed upload
// leaves the index degraded until the next rebuild. The directory stays
// authoritative throughout.
package staffindex

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/filters"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/meetmindai/meetmind/services/orchestrator/datatypes"
	"github.com/meetmindai/meetmind/services/orchestrator/observability"
)

// BatchSize is the number of documents uploaded per batch request.
const BatchSize = 100

// legacyStaffDocPrefix identifies staff documents that older releases wrote
// into the meetings index before the staff index existed.
const legacyStaffDocPrefix = "staff_"

// batchWriter is the slice of the Weaviate batch API the syncer uses.
//
// Substituting a fake here lets tests drive the rebuild sequencing without
// a running index.
type batchWriter interface {
	// UploadObjects batch-inserts objects and returns per-object results.
	UploadObjects(ctx context.Context, objects []*models.Object) ([]models.ObjectsGetResponse, error)

	// DeleteWhere batch-deletes matching objects from a class and returns
	// the number of successful deletions.
	DeleteWhere(ctx context.Context, className string, where *filters.WhereBuilder) (int64, error)
}

// weaviateBatchWriter implements batchWriter over a live client.
type weaviateBatchWriter struct {
	client *weaviate.Client
}

func (w *weaviateBatchWriter) UploadObjects(ctx context.Context, objects []*models.Object) ([]models.ObjectsGetResponse, error) {
	return w.client.Batch().ObjectsBatcher().WithObjects(objects...).Do(ctx)
}

func (w *weaviateBatchWriter) DeleteWhere(ctx context.Context, className string, where *filters.WhereBuilder) (int64, error) {
	resp, err := w.client.Batch().ObjectsBatchDeleter().
		WithClassName(className).
		WithWhere(where).
		Do(ctx)
	if err != nil {
		return 0, err
	}
	if resp == nil || resp.Results == nil {
		return 0, nil
	}
	return resp.Results.Successful, nil
}

// Syncer rebuilds the StaffDocument class from directory snapshots.
//
// # Description
//
// ReindexAll is serialized with a mutex: two concurrent full replaces can
// race each other's delete and upload phases and leave the index partially
// empty, so the second caller waits. Searches are not blocked.
//
// Document UUIDs are derived deterministically from the record id, so
// repeating a reindex with an unchanged directory converges to identical
// index contents.
type Syncer struct {
	batch   batchWriter
	metrics *observability.RecommendationMetrics

	mu sync.Mutex
}

// NewSyncer creates a syncer over the given client. metrics may be nil.
func NewSyncer(client *weaviate.Client, metrics *observability.RecommendationMetrics) *Syncer {
	return &Syncer{batch: &weaviateBatchWriter{client: client}, metrics: metrics}
}

// StaffDocUUID derives the stable Weaviate object UUID for a record id.
func StaffDocUUID(recordID string) strfmt.UUID {
	hash := sha256.Sum256([]byte(recordID))
	docUUID, _ := uuid.FromBytes(hash[:16])
	return strfmt.UUID(docUUID.String())
}

// ReindexAll performs a full replace of the staff index.
//
// # Description
//
// Deletes every StaffDocument, then batch-uploads the projection of the
// given directory snapshot. Intentionally not incremental: the contract is
// "index equals directory as of completion". A mid-way failure (delete
// succeeded, upload failed) leaves fewer documents than the directory has;
// the error is returned so operators can retry.
//
// # Inputs
//
//   - ctx: Context for cancellation.
//   - records: Current directory snapshot.
//
// # Outputs
//
//   - int: Number of documents successfully uploaded.
//   - error: Non-nil on any transport or batch failure.
func (s *Syncer) ReindexAll(ctx context.Context, records []datatypes.StaffRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	indexed, err := s.reindexLocked(ctx, records)
	if s.metrics != nil {
		s.metrics.RecordReindex(err == nil, indexed)
	}
	return indexed, err
}

func (s *Syncer) reindexLocked(ctx context.Context, records []datatypes.StaffRecord) (int, error) {
	if err := s.deleteAllStaffDocs(ctx); err != nil {
		return 0, err
	}

	if len(records) == 0 {
		slog.Warn("Reindex ran with an empty staff directory, index is now empty")
		return 0, nil
	}

	indexed := 0
	for i := 0; i < len(records); i += BatchSize {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}

		end := i + BatchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[i:end]

		objects := make([]*models.Object, len(batch))
		for j, record := range batch {
			doc := datatypes.FromStaffRecord(record)
			objects[j] = &models.Object{
				Class:      datatypes.StaffDocumentClassName,
				ID:         StaffDocUUID(record.ID),
				Properties: doc.ToMap(),
			}
		}

		result, err := s.batch.UploadObjects(ctx, objects)
		if err != nil {
			return indexed, fmt.Errorf("staff batch upload failed: %w", err)
		}

		for _, obj := range result {
			if obj.Result != nil && obj.Result.Errors == nil {
				indexed++
			} else if obj.Result != nil && obj.Result.Errors != nil && len(obj.Result.Errors.Error) > 0 {
				slog.Warn("Staff batch item failed", "error", obj.Result.Errors.Error[0].Message)
			}
		}

		slog.Info("Indexed staff batch", "count", len(batch), "total_indexed", indexed)
	}

	if indexed < len(records) {
		return indexed, fmt.Errorf("staff reindex incomplete: %d of %d documents uploaded", indexed, len(records))
	}

	slog.Info("Staff reindex complete", "documents", indexed)
	return indexed, nil
}

// deleteAllStaffDocs removes every document from the staff index.
func (s *Syncer) deleteAllStaffDocs(ctx context.Context) error {
	// Batch deletion requires a filter; match every doc_id.
	whereFilter := filters.Where().
		WithPath([]string{"doc_id"}).
		WithOperator(filters.Like).
		WithValueText("*")

	deleted, err := s.batch.DeleteWhere(ctx, datatypes.StaffDocumentClassName, whereFilter)
	if err != nil {
		return fmt.Errorf("deleting staff documents: %w", err)
	}

	slog.Info("Cleared staff index", "deleted", deleted)
	return nil
}

// CleanupLegacyStaffDocs removes staff documents that were co-mingled in
// the meetings index by older releases.
//
// # Description
//
// One-time migration, not a steady-state invariant: deletes every
// MeetingDocument whose doc_id carries the staff naming prefix. Running it
// against an already-clean index removes nothing and succeeds.
//
// # Outputs
//
//   - int: Number of documents removed.
//   - error: Non-nil on transport failure.
func (s *Syncer) CleanupLegacyStaffDocs(ctx context.Context) (int, error) {
	whereFilter := filters.Where().
		WithPath([]string{"doc_id"}).
		WithOperator(filters.Like).
		WithValueText(legacyStaffDocPrefix + "*")

	deleted, err := s.batch.DeleteWhere(ctx, datatypes.MeetingDocumentClassName, whereFilter)
	if err != nil {
		return 0, fmt.Errorf("cleaning legacy staff documents: %w", err)
	}

	removed := int(deleted)
	if removed > 0 {
		slog.Info("Removed legacy staff documents from meetings index", "removed", removed)
	} else {
		slog.Info("No legacy staff documents found in meetings index")
	}
	return removed, nil
}
