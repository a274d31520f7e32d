// Copyright (C) 2025 MeetMind AI (dev@meetmind.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"context"
	"log"
	"log/slog"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate/entities/models"
)

// StaffDocumentClassName is the Weaviate class holding the derived staff
// search projection.
const StaffDocumentClassName = "StaffDocument"

// MeetingDocumentClassName is the Weaviate class holding indexed meeting
// records. Owned by the meeting ingestion path; this subsystem only touches
// it for the legacy staff-document cleanup migration.
const MeetingDocumentClassName = "MeetingDocument"

func GetStaffDocumentSchema() *models.Class {
	indexFilterable := new(bool)
	*indexFilterable = true

	return &models.Class{
		Class:       StaffDocumentClassName,
		Description: "Derived search projection of a staff directory record.",
		Vectorizer:  "none",
		InvertedIndexConfig: &models.InvertedIndexConfig{
			IndexTimestamps: true,
		},
		Properties: []*models.Property{
			{
				Name:            "doc_id",
				DataType:        []string{"text"},
				Description:     "Directory record id this document was projected from.",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:            "user_id",
				DataType:        []string{"int"},
				Description:     "Numeric staff identity carried into recommendations.",
				IndexFilterable: indexFilterable,
			},
			{
				Name:         "name",
				DataType:     []string{"text"},
				Description:  "Staff member display name.",
				Tokenization: "word",
			},
			{
				Name:            "department",
				DataType:        []string{"text"},
				Description:     "Department the staff member belongs to.",
				IndexFilterable: indexFilterable,
				Tokenization:    "word",
			},
			{
				Name:         "position",
				DataType:     []string{"text"},
				Description:  "Role title.",
				Tokenization: "word",
			},
			{
				Name:         "email",
				DataType:     []string{"text"},
				Description:  "Contact address.",
				Tokenization: "field",
			},
			{
				Name:         "skills_text",
				DataType:     []string{"text"},
				Description:  "Skills joined into one searchable string.",
				Tokenization: "word",
			},
			{
				Name:         "created_at",
				DataType:     []string{"text"},
				Description:  "Creation timestamp of the source record (opaque).",
				Tokenization: "field",
			},
			{
				Name:         "updated_at",
				DataType:     []string{"text"},
				Description:  "Last update timestamp of the source record (opaque).",
				Tokenization: "field",
			},
		},
	}
}

func GetMeetingDocumentSchema() *models.Class {
	indexFilterable := new(bool)
	*indexFilterable = true

	return &models.Class{
		Class:       MeetingDocumentClassName,
		Description: "Indexed meeting transcript with summary metadata.",
		Vectorizer:  "none",
		InvertedIndexConfig: &models.InvertedIndexConfig{
			IndexTimestamps: true,
		},
		Properties: []*models.Property{
			{
				Name:            "doc_id",
				DataType:        []string{"text"},
				Description:     "Stable document identifier.",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:         "content",
				DataType:     []string{"text"},
				Description:  "Full transcript text.",
				Tokenization: "word",
			},
			{
				Name:         "meeting_title",
				DataType:     []string{"text"},
				Description:  "Title of the meeting.",
				Tokenization: "word",
			},
			{
				Name:         "summary",
				DataType:     []string{"text"},
				Description:  "Generated meeting summary.",
				Tokenization: "word",
			},
			{
				Name:            "meeting_id",
				DataType:        []string{"text"},
				Description:     "Identifier of the persisted meeting record.",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:            "action_items_count",
				DataType:        []string{"int"},
				Description:     "Number of action items extracted from the meeting.",
				IndexFilterable: indexFilterable,
			},
			{
				Name:         "participants",
				DataType:     []string{"text"},
				Description:  "Comma-joined participant names.",
				Tokenization: "word",
			},
			{
				Name:         "keywords",
				DataType:     []string{"text"},
				Description:  "Extracted topic keywords.",
				Tokenization: "word",
			},
			{
				Name:            "created_at",
				DataType:        []string{"text"},
				Description:     "Creation timestamp (opaque).",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
		},
	}
}

func EnsureWeaviateSchema(client *weaviate.Client) {
	schemaGetters := []func() *models.Class{
		GetStaffDocumentSchema,
		GetMeetingDocumentSchema,
	}

	for _, getSchema := range schemaGetters {
		class := getSchema()
		slog.Info("Checking schema", "class", class.Class)

		// Check if the class already exists.
		_, err := client.Schema().ClassGetter().WithClassName(class.Class).Do(context.Background())
		if err != nil {
			// If it doesn't exist, the client returns an error. We can now create it.
			slog.Info("Schema not found, creating it...", "class", class.Class)
			err := client.Schema().ClassCreator().WithClass(class).Do(context.Background())
			if err != nil {
				log.Fatalf("Failed to create schema for class %s: %v", class.Class, err)
			}
			slog.Info("Successfully created schema", "class", class.Class)
		} else {
			slog.Info("Schema already exists", "class", class.Class)
		}
	}
}
