// Copyright (C) 2025 MeetMind AI (dev@meetmind.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package directory provides the authoritative staff record store on
// embedded BadgerDB.
//
// The directory is the source of truth for staff data; the search index is
// a derived projection rebuilt from it. Records are stored as JSON under
// "staff/<id>" keys, so ListAll iterates in stable key order, which the
// recommendation heuristic's tie-break depends on.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/meetmindai/meetmind/services/orchestrator/datatypes"
)

// ErrNotFound is returned when no record exists for the requested id.
var ErrNotFound = errors.New("staff record not found")

// keyPrefix namespaces staff records inside the database.
const keyPrefix = "staff/"

// Config holds configuration for the directory database.
type Config struct {
	// Path is the directory for BadgerDB files.
	// Required for persistent databases. Ignored when InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence).
	// Useful for testing.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Logger is the logger for BadgerDB operations.
	// If nil, BadgerDB's internal logging is disabled.
	Logger *slog.Logger
}

// DefaultConfig returns production defaults: durable synchronous writes at
// the given path.
func DefaultConfig(path string) Config {
	return Config{
		Path:       path,
		SyncWrites: true,
	}
}

// InMemoryConfig returns configuration optimized for testing.
func InMemoryConfig() Config {
	return Config{
		InMemory:   true,
		SyncWrites: false,
	}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Store is the staff directory backed by BadgerDB.
//
// # Thread Safety
//
// Store is safe for concurrent use; BadgerDB transactions provide isolation
// per operation.
type Store struct {
	db *badger.DB
}

// Open creates and opens a directory store with the given configuration.
//
// Description:
//
//	Opens a BadgerDB database at the configured path, or in memory if
//	InMemory is true. Creates the directory if it doesn't exist.
//
// Inputs:
//
//	cfg - Database configuration. Path is required unless InMemory is true.
//
// Outputs:
//
//	*Store - The opened store. Caller must call Close() when done.
//	error - Non-nil if path is invalid or the database cannot be opened.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open staff directory database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add inserts a new staff record.
//
// An empty ID is assigned a fresh UUID. CreatedAt/UpdatedAt are stamped
// here; callers should not set them. Adding an id that already exists is
// an error, use Update instead.
func (s *Store) Add(ctx context.Context, record *datatypes.StaffRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid staff record: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	record.CreatedAt = now
	record.UpdatedAt = now

	key := []byte(keyPrefix + record.ID)
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal staff record: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("staff record %s already exists", record.ID)
		}
		return txn.Set(key, value)
	})
	if err != nil {
		return err
	}

	slog.Info("Staff record added", "id", record.ID, "name", record.Name)
	return nil
}

// Get returns the record for id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*datatypes.StaffRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var record datatypes.StaffRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Update replaces an existing record, preserving its CreatedAt stamp.
func (s *Store) Update(ctx context.Context, record *datatypes.StaffRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid staff record: %w", err)
	}

	key := []byte(keyPrefix + record.ID)
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var existing datatypes.StaffRecord
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &existing)
		}); err != nil {
			return err
		}

		record.CreatedAt = existing.CreatedAt
		record.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

		value, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal staff record: %w", err)
		}
		return txn.Set(key, value)
	})
}

// Delete removes the record for id. Deleting a missing id returns
// ErrNotFound so callers can distinguish it from success.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(keyPrefix + id)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// ListAll returns every staff record in key order.
//
// Key order is stable for a fixed directory, which makes the heuristic
// fallback's first-record default deterministic.
func (s *Store) ListAll(ctx context.Context) ([]datatypes.StaffRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]datatypes.StaffRecord, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var record datatypes.StaffRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			})
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list staff records: %w", err)
	}
	return records, nil
}
