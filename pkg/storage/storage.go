// Package storage persists mind maps under generated identifiers so they can
// be fetched and laid out later, the way the web client revisits a map by id.
//
// Backends:
//   - [MemoryStore]: process-local, for tests and single-instance servers
//   - [FileStore]: JSON files in a directory, for the CLI
//   - [MongoStore]: a MongoDB collection, for shared deployments
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mindmap"
)

// Record is a stored mind map.
type Record struct {
	ID        string          `json:"id"`
	Map       mindmap.MindMap `json:"map"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store is the interface for mind map persistence.
type Store interface {
	// Put stores rec, replacing any record with the same ID.
	Put(ctx context.Context, rec *Record) error

	// Get returns the record with id, or an error with code NOT_FOUND.
	Get(ctx context.Context, id string) (*Record, error)

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	Close() error
}

// NewRecord wraps m in a record with a fresh UUID.
func NewRecord(m mindmap.MindMap) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Map:       m,
		CreatedAt: time.Now().UTC(),
	}
}

// Save stores m under a new identifier and returns the record.
func Save(ctx context.Context, s Store, m mindmap.MindMap) (*Record, error) {
	rec := NewRecord(m)
	if err := s.Put(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "mind map not found: %s", id)
}
