// Package repository persists the scoreboard document.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/okian/scoreboard/internal/domain/model"
)

// Store loads and saves the whole scoreboard document.
type Store interface {
	// Load returns the persisted document. When nothing has been stored yet
	// it returns an empty document and no error. Unreadable state yields an
	// empty document together with an error wrapping ErrCorruptDocument.
	Load(ctx context.Context) (model.Document, error)

	// Save replaces the persisted document. Failures wrap ErrSaveDocument.
	Save(ctx context.Context, doc model.Document) error

	// Reset removes any persisted state.
	Reset(ctx context.Context) error

	// Close releases resources held by the store.
	Close() error
}

// decodeStored parses previously saved state. Missing collections are
// tolerated and normalized to empty ones.
func decodeStored(raw []byte) (model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.EmptyDocument(), fmt.Errorf("%w: %w", ErrCorruptDocument, err)
	}
	doc.Normalize()
	return doc, nil
}

// Store drivers accepted by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Open builds the store for driver. target is the JSON file path for the file
// driver, the database path for sqlite, and ignored for memory.
func Open(driver, target string, opts ...Option) (Store, error) {
	switch driver {
	case DriverFile:
		return NewFileStore(target, opts...)
	case DriverSQLite:
		return OpenSQLite(target, opts...)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
