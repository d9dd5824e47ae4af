package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/scoreboard/internal/domain/model"
)

// MemoryStore keeps the encoded document in memory. Saved documents are
// encoded so later changes to the caller's slices do not leak in.
type MemoryStore struct {
	mu     sync.Mutex
	raw    []byte
	closed bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load decodes the last saved document.
func (s *MemoryStore) Load(_ context.Context) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return model.EmptyDocument(), ErrStoreClosed
	}
	if s.raw == nil {
		return model.EmptyDocument(), nil
	}
	return decodeStored(s.raw)
}

// Save encodes and keeps doc.
func (s *MemoryStore) Save(_ context.Context, doc model.Document) error {
	raw, err := model.EncodeSnapshot(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveDocument, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("%w: %w", ErrSaveDocument, ErrStoreClosed)
	}
	s.raw = raw
	return nil
}

// Reset forgets the saved document.
func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.raw = nil
	return nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
