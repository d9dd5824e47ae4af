package service

import (
	"context"
	"fmt"

	"github.com/okian/scoreboard/internal/domain/model"
	"github.com/okian/scoreboard/pkg/logger"
	"github.com/okian/scoreboard/pkg/metrics"
)

// Export renders the current document as indented JSON.
func (s *Service) Export(_ context.Context) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	s.read(func(doc model.Document) {
		raw, err = model.EncodeSnapshot(doc)
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordSnapshotExport()
	return raw, nil
}

// Import replaces the whole document with the snapshot in raw. Invalid
// snapshots are rejected with ErrValidation and change nothing.
func (s *Service) Import(ctx context.Context, raw []byte) error {
	doc, err := model.DecodeSnapshot(raw)
	if err != nil {
		metrics.RecordSnapshotImport("invalid")
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := s.checkDocument(doc); err != nil {
		metrics.RecordSnapshotImport("invalid")
		return err
	}

	err = s.mutate(ctx, func(next *model.Document) error {
		*next = doc
		return nil
	})
	if err != nil {
		metrics.RecordSnapshotImport("failed")
		return err
	}

	metrics.RecordSnapshotImport("ok")
	s.log().Info(ctx, "snapshot imported",
		logger.Int("teams", len(doc.Teams)),
		logger.Int("challenges", len(doc.Challenges)),
		logger.Int("scores", len(doc.Scores)),
	)
	return nil
}

// checkDocument validates every imported entity the same way a create
// would. Score references are not checked.
func (s *Service) checkDocument(doc model.Document) error {
	for i, t := range doc.Teams {
		if err := s.check(t); err != nil {
			return fmt.Errorf("teams[%d]: %w", i, err)
		}
	}
	for i, c := range doc.Challenges {
		if err := s.check(c); err != nil {
			return fmt.Errorf("challenges[%d]: %w", i, err)
		}
	}
	for i, sc := range doc.Scores {
		if err := s.check(sc); err != nil {
			return fmt.Errorf("scores[%d]: %w", i, err)
		}
	}
	return nil
}

// Reset clears the store and the in-memory document.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Reset(ctx); err != nil {
		metrics.RecordPersistenceError("reset")
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	s.doc = model.EmptyDocument()
	s.updateCounts()
	s.log().Info(ctx, "scoreboard data reset")
	return nil
}
