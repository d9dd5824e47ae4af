// Package service owns the scoreboard document and implements the
// operations required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	repository "github.com/okian/scoreboard/internal/adapters/repository"
	"github.com/okian/scoreboard/internal/domain/model"
	"github.com/okian/scoreboard/pkg/logger"
	"github.com/okian/scoreboard/pkg/metrics"
)

// Service holds the single in-memory document and funnels every change
// through its store. Writers are serialized; readers share a read lock.
type Service struct {
	mu sync.RWMutex

	store    repository.Store
	validate *validator.Validate
	newID    func() string

	doc       model.Document
	started   bool
	startedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the document store. The default keeps everything in memory.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithValidator replaces the struct validator.
func WithValidator(v *validator.Validate) Option {
	return func(s *Service) {
		if v != nil {
			s.validate = v
		}
	}
}

// WithIDGenerator replaces the uuid generator used for new entities.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New constructs a Service. Call Start before serving requests.
func New(opts ...Option) *Service {
	s := &Service{
		store:    repository.NewMemoryStore(),
		validate: newValidator(),
		newID:    uuid.NewString,
		doc:      model.EmptyDocument(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the persisted document. Unreadable state is logged and the
// service continues with an empty document.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	begin := time.Now()
	doc, err := s.store.Load(ctx)
	metrics.RecordPersistenceLatency("load", msSince(begin))
	if err != nil {
		metrics.RecordPersistenceError("load")
		s.logger.Warn(ctx, "could not load stored document, starting empty", logger.Error(err))
		doc = model.EmptyDocument()
	}
	doc.Normalize()

	s.doc = doc
	s.started = true
	s.startedAt = time.Now()
	s.updateCounts()

	s.logger.Info(ctx, "scoreboard service started",
		logger.Int("teams", len(doc.Teams)),
		logger.Int("challenges", len(doc.Challenges)),
		logger.Int("scores", len(doc.Scores)),
	)
	return nil
}

// Stop closes the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn(context.Background(), "closing store failed", logger.Error(err))
	}
	s.started = false
	s.logger.Info(context.Background(), "scoreboard service stopped")
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":         s.started,
		"totalTeams":      len(s.doc.Teams),
		"totalChallenges": len(s.doc.Challenges),
		"totalScores":     len(s.doc.Scores),
		"store":           fmt.Sprintf("%T", s.store),
	}
	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}
	return stats
}

// Counts returns the current collection sizes.
func (s *Service) Counts() (teams, challenges, scores int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.doc.Teams), len(s.doc.Challenges), len(s.doc.Scores)
}

// read runs fn against the current document under the read lock. fn must not
// retain or modify the document.
func (s *Service) read(fn func(doc model.Document)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.doc)
}

// mutate applies fn to a copy of the document, persists the copy and only
// then makes it current. A failing fn or save leaves the document untouched.
func (s *Service) mutate(ctx context.Context, fn func(doc *model.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.doc = next
	s.updateCounts()
	return nil
}

func (s *Service) persist(ctx context.Context, doc model.Document) error {
	begin := time.Now()
	err := s.store.Save(ctx, doc)
	metrics.RecordPersistenceLatency("save", msSince(begin))
	if err != nil {
		metrics.RecordPersistenceError("save")
		s.log().Error(ctx, "saving document failed", logger.Error(err))
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func (s *Service) updateCounts() {
	metrics.UpdateEntityCounts(len(s.doc.Teams), len(s.doc.Challenges), len(s.doc.Scores))
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		return logger.Get()
	}
	return s.logger
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
