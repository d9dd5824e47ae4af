package service

import (
	"context"
	"fmt"

	"github.com/okian/scoreboard/internal/domain/model"
	"github.com/okian/scoreboard/pkg/logger"
	"github.com/okian/scoreboard/pkg/metrics"
)

// ListChallenges returns every challenge in insertion order.
func (s *Service) ListChallenges(_ context.Context) []model.Challenge {
	var out []model.Challenge
	s.read(func(doc model.Document) {
		out = append([]model.Challenge{}, doc.Challenges...)
	})
	return out
}

// GetChallenge returns the challenge with id.
func (s *Service) GetChallenge(_ context.Context, id string) (model.Challenge, error) {
	var (
		challenge model.Challenge
		found     bool
	)
	s.read(func(doc model.Document) {
		if i := doc.ChallengeIndex(id); i >= 0 {
			challenge, found = doc.Challenges[i], true
		}
	})
	if !found {
		return model.Challenge{}, fmt.Errorf("challenge %q: %w", id, ErrNotFound)
	}
	return challenge, nil
}

// CreateChallenge adds a challenge built from p under a fresh id.
func (s *Service) CreateChallenge(ctx context.Context, p model.ChallengePatch) (model.Challenge, error) {
	if err := s.check(p); err != nil {
		return model.Challenge{}, err
	}
	challenge := model.NewChallenge(s.newID(), p)
	if err := s.check(challenge); err != nil {
		return model.Challenge{}, err
	}

	err := s.mutate(ctx, func(doc *model.Document) error {
		doc.Challenges = append(doc.Challenges, challenge)
		return nil
	})
	if err != nil {
		return model.Challenge{}, err
	}

	metrics.RecordMutation(metrics.EntityChallenge, "create")
	s.log().Debug(ctx, "challenge created", logger.String("id", challenge.ID), logger.String("name", challenge.Name))
	return challenge, nil
}

// UpdateChallenge merges p into the challenge with id.
func (s *Service) UpdateChallenge(ctx context.Context, id string, p model.ChallengePatch) (model.Challenge, error) {
	if err := s.check(p); err != nil {
		return model.Challenge{}, err
	}

	var updated model.Challenge
	err := s.mutate(ctx, func(doc *model.Document) error {
		i := doc.ChallengeIndex(id)
		if i < 0 {
			return fmt.Errorf("challenge %q: %w", id, ErrNotFound)
		}
		updated = p.Apply(doc.Challenges[i])
		if err := s.check(updated); err != nil {
			return err
		}
		doc.Challenges[i] = updated
		return nil
	})
	if err != nil {
		return model.Challenge{}, err
	}

	metrics.RecordMutation(metrics.EntityChallenge, "update")
	return updated, nil
}

// DeleteChallenge removes the challenge with id together with all of its
// scores.
func (s *Service) DeleteChallenge(ctx context.Context, id string) (model.DeleteResult, error) {
	var removed int
	err := s.mutate(ctx, func(doc *model.Document) error {
		i := doc.ChallengeIndex(id)
		if i < 0 {
			return fmt.Errorf("challenge %q: %w", id, ErrNotFound)
		}
		doc.Challenges = append(doc.Challenges[:i], doc.Challenges[i+1:]...)
		removed = doc.RemoveScoresWhere(func(sc model.Score) bool { return sc.ChallengeID == id })
		return nil
	})
	if err != nil {
		return model.DeleteResult{}, err
	}

	metrics.RecordMutation(metrics.EntityChallenge, "delete")
	metrics.RecordCascadeRemovedScores(removed)
	s.log().Debug(ctx, "challenge deleted", logger.String("id", id), logger.Int("removedScores", removed))
	return model.DeleteResult{Message: "Challenge deleted successfully", RemovedScores: removed}, nil
}
