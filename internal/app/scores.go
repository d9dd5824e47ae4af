package service

import (
	"context"
	"fmt"

	"github.com/okian/scoreboard/internal/domain/aggregate"
	"github.com/okian/scoreboard/internal/domain/model"
	"github.com/okian/scoreboard/pkg/logger"
	"github.com/okian/scoreboard/pkg/metrics"
)

// ListScores returns every score with team and challenge names resolved.
func (s *Service) ListScores(_ context.Context) []model.ScoreView {
	var out []model.ScoreView
	s.read(func(doc model.Document) {
		out = aggregate.ScoresWithNames(doc)
	})
	return out
}

// GetScore returns the score with id.
func (s *Service) GetScore(_ context.Context, id string) (model.Score, error) {
	var (
		score model.Score
		found bool
	)
	s.read(func(doc model.Document) {
		if i := doc.ScoreIndex(id); i >= 0 {
			score, found = doc.Scores[i], true
		}
	})
	if !found {
		return model.Score{}, fmt.Errorf("score %q: %w", id, ErrNotFound)
	}
	return score, nil
}

// CreateScore awards points built from p under a fresh id. The referenced
// team and challenge must exist.
func (s *Service) CreateScore(ctx context.Context, p model.ScorePatch) (model.Score, error) {
	if err := s.check(p); err != nil {
		return model.Score{}, err
	}
	score := model.NewScore(s.newID(), p)
	if err := s.check(score); err != nil {
		return model.Score{}, err
	}

	err := s.mutate(ctx, func(doc *model.Document) error {
		if err := checkReferences(*doc, score); err != nil {
			return err
		}
		doc.Scores = append(doc.Scores, score)
		return nil
	})
	if err != nil {
		return model.Score{}, err
	}

	metrics.RecordMutation(metrics.EntityScore, "create")
	s.log().Debug(ctx, "score created",
		logger.String("id", score.ID),
		logger.String("teamId", score.TeamID),
		logger.Float64("points", score.Points),
	)
	return score, nil
}

// UpdateScore merges p into the score with id.
func (s *Service) UpdateScore(ctx context.Context, id string, p model.ScorePatch) (model.Score, error) {
	if err := s.check(p); err != nil {
		return model.Score{}, err
	}

	var updated model.Score
	err := s.mutate(ctx, func(doc *model.Document) error {
		i := doc.ScoreIndex(id)
		if i < 0 {
			return fmt.Errorf("score %q: %w", id, ErrNotFound)
		}
		updated = p.Apply(doc.Scores[i])
		if err := s.check(updated); err != nil {
			return err
		}
		if p.TeamID != nil || p.ChallengeID != nil {
			if err := checkReferences(*doc, updated); err != nil {
				return err
			}
		}
		doc.Scores[i] = updated
		return nil
	})
	if err != nil {
		return model.Score{}, err
	}

	metrics.RecordMutation(metrics.EntityScore, "update")
	return updated, nil
}

// DeleteScore removes the score with id.
func (s *Service) DeleteScore(ctx context.Context, id string) (model.DeleteResult, error) {
	err := s.mutate(ctx, func(doc *model.Document) error {
		i := doc.ScoreIndex(id)
		if i < 0 {
			return fmt.Errorf("score %q: %w", id, ErrNotFound)
		}
		doc.Scores = append(doc.Scores[:i], doc.Scores[i+1:]...)
		return nil
	})
	if err != nil {
		return model.DeleteResult{}, err
	}

	metrics.RecordMutation(metrics.EntityScore, "delete")
	return model.DeleteResult{Message: "Score deleted successfully"}, nil
}

func checkReferences(doc model.Document, sc model.Score) error {
	if doc.TeamIndex(sc.TeamID) < 0 {
		return invalid("teamId %q does not match a team", sc.TeamID)
	}
	if doc.ChallengeIndex(sc.ChallengeID) < 0 {
		return invalid("challengeId %q does not match a challenge", sc.ChallengeID)
	}
	return nil
}
