package service

import (
	"context"
	"fmt"

	"github.com/okian/scoreboard/internal/domain/model"
	"github.com/okian/scoreboard/pkg/logger"
	"github.com/okian/scoreboard/pkg/metrics"
)

// ListTeams returns every team in insertion order.
func (s *Service) ListTeams(_ context.Context) []model.Team {
	var out []model.Team
	s.read(func(doc model.Document) {
		out = append([]model.Team{}, doc.Teams...)
	})
	return out
}

// GetTeam returns the team with id.
func (s *Service) GetTeam(_ context.Context, id string) (model.Team, error) {
	var (
		team  model.Team
		found bool
	)
	s.read(func(doc model.Document) {
		if i := doc.TeamIndex(id); i >= 0 {
			team, found = doc.Teams[i], true
		}
	})
	if !found {
		return model.Team{}, fmt.Errorf("team %q: %w", id, ErrNotFound)
	}
	return team, nil
}

// CreateTeam adds a team built from p under a fresh id.
func (s *Service) CreateTeam(ctx context.Context, p model.TeamPatch) (model.Team, error) {
	if err := s.check(p); err != nil {
		return model.Team{}, err
	}
	team := model.NewTeam(s.newID(), p)
	if err := s.check(team); err != nil {
		return model.Team{}, err
	}

	err := s.mutate(ctx, func(doc *model.Document) error {
		doc.Teams = append(doc.Teams, team)
		return nil
	})
	if err != nil {
		return model.Team{}, err
	}

	metrics.RecordMutation(metrics.EntityTeam, "create")
	s.log().Debug(ctx, "team created", logger.String("id", team.ID), logger.String("name", team.Name))
	return team, nil
}

// UpdateTeam merges p into the team with id.
func (s *Service) UpdateTeam(ctx context.Context, id string, p model.TeamPatch) (model.Team, error) {
	if err := s.check(p); err != nil {
		return model.Team{}, err
	}

	var updated model.Team
	err := s.mutate(ctx, func(doc *model.Document) error {
		i := doc.TeamIndex(id)
		if i < 0 {
			return fmt.Errorf("team %q: %w", id, ErrNotFound)
		}
		updated = p.Apply(doc.Teams[i])
		if err := s.check(updated); err != nil {
			return err
		}
		doc.Teams[i] = updated
		return nil
	})
	if err != nil {
		return model.Team{}, err
	}

	metrics.RecordMutation(metrics.EntityTeam, "update")
	return updated, nil
}

// DeleteTeam removes the team with id together with all of its scores.
func (s *Service) DeleteTeam(ctx context.Context, id string) (model.DeleteResult, error) {
	var removed int
	err := s.mutate(ctx, func(doc *model.Document) error {
		i := doc.TeamIndex(id)
		if i < 0 {
			return fmt.Errorf("team %q: %w", id, ErrNotFound)
		}
		doc.Teams = append(doc.Teams[:i], doc.Teams[i+1:]...)
		removed = doc.RemoveScoresWhere(func(sc model.Score) bool { return sc.TeamID == id })
		return nil
	})
	if err != nil {
		return model.DeleteResult{}, err
	}

	metrics.RecordMutation(metrics.EntityTeam, "delete")
	metrics.RecordCascadeRemovedScores(removed)
	s.log().Debug(ctx, "team deleted", logger.String("id", id), logger.Int("removedScores", removed))
	return model.DeleteResult{Message: "Team deleted successfully", RemovedScores: removed}, nil
}
