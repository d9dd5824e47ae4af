package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/scoreboard/internal/domain/aggregate"
	"github.com/okian/scoreboard/internal/domain/model"
	"github.com/okian/scoreboard/pkg/metrics"
)

// DashboardStats returns counts and the top teams.
func (s *Service) DashboardStats(_ context.Context) model.DashboardStats {
	defer observe("dashboard_stats", time.Now())
	var out model.DashboardStats
	s.read(func(doc model.Document) {
		out = aggregate.DashboardStats(doc)
	})
	return out
}

// Leaderboard returns every team with its total, highest first.
func (s *Service) Leaderboard(_ context.Context) []model.TeamTotal {
	defer observe("team_totals", time.Now())
	var out []model.TeamTotal
	s.read(func(doc model.Document) {
		out = aggregate.TeamTotals(doc)
	})
	return out
}

// TeamAchievements returns the badge rollup of one team.
func (s *Service) TeamAchievements(_ context.Context, teamID string) (model.Achievement, error) {
	defer observe("team_achievements", time.Now())
	var (
		out   model.Achievement
		found bool
	)
	s.read(func(doc model.Document) {
		if doc.TeamIndex(teamID) < 0 {
			return
		}
		found = true
		out = aggregate.TeamAchievements(doc, teamID)
	})
	if !found {
		return model.Achievement{}, fmt.Errorf("team %q: %w", teamID, ErrNotFound)
	}
	return out, nil
}

// AllAchievements returns the rollup of every team, highest total first.
func (s *Service) AllAchievements(_ context.Context) []model.Achievement {
	defer observe("team_achievements_all", time.Now())
	var out []model.Achievement
	s.read(func(doc model.Document) {
		out = aggregate.TeamAchievementsAll(doc)
	})
	return out
}

// Badges returns the predefined badge catalog.
func (s *Service) Badges(_ context.Context) []model.Badge {
	return model.BadgeCatalog()
}

func observe(view string, begin time.Time) {
	metrics.RecordAggregationLatency(view, msSince(begin))
}
