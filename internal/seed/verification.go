package seed

import (
	"context"
	"math"

	"github.com/okian/scoreboard/internal/domain/aggregate"
	"github.com/okian/scoreboard/internal/domain/model"
	"github.com/okian/scoreboard/pkg/logger"
)

const pointsTolerance = 1e-9

// verifyLeaderboard compares the reported leaderboard with totals computed
// locally from the entities this run created. Teams that existed before the
// run are ignored. It also checks the board is ordered by total. The number
// of problems found is returned.
func verifyLeaderboard(ctx context.Context, created model.Document, board []model.TeamTotal) int {
	log := logger.Named("verify")
	mismatches := 0

	reported := make(map[string]float64, len(board))
	for i, entry := range board {
		reported[entry.ID] = entry.TotalPoints
		if i > 0 && board[i-1].TotalPoints < entry.TotalPoints {
			mismatches++
			log.Error(ctx, "leaderboard out of order",
				logger.Int("position", i),
				logger.Float64("previous", board[i-1].TotalPoints),
				logger.Float64("current", entry.TotalPoints))
		}
	}

	for _, want := range aggregate.TeamTotals(created) {
		got, ok := reported[want.ID]
		switch {
		case !ok:
			mismatches++
			log.Error(ctx, "team missing from leaderboard", logger.String("teamId", want.ID))
		case math.Abs(got-want.TotalPoints) > pointsTolerance:
			mismatches++
			log.Error(ctx, "team total differs",
				logger.String("teamId", want.ID),
				logger.Float64("expected", want.TotalPoints),
				logger.Float64("reported", got))
		}
	}

	log.Info(ctx, "leaderboard verified",
		logger.Int("checkedTeams", len(created.Teams)),
		logger.Int("mismatches", mismatches))
	return mismatches
}
