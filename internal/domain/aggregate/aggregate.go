// Package aggregate derives the leaderboard, dashboard and achievement views
// from a scoreboard document. Every function is pure: the input document is
// never modified and nothing is cached between calls.
package aggregate

import (
	"sort"

	"github.com/okian/scoreboard/internal/domain/model"
)

// TopTeamsLimit is the number of leaders reported by DashboardStats.
const TopTeamsLimit = 3

// ScoresWithNames resolves the team and challenge names of every score.
// References that no longer resolve read as model.UnknownName.
func ScoresWithNames(doc model.Document) []model.ScoreView {
	teams := make(map[string]string, len(doc.Teams))
	for _, t := range doc.Teams {
		teams[t.ID] = t.Name
	}
	challenges := make(map[string]string, len(doc.Challenges))
	for _, c := range doc.Challenges {
		challenges[c.ID] = c.Name
	}

	out := make([]model.ScoreView, 0, len(doc.Scores))
	for _, s := range doc.Scores {
		v := model.ScoreView{Score: s, TeamName: model.UnknownName, ChallengeName: model.UnknownName}
		if name, ok := teams[s.TeamID]; ok {
			v.TeamName = name
		}
		if name, ok := challenges[s.ChallengeID]; ok {
			v.ChallengeName = name
		}
		out = append(out, v)
	}
	return out
}

// TeamTotals sums the points of each team and orders the teams by total,
// highest first. Equal totals keep the team collection order.
func TeamTotals(doc model.Document) []model.TeamTotal {
	sums := pointsByTeam(doc.Scores)

	out := make([]model.TeamTotal, 0, len(doc.Teams))
	for _, t := range doc.Teams {
		out = append(out, model.TeamTotal{Team: t, TotalPoints: sums[t.ID]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalPoints > out[j].TotalPoints
	})
	return out
}

// DashboardStats reports collection sizes and the top teams.
func DashboardStats(doc model.Document) model.DashboardStats {
	top := TeamTotals(doc)
	if len(top) > TopTeamsLimit {
		top = top[:TopTeamsLimit]
	}
	return model.DashboardStats{
		TotalTeams:      len(doc.Teams),
		TotalChallenges: len(doc.Challenges),
		TotalScores:     len(doc.Scores),
		TopTeams:        top,
	}
}

// TeamAchievements rolls up the scores of one team. Badges appear in score
// collection order and duplicates are kept. An id with no matching team
// yields an achievement carrying only that id.
func TeamAchievements(doc model.Document, teamID string) model.Achievement {
	a := model.Achievement{Team: model.Team{ID: teamID}, Badges: []string{}}
	if i := doc.TeamIndex(teamID); i >= 0 {
		a.Team = doc.Teams[i]
	}
	accumulate(&a, doc.Scores)
	return a
}

// TeamAchievementsAll computes TeamAchievements for every team, highest total
// first, ties in team collection order.
func TeamAchievementsAll(doc model.Document) []model.Achievement {
	byTeam := make(map[string]int, len(doc.Teams))
	out := make([]model.Achievement, len(doc.Teams))
	for i, t := range doc.Teams {
		out[i] = model.Achievement{Team: t, Badges: []string{}}
		if _, seen := byTeam[t.ID]; !seen {
			byTeam[t.ID] = i
		}
	}
	for _, s := range doc.Scores {
		i, ok := byTeam[s.TeamID]
		if !ok {
			continue
		}
		add(&out[i], s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalPoints > out[j].TotalPoints
	})
	return out
}

func pointsByTeam(scores []model.Score) map[string]float64 {
	sums := make(map[string]float64)
	for _, s := range scores {
		sums[s.TeamID] += s.Points
	}
	return sums
}

func accumulate(a *model.Achievement, scores []model.Score) {
	for _, s := range scores {
		if s.TeamID == a.ID {
			add(a, s)
		}
	}
}

func add(a *model.Achievement, s model.Score) {
	a.TotalPoints += s.Points
	a.ScoreCount++
	if s.HasBadge() {
		a.Badges = append(a.Badges, *s.Badge)
	}
}
