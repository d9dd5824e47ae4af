package model

// UnknownName stands in for a team or challenge a score points to but which
// no longer exists.
const UnknownName = "Unknown"

// ScoreView is a score with its team and challenge names resolved.
type ScoreView struct {
	Score
	TeamName      string `json:"teamName"`
	ChallengeName string `json:"challengeName"`
}

// TeamTotal is a team with the sum of its awarded points.
type TeamTotal struct {
	Team
	TotalPoints float64 `json:"totalPoints"`
}

// DashboardStats summarizes the document for the dashboard.
type DashboardStats struct {
	TotalTeams      int         `json:"totalTeams"`
	TotalChallenges int         `json:"totalChallenges"`
	TotalScores     int         `json:"totalScores"`
	TopTeams        []TeamTotal `json:"topTeams"`
}

// Achievement is a team's badge and point rollup.
type Achievement struct {
	Team
	TotalPoints float64  `json:"totalPoints"`
	Badges      []string `json:"badges"`
	ScoreCount  int      `json:"scoreCount"`
}

// DeleteResult confirms a delete.
type DeleteResult struct {
	Message       string `json:"message"`
	RemovedScores int    `json:"removedScores"`
}
