// Package seed populates a running scoreboard API with generated teams,
// challenges and scores, then checks the leaderboard it reports.
package seed

import "time"

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL       string        // Base URL of the service
	Teams         int           // Number of teams to create
	Challenges    int           // Number of challenges to create
	ScoresPerTeam int           // Scores awarded to each team
	Workers       int           // Number of concurrent workers
	Timeout       time.Duration // HTTP request timeout
	Reset         bool          // Clear existing data first
	OutputFile    string        // Where to save the exported snapshot
	Verbose       bool          // Log at debug level, including each failed request
}

// Stats holds run statistics.
type Stats struct {
	TeamsCreated      int
	ChallengesCreated int
	ScoresCreated     int
	RequestsFailed    int
	LeaderboardSize   int
	Mismatches        int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
