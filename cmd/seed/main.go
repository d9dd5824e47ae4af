package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/scoreboard/internal/seed"
)

// Default configuration constants.
const (
	defaultTeams         = 12
	defaultChallenges    = 6
	defaultScoresPerTeam = 5
	defaultWorkers       = 2 // multiplier for runtime.NumCPU()
	defaultTimeout       = 30 * time.Second
	defaultRunTimeout    = 10 * time.Minute
)

func main() {
	var (
		baseURL       = flag.String("url", "http://localhost:4001", "Base URL of the service")
		teams         = flag.Int("teams", defaultTeams, "Number of teams to create")
		challenges    = flag.Int("challenges", defaultChallenges, "Number of challenges to create")
		scoresPerTeam = flag.Int("scores", defaultScoresPerTeam, "Scores awarded to each team")
		workers       = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout       = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		reset         = flag.Bool("reset", false, "Clear all existing data before seeding")
		outputFile    = flag.String("output", "", "File to save the exported snapshot to (default: seed_export_TIMESTAMP.json)")
		logFile       = flag.String("log", "", "Log file for the run (default: seed_log_TIMESTAMP.log)")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
		help          = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seed.ShowHelp()
		return
	}

	if err := seed.SetupLogging(*logFile); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	output := *outputFile
	if output == "" {
		output = "seed_export_" + time.Now().Format("20060102_150405") + ".json"
	}

	config := &seed.Config{
		BaseURL:       *baseURL,
		Teams:         *teams,
		Challenges:    *challenges,
		ScoresPerTeam: *scoresPerTeam,
		Workers:       *workers,
		Timeout:       *timeout,
		Reset:         *reset,
		OutputFile:    output,
		Verbose:       *verbose,
	}

	if _, err := seed.Run(ctx, config); err != nil {
		_, _ = os.Stderr.WriteString("Seed failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
