package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/scoreboard/pkg/logger"
)

const logFilePermission = 0o600

// SetupLogging sends log output to both stdout and logFile. An empty
// logFile gets a timestamped name.
func SetupLogging(logFile string) error {
	if logFile == "" {
		logFile = "seed_log_" + time.Now().Format("20060102_150405") + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	if err := logger.Init(logger.WithWriter(io.MultiWriter(os.Stdout, file))); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the seed tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Scoreboard Seed Tool
====================

Fills a running scoreboard API with generated teams, challenges and scores,
then checks that the leaderboard totals match what was submitted.

Usage:
  go run ./cmd/seed [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:4001")
  -teams int
        Number of teams to create (default 12)
  -challenges int
        Number of challenges to create (default 6)
  -scores int
        Scores awarded to each team (default 5)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -reset
        Clear all existing data before seeding
  -output string
        File to save the exported snapshot to (default: seed_export_TIMESTAMP.json)
  -log string
        Log file for the run (default: seed_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed a local instance with defaults
  go run ./cmd/seed

  # Start from a clean slate with a larger event
  go run ./cmd/seed -reset -teams 40 -challenges 10 -scores 8

  # Seed a remote instance
  go run ./cmd/seed -url http://scoreboard.internal:4001 -workers 4
`)
}
