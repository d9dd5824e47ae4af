package seed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/okian/scoreboard/internal/domain/model"
	"github.com/okian/scoreboard/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

const (
	healthMaxRetries     = 5
	percentageMultiplier = 100
)

// ErrVerification is returned when the reported leaderboard disagrees with
// the totals computed from the created scores.
var ErrVerification = errors.New("leaderboard verification failed")

// Run executes a complete seeding run and returns its statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	if config.Verbose {
		if err := logger.SetLevelString("debug"); err != nil {
			return stats, err
		}
	}
	log := logger.Named("seed")
	client := newHTTPClient(config.BaseURL, config.Timeout)

	log.Info(ctx, "starting scoreboard seed",
		logger.String("baseURL", config.BaseURL),
		logger.Int("teams", config.Teams),
		logger.Int("challenges", config.Challenges),
		logger.Int("scoresPerTeam", config.ScoresPerTeam),
		logger.Int("workers", config.Workers),
		logger.Bool("reset", config.Reset))

	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	if config.Reset {
		if err := client.do(ctx, http.MethodDelete, "/data", nil, http.StatusOK, nil); err != nil {
			return stats, fmt.Errorf("reset failed: %w", err)
		}
		log.Info(ctx, "existing data cleared")
	}

	var failed atomic.Int64

	teams, err := createAll(ctx, config.Workers, config.Teams, &failed, func(ctx context.Context, i int) (model.Team, error) {
		var t model.Team
		err := client.do(ctx, http.MethodPost, "/teams", generateTeam(i), http.StatusCreated, &t)
		return t, err
	})
	if err != nil {
		return stats, fmt.Errorf("team creation failed: %w", err)
	}
	stats.TeamsCreated = len(teams)
	log.Debug(ctx, "teams created", logger.Int("count", len(teams)))

	challenges, err := createAll(ctx, config.Workers, config.Challenges, &failed, func(ctx context.Context, i int) (model.Challenge, error) {
		var c model.Challenge
		err := client.do(ctx, http.MethodPost, "/challenges", generateChallenge(i), http.StatusCreated, &c)
		return c, err
	})
	if err != nil {
		return stats, fmt.Errorf("challenge creation failed: %w", err)
	}
	stats.ChallengesCreated = len(challenges)
	log.Debug(ctx, "challenges created", logger.Int("count", len(challenges)))

	var scores []model.Score
	if len(teams) > 0 && len(challenges) > 0 {
		total := len(teams) * config.ScoresPerTeam
		scores, err = createAll(ctx, config.Workers, total, &failed, func(ctx context.Context, i int) (model.Score, error) {
			team := teams[i%len(teams)]
			challenge := challenges[(i/len(teams))%len(challenges)]
			var s model.Score
			err := client.do(ctx, http.MethodPost, "/scores", generateScore(team.ID, challenge), http.StatusCreated, &s)
			return s, err
		})
		if err != nil {
			return stats, fmt.Errorf("score creation failed: %w", err)
		}
	}
	stats.ScoresCreated = len(scores)
	log.Debug(ctx, "scores created", logger.Int("count", len(scores)))
	stats.RequestsFailed = int(failed.Load())

	var board []model.TeamTotal
	if err := client.do(ctx, http.MethodGet, "/dashboard/leaderboard", nil, http.StatusOK, &board); err != nil {
		return stats, fmt.Errorf("leaderboard retrieval failed: %w", err)
	}
	stats.LeaderboardSize = len(board)

	created := model.Document{Teams: teams, Challenges: challenges, Scores: scores}
	stats.Mismatches = verifyLeaderboard(ctx, created, board)

	if config.OutputFile != "" {
		if err := saveSnapshot(ctx, client, config.OutputFile); err != nil {
			log.Warn(ctx, "failed to save snapshot", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if stats.Mismatches > 0 {
		return stats, fmt.Errorf("%w: %d mismatches", ErrVerification, stats.Mismatches)
	}
	log.Info(ctx, "seed completed successfully")
	return stats, nil
}

// createAll runs n creations over a bounded pool of workers. Failed requests
// are counted and logged; only context cancellation aborts the run. Results
// keep the index order.
func createAll[T any](ctx context.Context, workers, n int, failed *atomic.Int64, create func(ctx context.Context, i int) (T, error)) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = 1
	}

	var (
		mu      sync.Mutex
		results = make([]T, n)
		ok      = make([]bool, n)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			v, err := create(gctx, i)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failed.Add(1)
				logger.Get().Debug(gctx, "request failed", logger.Int("index", i), logger.Error(err))
				return nil
			}
			mu.Lock()
			results[i], ok[i] = v, true
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]T, 0, n)
	for i, v := range results {
		if ok[i] {
			out = append(out, v)
		}
	}
	return out, nil
}

// checkServiceHealth waits for /healthz with exponential backoff.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), healthMaxRetries),
		ctx,
	)
	err := backoff.Retry(func() error {
		var health struct {
			OK bool `json:"ok"`
		}
		if err := client.do(ctx, http.MethodGet, "/healthz", nil, http.StatusOK, &health); err != nil {
			return err
		}
		if !health.OK {
			return errors.New("service reports not ok")
		}
		return nil
	}, policy)
	if err != nil {
		return err
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveSnapshot downloads GET /data/export into filename.
func saveSnapshot(ctx context.Context, client *HTTPClient, filename string) error {
	var raw []byte
	if err := client.do(ctx, http.MethodGet, "/data/export", nil, http.StatusOK, &raw); err != nil {
		return err
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(filename, raw, filePermission); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	logger.Get().Info(ctx, "snapshot saved", logger.String("filename", filename), logger.Int("bytes", len(raw)))
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	attempted := stats.TeamsCreated + stats.ChallengesCreated + stats.ScoresCreated + stats.RequestsFailed
	var successRate, requestsPerSecond float64
	if attempted > 0 {
		successRate = float64(attempted-stats.RequestsFailed) / float64(attempted) * percentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(attempted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("teamsCreated", stats.TeamsCreated),
		logger.Int("challengesCreated", stats.ChallengesCreated),
		logger.Int("scoresCreated", stats.ScoresCreated),
		logger.Int("requestsFailed", stats.RequestsFailed),
		logger.Int("leaderboardSize", stats.LeaderboardSize),
		logger.Int("mismatches", stats.Mismatches),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
