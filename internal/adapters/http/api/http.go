// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/scoreboard/internal/domain/model"
	"github.com/okian/scoreboard/pkg/logger"
)

const defaultMaxImportBytes = 10 << 20

// TeamService covers team CRUD.
type TeamService interface {
	ListTeams(ctx context.Context) []model.Team
	GetTeam(ctx context.Context, id string) (model.Team, error)
	CreateTeam(ctx context.Context, p model.TeamPatch) (model.Team, error)
	UpdateTeam(ctx context.Context, id string, p model.TeamPatch) (model.Team, error)
	DeleteTeam(ctx context.Context, id string) (model.DeleteResult, error)
}

// ChallengeService covers challenge CRUD.
type ChallengeService interface {
	ListChallenges(ctx context.Context) []model.Challenge
	GetChallenge(ctx context.Context, id string) (model.Challenge, error)
	CreateChallenge(ctx context.Context, p model.ChallengePatch) (model.Challenge, error)
	UpdateChallenge(ctx context.Context, id string, p model.ChallengePatch) (model.Challenge, error)
	DeleteChallenge(ctx context.Context, id string) (model.DeleteResult, error)
}

// ScoreService covers score CRUD.
type ScoreService interface {
	ListScores(ctx context.Context) []model.ScoreView
	GetScore(ctx context.Context, id string) (model.Score, error)
	CreateScore(ctx context.Context, p model.ScorePatch) (model.Score, error)
	UpdateScore(ctx context.Context, id string, p model.ScorePatch) (model.Score, error)
	DeleteScore(ctx context.Context, id string) (model.DeleteResult, error)
}

// DashboardService exposes the derived views.
type DashboardService interface {
	DashboardStats(ctx context.Context) model.DashboardStats
	Leaderboard(ctx context.Context) []model.TeamTotal
	TeamAchievements(ctx context.Context, teamID string) (model.Achievement, error)
	AllAchievements(ctx context.Context) []model.Achievement
	Badges(ctx context.Context) []model.Badge
}

// TransferService moves whole documents in and out.
type TransferService interface {
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, raw []byte) error
	Reset(ctx context.Context) error
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	TeamService
	ChallengeService
	ScoreService
	DashboardService
	TransferService
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	metricsHandler   *MetricsHandler
	statsHandler     *StatsHandler
	teamsHandler     *TeamsHandler
	challengeHandler *ChallengesHandler
	scoresHandler    *ScoresHandler
	dashboardHandler *DashboardHandler
	transferHandler  *TransferHandler
}

// ServerOption configures NewServer.
type ServerOption func(*serverOptions)

type serverOptions struct {
	maxImportBytes int64
}

// WithMaxImportBytes caps the size of POST /data/import bodies.
func WithMaxImportBytes(n int64) ServerOption {
	return func(o *serverOptions) {
		if n > 0 {
			o.maxImportBytes = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	o := serverOptions{maxImportBytes: defaultMaxImportBytes}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		healthHandler:    NewHealthHandler(),
		metricsHandler:   NewMetricsHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		teamsHandler:     NewTeamsHandler(deps),
		challengeHandler: NewChallengesHandler(deps),
		scoresHandler:    NewScoresHandler(deps),
		dashboardHandler: NewDashboardHandler(deps),
		transferHandler:  NewTransferHandler(deps, o.maxImportBytes),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /api", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", s.metricsHandler.HandleMetrics)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /teams", MetricsMiddleware(s.teamsHandler.HandleList, "teams"))
	mux.HandleFunc("POST /teams", MetricsMiddleware(s.teamsHandler.HandleCreate, "teams"))
	mux.HandleFunc("GET /teams/{id}", MetricsMiddleware(s.teamsHandler.HandleGet, "team"))
	mux.HandleFunc("PUT /teams/{id}", MetricsMiddleware(s.teamsHandler.HandleUpdate, "team"))
	mux.HandleFunc("DELETE /teams/{id}", MetricsMiddleware(s.teamsHandler.HandleDelete, "team"))
	mux.HandleFunc("GET /teams/{id}/achievements", MetricsMiddleware(s.dashboardHandler.HandleTeamAchievements, "team_achievements"))

	mux.HandleFunc("GET /challenges", MetricsMiddleware(s.challengeHandler.HandleList, "challenges"))
	mux.HandleFunc("POST /challenges", MetricsMiddleware(s.challengeHandler.HandleCreate, "challenges"))
	mux.HandleFunc("GET /challenges/{id}", MetricsMiddleware(s.challengeHandler.HandleGet, "challenge"))
	mux.HandleFunc("PUT /challenges/{id}", MetricsMiddleware(s.challengeHandler.HandleUpdate, "challenge"))
	mux.HandleFunc("DELETE /challenges/{id}", MetricsMiddleware(s.challengeHandler.HandleDelete, "challenge"))

	mux.HandleFunc("GET /scores", MetricsMiddleware(s.scoresHandler.HandleList, "scores"))
	mux.HandleFunc("POST /scores", MetricsMiddleware(s.scoresHandler.HandleCreate, "scores"))
	mux.HandleFunc("GET /scores/{id}", MetricsMiddleware(s.scoresHandler.HandleGet, "score"))
	mux.HandleFunc("PUT /scores/{id}", MetricsMiddleware(s.scoresHandler.HandleUpdate, "score"))
	mux.HandleFunc("DELETE /scores/{id}", MetricsMiddleware(s.scoresHandler.HandleDelete, "score"))

	mux.HandleFunc("GET /dashboard/stats", MetricsMiddleware(s.dashboardHandler.HandleStats, "dashboard_stats"))
	mux.HandleFunc("GET /dashboard/leaderboard", MetricsMiddleware(s.dashboardHandler.HandleLeaderboard, "dashboard_leaderboard"))
	mux.HandleFunc("GET /dashboard/achievements", MetricsMiddleware(s.dashboardHandler.HandleAchievements, "dashboard_achievements"))
	mux.HandleFunc("GET /badges", MetricsMiddleware(s.dashboardHandler.HandleBadges, "badges"))

	mux.HandleFunc("GET /data/export", MetricsMiddleware(s.transferHandler.HandleExport, "data_export"))
	mux.HandleFunc("POST /data/import", MetricsMiddleware(s.transferHandler.HandleImport, "data_import"))
	mux.HandleFunc("DELETE /data", MetricsMiddleware(s.transferHandler.HandleReset, "data_reset"))
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err as {code,message}. Server-side failures are logged
// and their details kept out of the response.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Get().Error(r.Context(), "request failed",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Error(err),
		)
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeJSON reads a single JSON value from the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, model.ErrNotANumber) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrBadRequest)
		}
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}
