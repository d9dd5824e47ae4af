package api

import (
	"net/http"
)

// DashboardHandler serves the derived views.
type DashboardHandler struct {
	svc DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(svc DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// HandleStats handles GET /dashboard/stats.
func (h *DashboardHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.DashboardStats(r.Context()))
}

// HandleLeaderboard handles GET /dashboard/leaderboard.
func (h *DashboardHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Leaderboard(r.Context()))
}

// HandleAchievements handles GET /dashboard/achievements.
func (h *DashboardHandler) HandleAchievements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.AllAchievements(r.Context()))
}

// HandleTeamAchievements handles GET /teams/{id}/achievements.
func (h *DashboardHandler) HandleTeamAchievements(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.TeamAchievements(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleBadges handles GET /badges.
func (h *DashboardHandler) HandleBadges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Badges(r.Context()))
}
