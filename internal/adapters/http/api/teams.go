package api

import (
	"net/http"

	"github.com/okian/scoreboard/internal/domain/model"
)

// TeamsHandler serves /teams.
type TeamsHandler struct {
	svc TeamService
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(svc TeamService) *TeamsHandler {
	return &TeamsHandler{svc: svc}
}

// HandleList handles GET /teams.
func (h *TeamsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListTeams(r.Context()))
}

// HandleGet handles GET /teams/{id}.
func (h *TeamsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	team, err := h.svc.GetTeam(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// HandleCreate handles POST /teams.
func (h *TeamsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var p model.TeamPatch
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	team, err := h.svc.CreateTeam(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

// HandleUpdate handles PUT /teams/{id}.
func (h *TeamsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var p model.TeamPatch
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	team, err := h.svc.UpdateTeam(r.Context(), r.PathValue("id"), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// HandleDelete handles DELETE /teams/{id}.
func (h *TeamsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.DeleteTeam(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
