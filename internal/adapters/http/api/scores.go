package api

import (
	"net/http"

	"github.com/okian/scoreboard/internal/domain/model"
)

// ScoresHandler serves /scores.
type ScoresHandler struct {
	svc ScoreService
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(svc ScoreService) *ScoresHandler {
	return &ScoresHandler{svc: svc}
}

// HandleList handles GET /scores. Scores carry resolved team and challenge
// names.
func (h *ScoresHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListScores(r.Context()))
}

// HandleGet handles GET /scores/{id}.
func (h *ScoresHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	score, err := h.svc.GetScore(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

// HandleCreate handles POST /scores.
func (h *ScoresHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var p model.ScorePatch
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	score, err := h.svc.CreateScore(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, score)
}

// HandleUpdate handles PUT /scores/{id}.
func (h *ScoresHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var p model.ScorePatch
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	score, err := h.svc.UpdateScore(r.Context(), r.PathValue("id"), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

// HandleDelete handles DELETE /scores/{id}.
func (h *ScoresHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.DeleteScore(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
