package api

import (
	"net/http"

	"github.com/okian/scoreboard/internal/domain/model"
)

// ChallengesHandler serves /challenges.
type ChallengesHandler struct {
	svc ChallengeService
}

// NewChallengesHandler creates a new challenges handler.
func NewChallengesHandler(svc ChallengeService) *ChallengesHandler {
	return &ChallengesHandler{svc: svc}
}

// HandleList handles GET /challenges.
func (h *ChallengesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListChallenges(r.Context()))
}

// HandleGet handles GET /challenges/{id}.
func (h *ChallengesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.svc.GetChallenge(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

// HandleCreate handles POST /challenges.
func (h *ChallengesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var p model.ChallengePatch
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	challenge, err := h.svc.CreateChallenge(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, challenge)
}

// HandleUpdate handles PUT /challenges/{id}.
func (h *ChallengesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var p model.ChallengePatch
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	challenge, err := h.svc.UpdateChallenge(r.Context(), r.PathValue("id"), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

// HandleDelete handles DELETE /challenges/{id}.
func (h *ChallengesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.DeleteChallenge(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
