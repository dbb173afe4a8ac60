package handler

import (
	"encoding/json"
	"net/http"

	"codequiz/internal/model"
	"codequiz/internal/service"

	"github.com/gorilla/mux"
)

const leaderboardLimit = 10

// ScoreHandler handles score and leaderboard endpoints
type ScoreHandler struct {
	scoreSvc *service.ScoreService
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scoreSvc *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreSvc: scoreSvc}
}

// Submit handles POST /api/scores
func (h *ScoreHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	score, err := h.scoreSvc.Submit(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Score saved successfully",
		"scoreId": score.ID.Hex(),
	})
}

// UserScores handles GET /api/scores/user/{userId}
func (h *ScoreHandler) UserScores(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	scores, err := h.scoreSvc.UserScores(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if scores == nil {
		scores = []model.Score{}
	}

	writeJSON(w, http.StatusOK, scores)
}

// Leaderboard handles GET /api/leaderboard
func (h *ScoreHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.scoreSvc.Leaderboard(r.Context(), "", leaderboardLimit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// LeaderboardByCategory handles GET /api/leaderboard/{category}
func (h *ScoreHandler) LeaderboardByCategory(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	entries, err := h.scoreSvc.Leaderboard(r.Context(), category, leaderboardLimit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// Stats handles GET /api/stats/{userId}
func (h *ScoreHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	stats, err := h.scoreSvc.Stats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
