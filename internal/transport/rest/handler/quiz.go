package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"codequiz/internal/model"
	"codequiz/internal/service"
)

// QuizHandler handles quiz generation endpoints
type QuizHandler struct {
	quizSvc *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizSvc *service.QuizService) *QuizHandler {
	return &QuizHandler{quizSvc: quizSvc}
}

// Generate handles POST /api/generate-quiz
func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req model.QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quiz, err := h.quizSvc.Generate(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInsufficientQuestions) {
			writeError(w, http.StatusBadRequest,
				"Insufficient questions available for the given preferences. Please try different settings or add more questions to the database.")
			return
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quiz)
}
