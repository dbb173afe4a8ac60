package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"codequiz/internal/repository"
	"codequiz/internal/service"

	"github.com/gorilla/mux"
)

// QuestionHandler handles question-bank read endpoints
type QuestionHandler struct {
	questionSvc *service.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionSvc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionSvc: questionSvc}
}

// Random handles GET /api/questions/random
func (h *QuestionHandler) Random(w http.ResponseWriter, r *http.Request) {
	filter := repository.QuestionFilter{
		Category:   r.URL.Query().Get("category"),
		Difficulty: r.URL.Query().Get("difficulty"),
	}
	h.sample(w, r, filter, "No questions found")
}

// ByCategory handles GET /api/questions/category/{category}
func (h *QuestionHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]
	filter := repository.QuestionFilter{Category: category}
	h.sample(w, r, filter, fmt.Sprintf("No questions found for category: %s", category))
}

// ByDifficulty handles GET /api/questions/difficulty/{difficulty}
func (h *QuestionHandler) ByDifficulty(w http.ResponseWriter, r *http.Request) {
	difficulty := mux.Vars(r)["difficulty"]
	filter := repository.QuestionFilter{Difficulty: difficulty}
	h.sample(w, r, filter, fmt.Sprintf("No %s questions found", difficulty))
}

// Categories handles GET /api/questions/categories
func (h *QuestionHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.questionSvc.Categories(r.Context()))
}

func (h *QuestionHandler) sample(w http.ResponseWriter, r *http.Request, filter repository.QuestionFilter, emptyMsg string) {
	count, _ := strconv.Atoi(r.URL.Query().Get("count"))

	questions, err := h.questionSvc.Random(r.Context(), filter, count)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if len(questions) == 0 {
		writeError(w, http.StatusNotFound, emptyMsg)
		return
	}

	writeJSON(w, http.StatusOK, questions)
}
