package rest

import (
	"net/http"
	"os"

	"codequiz/internal/service"
	"codequiz/internal/transport/rest/handler"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	QuizService     *service.QuizService
	ScoreService    *service.ScoreService
	UserService     *service.UserService
	QuestionService *service.QuestionService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(c.QuizService)
	scoreHandler := handler.NewScoreHandler(c.ScoreService)
	userHandler := handler.NewUserHandler(c.UserService)
	questionHandler := handler.NewQuestionHandler(c.QuestionService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	// Users
	api.HandleFunc("/users/register", userHandler.Register).Methods("POST", "OPTIONS")
	api.HandleFunc("/users/login", userHandler.Login).Methods("POST", "OPTIONS")
	api.HandleFunc("/users/logout", userHandler.Logout).Methods("POST", "OPTIONS")
	api.HandleFunc("/users/{userId}", userHandler.Profile).Methods("GET", "OPTIONS")

	// Questions
	api.HandleFunc("/questions/random", questionHandler.Random).Methods("GET", "OPTIONS")
	api.HandleFunc("/questions/categories", questionHandler.Categories).Methods("GET", "OPTIONS")
	api.HandleFunc("/questions/category/{category}", questionHandler.ByCategory).Methods("GET", "OPTIONS")
	api.HandleFunc("/questions/difficulty/{difficulty}", questionHandler.ByDifficulty).Methods("GET", "OPTIONS")

	// Quiz generation
	api.HandleFunc("/generate-quiz", quizHandler.Generate).Methods("POST", "OPTIONS")

	// Scores
	api.HandleFunc("/scores", scoreHandler.Submit).Methods("POST", "OPTIONS")
	api.HandleFunc("/scores/user/{userId}", scoreHandler.UserScores).Methods("GET", "OPTIONS")
	api.HandleFunc("/leaderboard", scoreHandler.Leaderboard).Methods("GET", "OPTIONS")
	api.HandleFunc("/leaderboard/{category}", scoreHandler.LeaderboardByCategory).Methods("GET", "OPTIONS")
	api.HandleFunc("/stats/{userId}", scoreHandler.Stats).Methods("GET", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
