package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codequiz/internal/cache"
	"codequiz/internal/config"
	"codequiz/internal/repository"
	"codequiz/internal/service"
	"codequiz/internal/transport/rest"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	llmCfg := config.DefaultLLMConfig()
	if llmCfg.IsEnabled() {
		log.Printf("LLM generator: %s (configured)", llmCfg.Model)
	} else {
		log.Println("LLM generator: NOT CONFIGURED (source disabled)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection (leaderboard + sessions). The server still works
	// without it; cached reads fall back to the store.
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	var leaderboard cache.LeaderboardCache
	var sessions cache.SessionCache
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("Warning: Redis unavailable (%v), leaderboard cache and sessions disabled", err)
	} else {
		log.Println("Connected to Redis")
		leaderboard = cache.NewLeaderboardCache(rdb)
		sessions = cache.NewSessionCache(rdb)
	}

	// Initialize repositories
	questionRepo := repository.NewQuestionRepo(db)
	userRepo := repository.NewUserRepo(db)
	scoreRepo := repository.NewScoreRepo(db)

	// Initialize services
	quizSvc := service.NewQuizService(
		questionRepo,
		service.NewQuizAPIClient(cfg),
		service.NewLLMGenerator(llmCfg),
	)
	scoreSvc := service.NewScoreService(scoreRepo, userRepo, leaderboard)
	userSvc := service.NewUserService(userRepo, sessions)
	questionSvc := service.NewQuestionService(questionRepo)

	router := rest.NewRouter(&rest.Container{
		QuizService:     quizSvc,
		ScoreService:    scoreSvc,
		UserService:     userSvc,
		QuestionService: questionSvc,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
