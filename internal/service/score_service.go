package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"codequiz/internal/cache"
	"codequiz/internal/model"
	"codequiz/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const userScoreLimit = 50

// ScoreService persists quiz results and maintains per-user aggregates
type ScoreService struct {
	scores      repository.ScoreRepo
	users       repository.UserRepo
	leaderboard cache.LeaderboardCache
}

// NewScoreService creates a new score service
func NewScoreService(scores repository.ScoreRepo, users repository.UserRepo, leaderboard cache.LeaderboardCache) *ScoreService {
	return &ScoreService{
		scores:      scores,
		users:       users,
		leaderboard: leaderboard,
	}
}

// Submit validates and persists a score record, then folds it into the
// submitting user's rolling aggregates in one atomic store update.
func (s *ScoreService) Submit(ctx context.Context, req *model.SubmitScoreRequest) (*model.Score, error) {
	if req.Name == "" || req.Score == nil {
		return nil, fmt.Errorf("%w: name and score required", model.ErrValidation)
	}

	var userID *primitive.ObjectID
	if req.UserID != "" {
		oid, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: user ID", model.ErrInvalidID)
		}
		userID = &oid
	}

	percentage := 0
	if req.TotalQuestions > 0 {
		percentage = int(math.Round(float64(*req.Score) / float64(req.TotalQuestions) * 100))
	}

	score := &model.Score{
		UserID:         userID,
		Name:           req.Name,
		Score:          *req.Score,
		TotalQuestions: req.TotalQuestions,
		Percentage:     percentage,
		QuizID:         req.QuizID,
		Category:       req.Category,
		Difficulty:     req.Difficulty,
		TimeSpent:      req.TimeSpent,
		CreatedAt:      time.Now(),
	}

	if err := s.scores.Create(ctx, score); err != nil {
		return nil, fmt.Errorf("save score: %w", err)
	}

	if userID != nil {
		matched, err := s.users.ApplyScore(ctx, *userID, *req.Score)
		if err != nil {
			return nil, fmt.Errorf("update user stats: %w", err)
		}
		if !matched {
			log.Printf("[Score] user %s not found, stats not updated", req.UserID)
		}
	}

	if s.leaderboard != nil {
		entry := cache.LeaderboardEntry{
			ScoreID:    score.ID.Hex(),
			Name:       score.Name,
			Score:      score.Score,
			Percentage: score.Percentage,
			Category:   score.Category,
		}
		if err := s.leaderboard.Record(ctx, entry); err != nil {
			log.Printf("[Score] leaderboard cache update failed: %v", err)
		}
	}

	return score, nil
}

// UserScores returns the user's most recent scores, newest first
func (s *ScoreService) UserScores(ctx context.Context, userID string) ([]model.Score, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user ID", model.ErrInvalidID)
	}
	return s.scores.ListByUser(ctx, oid, userScoreLimit)
}

// Leaderboard returns the top scores, served from the Redis board when
// populated and falling back to the score store otherwise.
func (s *ScoreService) Leaderboard(ctx context.Context, category string, limit int) ([]cache.LeaderboardEntry, error) {
	if s.leaderboard != nil {
		entries, err := s.leaderboard.GetTop(ctx, category, limit)
		if err != nil {
			log.Printf("[Score] leaderboard cache read failed: %v", err)
		} else if len(entries) > 0 {
			return entries, nil
		}
	}

	scores, err := s.scores.TopScores(ctx, category, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]cache.LeaderboardEntry, len(scores))
	for i, sc := range scores {
		entries[i] = cache.LeaderboardEntry{
			ScoreID:    sc.ID.Hex(),
			Name:       sc.Name,
			Score:      sc.Score,
			Percentage: sc.Percentage,
			Category:   sc.Category,
			Rank:       i + 1,
		}
	}
	return entries, nil
}

// Stats returns the stored aggregates plus an overall percentage
// recomputed read-only from the user's score history
func (s *ScoreService) Stats(ctx context.Context, userID string) (*model.UserStats, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user", model.ErrNotFound)
	}

	scores, err := s.scores.ListByUser(ctx, user.ID, userScoreLimit)
	if err != nil {
		return nil, err
	}

	overall := 0
	if len(scores) > 0 {
		sum := 0
		for _, sc := range scores {
			sum += sc.Percentage
		}
		overall = int(math.Round(float64(sum) / float64(len(scores))))
	}

	return &model.UserStats{
		Name:              user.Name,
		QuizzesCompleted:  user.QuizzesCompleted,
		TotalScore:        user.TotalScore,
		AverageScore:      user.AverageScore,
		OverallPercentage: overall,
	}, nil
}
