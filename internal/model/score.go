package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Score is an immutable record of one completed quiz attempt
type Score struct {
	ID             primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	UserID         *primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	Name           string              `json:"name" bson:"name"`
	Score          int                 `json:"score" bson:"score"`
	TotalQuestions int                 `json:"totalQuestions" bson:"totalQuestions"`
	Percentage     int                 `json:"percentage" bson:"percentage"`
	QuizID         string              `json:"quizId,omitempty" bson:"quizId,omitempty"`
	Category       string              `json:"category,omitempty" bson:"category,omitempty"`
	Difficulty     string              `json:"difficulty,omitempty" bson:"difficulty,omitempty"`
	TimeSpent      int                 `json:"timeSpent,omitempty" bson:"timeSpent,omitempty"` // seconds
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
}

// SubmitScoreRequest is the request body for saving a score.
// Score is a pointer so that a missing field can be told apart from zero.
type SubmitScoreRequest struct {
	UserID         string `json:"userId"`
	Name           string `json:"name"`
	Score          *int   `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	QuizID         string `json:"quizId"`
	Category       string `json:"category"`
	Difficulty     string `json:"difficulty"`
	TimeSpent      int    `json:"timeSpent"`
}
