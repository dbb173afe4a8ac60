package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered quiz taker with rolling aggregate stats.
// The aggregate fields are mutated only by the score service, atomically
// per accepted submission.
type User struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name             string             `json:"name" bson:"name"`
	Email            string             `json:"email" bson:"email"`
	Password         string             `json:"-" bson:"password"`
	TotalScore       int                `json:"totalScore" bson:"totalScore"`
	QuizzesCompleted int                `json:"quizzesCompleted" bson:"quizzesCompleted"`
	AverageScore     int                `json:"averageScore" bson:"averageScore"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
}

// RegisterRequest is the request body for user registration
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for user login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the session issued at login
type LoginResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Token   string `json:"token"`
}

// Session is the server-side login session, created at login and
// destroyed at logout
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserStats is the read-only stats view for a user
type UserStats struct {
	Name              string `json:"name"`
	QuizzesCompleted  int    `json:"quizzesCompleted"`
	TotalScore        int    `json:"totalScore"`
	AverageScore      int    `json:"averageScore"`
	OverallPercentage int    `json:"overallPercentage"`
}
