package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"codequiz/internal/cache"
	"codequiz/internal/model"
	"codequiz/internal/repository"

	"github.com/google/uuid"
)

// UserService handles registration, login, and profile reads. Login
// creates a server-side session; logout destroys it.
type UserService struct {
	users    repository.UserRepo
	sessions cache.SessionCache
}

// NewUserService creates a new user service
func NewUserService(users repository.UserRepo, sessions cache.SessionCache) *UserService {
	return &UserService{
		users:    users,
		sessions: sessions,
	}
}

// Register creates a new user account
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: all fields required", model.ErrValidation)
	}

	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, model.ErrEmailTaken
	}

	user := &model.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		CreatedAt: time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login checks credentials and issues a session token
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password required", model.ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if user == nil || user.Password != req.Password {
		return nil, model.ErrInvalidCredentials
	}

	session := &model.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID.Hex(),
		Name:      user.Name,
		CreatedAt: time.Now(),
	}
	if s.sessions != nil {
		if err := s.sessions.Set(ctx, session); err != nil {
			// Login still succeeds; the session is a convenience, not a gate.
			log.Printf("[User] session store failed: %v", err)
		}
	}

	return &model.LoginResponse{
		Message: "Login successful",
		UserID:  user.ID.Hex(),
		Name:    user.Name,
		Email:   user.Email,
		Token:   session.ID,
	}, nil
}

// Logout destroys the session created at login
func (s *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token required", model.ErrValidation)
	}
	if s.sessions == nil {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Profile returns the user's public profile including aggregate stats
func (s *UserService) Profile(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user", model.ErrNotFound)
	}
	return user, nil
}
