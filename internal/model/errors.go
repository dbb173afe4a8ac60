package model

import "errors"

var (
	// ErrValidation is returned when a request is missing required fields.
	ErrValidation = errors.New("missing or invalid request fields")
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID is returned when an identifier is not a valid ObjectID.
	ErrInvalidID = errors.New("invalid ID format")
	// ErrInsufficientQuestions is returned when no source can supply the
	// requested number of questions.
	ErrInsufficientQuestions = errors.New("insufficient questions available for the given preferences")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering an already-used email.
	ErrEmailTaken = errors.New("user already exists")
)
