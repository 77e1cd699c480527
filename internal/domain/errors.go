package domain

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrMatchNotFound = errors.New("match not found")

	// ErrMatchExists signals a duplicate record for an unordered pair.
	// Like recovers from it internally; explicit creation surfaces it.
	ErrMatchExists = errors.New("match already exists")

	ErrSelfAction     = errors.New("cannot target yourself")
	ErrNotParticipant = errors.New("not a participant of this match")
	ErrNotPending     = errors.New("match request is not pending")
	ErrNotActive      = errors.New("match is not active")
	ErrMatchEnded     = errors.New("match has ended")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidInput       = errors.New("invalid input")

	ErrMessageNotFound = errors.New("message not found")
)
