package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")

	// Leaderboard errors
	ErrInvalidMode  = errors.New("invalid game mode")
	ErrInvalidScore = errors.New("invalid score value")

	// Live game errors
	ErrInvalidGameID    = errors.New("invalid live game id")
	ErrLiveGameNotFound = errors.New("live game not found")
	ErrLiveGameExists   = errors.New("live game already exists")
	ErrNotGameOwner     = errors.New("live game belongs to another player")
)
