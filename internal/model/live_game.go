package model

import (
	"regexp"
	"time"
)

// MaxGameIDLength bounds client-chosen live game ids
const MaxGameIDLength = 64

// GameID identifies a live game session
type GameID string

var gameIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Valid reports whether id can appear as a single URL path segment:
// letters, digits, underscore and hyphen, at most MaxGameIDLength characters
func (id GameID) Valid() bool {
	return len(id) <= MaxGameIDLength && gameIDPattern.MatchString(string(id))
}

// LiveGame is an in-progress game session
// Username is a snapshot, not a reference to a User
type LiveGame struct {
	ID        GameID    `json:"id"`
	Username  string    `json:"username"`
	Score     int       `json:"score"`
	Mode      GameMode  `json:"mode"`
	StartedAt time.Time `json:"started_at"`
}
