package model

import (
	"math"
	"time"
)

// EntryID uniquely identifies a leaderboard entry
type EntryID string

// DateLayout is the calendar date format used for leaderboard dates
const DateLayout = "2006-01-02"

// MaxScore is the largest score every backend stores and orders exactly
const MaxScore = math.MaxInt32

// ValidScore reports whether score is within 0..MaxScore
func ValidScore(score int) bool {
	return score >= 0 && score <= MaxScore
}

// LeaderboardEntry is a single submitted score
// Entries are never mutated; a username may own many entries
type LeaderboardEntry struct {
	ID       EntryID   `json:"id"`
	Username string    `json:"username"`
	Score    int       `json:"score"`
	Mode     GameMode  `json:"mode"`
	Date     time.Time `json:"date"` // midnight UTC of the submission day
}

// DateOf truncates t to midnight UTC of its calendar day
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
