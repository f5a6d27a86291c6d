package response

import (
	"time"

	"github.com/mcoot/snakyhub/internal/model"
	"github.com/mcoot/snakyhub/internal/services/auth"
)

// User represents an account in API responses; the password hash never leaves the server
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:       string(u.ID),
		Username: u.Username,
		Email:    u.Email,
	}
}

// LoginResponse is the response for a successful login
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// LoginResponseFromSession creates a LoginResponse from a session
func LoginResponseFromSession(s *auth.Session) LoginResponse {
	return LoginResponse{
		User:  UserFromModel(&s.User),
		Token: s.Token,
	}
}

// Message is a plain acknowledgement
type Message struct {
	Message string `json:"message"`
}

// Status is the health probe response
type Status struct {
	Status string `json:"status"`
}

// LeaderboardEntry represents a recorded score
type LeaderboardEntry struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Mode     string `json:"mode"`
	Date     string `json:"date"`
}

// LeaderboardEntryFromModel converts model.LeaderboardEntry
func LeaderboardEntryFromModel(e *model.LeaderboardEntry) LeaderboardEntry {
	return LeaderboardEntry{
		ID:       string(e.ID),
		Username: e.Username,
		Score:    e.Score,
		Mode:     string(e.Mode),
		Date:     e.Date.Format(model.DateLayout),
	}
}

// LeaderboardFromModel converts a list of entries, never returning nil
func LeaderboardFromModel(entries []*model.LeaderboardEntry) []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = LeaderboardEntryFromModel(e)
	}
	return out
}

// LiveGame represents an in-progress game
type LiveGame struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Score     int       `json:"score"`
	Mode      string    `json:"mode"`
	StartedAt time.Time `json:"startedAt"`
}

// LiveGameFromModel converts model.LiveGame
func LiveGameFromModel(g *model.LiveGame) LiveGame {
	return LiveGame{
		ID:        string(g.ID),
		Username:  g.Username,
		Score:     g.Score,
		Mode:      string(g.Mode),
		StartedAt: g.StartedAt.UTC(),
	}
}

// LiveGamesFromModel converts a list of live games, never returning nil
func LiveGamesFromModel(games []*model.LiveGame) []LiveGame {
	out := make([]LiveGame, len(games))
	for i, g := range games {
		out[i] = LiveGameFromModel(g)
	}
	return out
}
