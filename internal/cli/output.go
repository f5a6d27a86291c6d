package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(MessageResult{Message: msg})
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case LoginResult:
		o.printLoginResult(v)
	case LeaderboardEntry:
		o.printLeaderboard([]LeaderboardEntry{v})
	case []LeaderboardEntry:
		o.printLeaderboard(v)
	case LiveGame:
		o.printLiveGame(v)
	case []LiveGame:
		o.printLiveGames(v)
	case MessageResult:
		_, _ = fmt.Fprintln(o.w, v.Message)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginResult combines user and token
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Mode     string `json:"mode"`
	Date     string `json:"date"`
}

// LiveGame response type
type LiveGame struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Score     int       `json:"score"`
	Mode      string    `json:"mode"`
	StartedAt time.Time `json:"startedAt"`
}

// MessageResult response type
type MessageResult struct {
	Message string `json:"message"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	_, _ = fmt.Fprintf(o.w, "User: %s (%s)\n", u.Username, u.ID)
	_, _ = fmt.Fprintf(o.w, "Email: %s\n", u.Email)
}

func (o *Output) printLoginResult(l LoginResult) {
	o.printUser(l.User)
	_, _ = fmt.Fprintf(o.w, "Token: %s\n", l.Token)
}

func (o *Output) printLeaderboard(entries []LeaderboardEntry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(o.w, "No scores yet")
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "RANK\tUSERNAME\tSCORE\tMODE\tDATE")
	for i, e := range entries {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", i+1, e.Username, e.Score, e.Mode, e.Date)
	}
	_ = tw.Flush()
}

func (o *Output) printLiveGame(g LiveGame) {
	_, _ = fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	_, _ = fmt.Fprintf(o.w, "Player: %s\n", g.Username)
	_, _ = fmt.Fprintf(o.w, "Mode: %s\n", g.Mode)
	_, _ = fmt.Fprintf(o.w, "Score: %d\n", g.Score)
	_, _ = fmt.Fprintf(o.w, "Started: %s\n", g.StartedAt.UTC().Format(time.RFC3339))
}

func (o *Output) printLiveGames(games []LiveGame) {
	if len(games) == 0 {
		_, _ = fmt.Fprintln(o.w, "No live games")
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tPLAYER\tSCORE\tMODE\tSTARTED")
	for _, g := range games {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", g.ID, g.Username, g.Score, g.Mode, g.StartedAt.UTC().Format(time.RFC3339))
	}
	_ = tw.Flush()
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
