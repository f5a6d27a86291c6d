package model

// GameMode partitions leaderboard entries and live games by snake variant
type GameMode string

const (
	// GameModeWalls ends the run when the snake hits a wall
	GameModeWalls GameMode = "walls"
	// GameModePassThrough wraps the snake around the board edges
	GameModePassThrough GameMode = "pass-through"
)

// GameModes lists every valid mode
var GameModes = []GameMode{GameModeWalls, GameModePassThrough}

// Valid reports whether m is one of the known modes
func (m GameMode) Valid() bool {
	return m == GameModeWalls || m == GameModePassThrough
}

// ParseGameMode converts a raw string to a GameMode
func ParseGameMode(s string) (GameMode, error) {
	m := GameMode(s)
	if !m.Valid() {
		return "", ErrInvalidMode
	}
	return m, nil
}
