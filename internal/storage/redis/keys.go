package redis

import (
	"fmt"

	"github.com/mcoot/snakyhub/internal/model"
)

// Key prefix for all hub data
const keyPrefix = "snaky"

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// entryKey returns the Redis key for a LeaderboardEntry
func entryKey(id model.EntryID) string {
	return fmt.Sprintf("%s:leaderboard:entry:%s", keyPrefix, id)
}

// leaderboardKey returns the sorted set of entry ids scored by score
// An empty mode selects the set holding every entry
func leaderboardKey(mode model.GameMode) string {
	if mode == "" {
		return fmt.Sprintf("%s:leaderboard:all", keyPrefix)
	}
	return fmt.Sprintf("%s:leaderboard:mode:%s", keyPrefix, mode)
}

// liveGamesKey returns the Redis key for the live games HASH (id -> JSON)
func liveGamesKey() string {
	return fmt.Sprintf("%s:live_games", keyPrefix)
}
