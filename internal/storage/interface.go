package storage

import (
	"context"
	"time"

	"github.com/mcoot/snakyhub/internal/model"
)

// Storage defines the interface for data persistence
// Every backend must behave identically from the caller's perspective
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id model.UserID) (*model.User, error)
	UserExistsByEmail(ctx context.Context, email string) (bool, error)

	// Leaderboard operations
	// An empty mode lists entries of every mode. Results are ordered by score descending.
	ListLeaderboard(ctx context.Context, mode model.GameMode) ([]*model.LeaderboardEntry, error)
	AddLeaderboardEntry(ctx context.Context, username string, score int, mode model.GameMode, date time.Time) (*model.LeaderboardEntry, error)

	// Live game operations
	ListLiveGames(ctx context.Context) ([]*model.LiveGame, error)
	GetLiveGame(ctx context.Context, id model.GameID) (*model.LiveGame, error)
	AddLiveGame(ctx context.Context, game *model.LiveGame) (*model.LiveGame, error)
	RemoveLiveGame(ctx context.Context, id model.GameID) (bool, error)

	// Close releases any resources held by the backend
	Close() error
}
