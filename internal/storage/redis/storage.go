package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mcoot/snakyhub/internal/model"
	"github.com/mcoot/snakyhub/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	timeout := cfg.DialTimeout
	if timeout == 0 {
		timeout = DefaultConfig().DialTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	user := &model.User{
		ID:           model.UserID(uuid.NewString()),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	data, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	// Claiming the email index first makes the uniqueness check atomic
	claimed, err := s.client.SetNX(ctx, emailIndexKey(email), string(user.ID), 0).Result()
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, model.ErrEmailExists
	}

	if err := s.client.Set(ctx, userKey(user.ID), data, 0).Err(); err != nil {
		// Release the claim so the email can be retried
		_ = s.client.Del(ctx, emailIndexKey(email)).Err()
		return nil, err
	}

	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	// Look up user ID from email index
	id, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUserByID(ctx, model.UserID(id))
}

func (s *Storage) GetUserByID(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	exists, err := s.client.Exists(ctx, emailIndexKey(email)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Leaderboard operations

func (s *Storage) ListLeaderboard(ctx context.Context, mode model.GameMode) ([]*model.LeaderboardEntry, error) {
	ids, err := s.client.ZRevRange(ctx, leaderboardKey(mode), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.LeaderboardEntry{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = entryKey(model.EntryID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*model.LeaderboardEntry, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue // index entry without data
		}
		str, ok := v.(string)
		if !ok {
			continue
		}
		var entry model.LeaderboardEntry
		if err := json.Unmarshal([]byte(str), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}

func (s *Storage) AddLeaderboardEntry(ctx context.Context, username string, score int, mode model.GameMode, date time.Time) (*model.LeaderboardEntry, error) {
	entry := &model.LeaderboardEntry{
		ID:       model.EntryID(uuid.NewString()),
		Username: username,
		Score:    score,
		Mode:     mode,
		Date:     model.DateOf(date),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}

	member := redis.Z{Score: float64(score), Member: string(entry.ID)}

	// Use transaction pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, entryKey(entry.ID), data, 0)
	pipe.ZAdd(ctx, leaderboardKey(""), member)
	pipe.ZAdd(ctx, leaderboardKey(mode), member)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

// Live game operations

func (s *Storage) ListLiveGames(ctx context.Context) ([]*model.LiveGame, error) {
	values, err := s.client.HVals(ctx, liveGamesKey()).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.LiveGame, 0, len(values))
	for _, v := range values {
		var game model.LiveGame
		if err := json.Unmarshal([]byte(v), &game); err != nil {
			return nil, err
		}
		games = append(games, &game)
	}
	storage.SortLiveGames(games)
	return games, nil
}

func (s *Storage) GetLiveGame(ctx context.Context, id model.GameID) (*model.LiveGame, error) {
	data, err := s.client.HGet(ctx, liveGamesKey(), string(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrLiveGameNotFound
		}
		return nil, err
	}

	var game model.LiveGame
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) AddLiveGame(ctx context.Context, game *model.LiveGame) (*model.LiveGame, error) {
	stored := *game
	stored.StartedAt = stored.StartedAt.UTC()

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, err
	}

	added, err := s.client.HSetNX(ctx, liveGamesKey(), string(stored.ID), data).Result()
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, model.ErrLiveGameExists
	}
	return &stored, nil
}

func (s *Storage) RemoveLiveGame(ctx context.Context, id model.GameID) (bool, error) {
	removed, err := s.client.HDel(ctx, liveGamesKey(), string(id)).Result()
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}
