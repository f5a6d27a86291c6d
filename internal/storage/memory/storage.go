package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/snakyhub/internal/model"
	"github.com/mcoot/snakyhub/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
// Data lives for the lifetime of the process
type Storage struct {
	mu sync.RWMutex

	users      map[model.UserID]*model.User
	emailIndex map[string]model.UserID

	// leaderboard keeps insertion order so equal scores list stably
	leaderboard []*model.LeaderboardEntry

	liveGames map[model.GameID]*model.LiveGame
}

// New creates a new, empty in-memory storage instance
func New() *Storage {
	return &Storage{
		users:      make(map[model.UserID]*model.User),
		emailIndex: make(map[string]model.UserID),
		liveGames:  make(map[model.GameID]*model.LiveGame),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.emailIndex[email]; ok {
		return nil, model.ErrEmailExists
	}

	user := &model.User{
		ID:           model.UserID(uuid.NewString()),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	s.users[user.ID] = user
	s.emailIndex[email] = user.ID

	clone := *user
	return &clone, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return s.userLocked(id)
}

func (s *Storage) GetUserByID(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userLocked(id)
}

func (s *Storage) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.emailIndex[email]
	return ok, nil
}

func (s *Storage) userLocked(id model.UserID) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

// Leaderboard operations

func (s *Storage) ListLeaderboard(ctx context.Context, mode model.GameMode) ([]*model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*model.LeaderboardEntry, 0, len(s.leaderboard))
	for _, e := range s.leaderboard {
		if mode != "" && e.Mode != mode {
			continue
		}
		clone := *e
		entries = append(entries, &clone)
	}

	slices.SortStableFunc(entries, func(a, b *model.LeaderboardEntry) int {
		return b.Score - a.Score
	})
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

	s.mu.Lock()
	s.leaderboard = append(s.leaderboard, entry)
	s.mu.Unlock()

	clone := *entry
	return &clone, nil
}

// Live game operations

func (s *Storage) ListLiveGames(ctx context.Context) ([]*model.LiveGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := make([]*model.LiveGame, 0, len(s.liveGames))
	for _, g := range s.liveGames {
		clone := *g
		games = append(games, &clone)
	}
	storage.SortLiveGames(games)
	return games, nil
}

func (s *Storage) GetLiveGame(ctx context.Context, id model.GameID) (*model.LiveGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.liveGames[id]
	if !ok {
		return nil, model.ErrLiveGameNotFound
	}
	clone := *game
	return &clone, nil
}

func (s *Storage) AddLiveGame(ctx context.Context, game *model.LiveGame) (*model.LiveGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.liveGames[game.ID]; ok {
		return nil, model.ErrLiveGameExists
	}

	stored := *game
	stored.StartedAt = stored.StartedAt.UTC()
	s.liveGames[stored.ID] = &stored

	clone := stored
	return &clone, nil
}

func (s *Storage) RemoveLiveGame(ctx context.Context, id model.GameID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.liveGames[id]; !ok {
		return false, nil
	}
	delete(s.liveGames, id)
	return true, nil
}

// Close is a no-op for the in-memory backend
func (s *Storage) Close() error {
	return nil
}
