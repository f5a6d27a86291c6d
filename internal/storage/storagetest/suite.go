// Package storagetest holds the behavioural suite every storage backend must pass.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/snakyhub/internal/model"
	"github.com/mcoot/snakyhub/internal/storage"
)

// Suite runs the storage contract against the backend returned by NewStorage.
// NewStorage is called before every test and must return an empty store.
type Suite struct {
	suite.Suite
	NewStorage func(t *testing.T) storage.Storage

	storage storage.Storage
	ctx     context.Context
}

func (s *Suite) SetupTest() {
	s.Require().NotNil(s.NewStorage, "NewStorage must be set")
	s.storage = s.NewStorage(s.T())
	s.ctx = context.Background()
}

func (s *Suite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

var day = time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC)

// User tests

func (s *Suite) TestCreateAndGetUser() {
	user, err := s.storage.CreateUser(s.ctx, "eve", "eve@x.com", "hash")
	s.Require().NoError(err)
	s.NotEmpty(user.ID)
	s.Equal("eve", user.Username)
	s.Equal("eve@x.com", user.Email)
	s.Equal("hash", user.PasswordHash)

	byID, err := s.storage.GetUserByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(user, byID)

	byEmail, err := s.storage.GetUserByEmail(s.ctx, "eve@x.com")
	s.Require().NoError(err)
	s.Equal(user, byEmail)
}

func (s *Suite) TestCreateUserAssignsDistinctIDs() {
	a, err := s.storage.CreateUser(s.ctx, "a", "a@x.com", "h")
	s.Require().NoError(err)
	b, err := s.storage.CreateUser(s.ctx, "b", "b@x.com", "h")
	s.Require().NoError(err)
	s.NotEqual(a.ID, b.ID)
}

func (s *Suite) TestCreateUserDuplicateEmail() {
	_, err := s.storage.CreateUser(s.ctx, "eve", "eve@x.com", "hash")
	s.Require().NoError(err)

	_, err = s.storage.CreateUser(s.ctx, "other", "eve@x.com", "hash2")
	s.ErrorIs(err, model.ErrEmailExists)

	// The original account is untouched
	user, err := s.storage.GetUserByEmail(s.ctx, "eve@x.com")
	s.Require().NoError(err)
	s.Equal("eve", user.Username)
}

func (s *Suite) TestEmailIsCaseSensitive() {
	_, err := s.storage.CreateUser(s.ctx, "eve", "eve@x.com", "hash")
	s.Require().NoError(err)

	_, err = s.storage.CreateUser(s.ctx, "Eve", "Eve@x.com", "hash")
	s.Require().NoError(err)

	exists, err := s.storage.UserExistsByEmail(s.ctx, "EVE@X.COM")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *Suite) TestConcurrentSignupsOnOneEmail() {
	const attempts = 20

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.storage.CreateUser(s.ctx, fmt.Sprintf("racer%d", i), "race@x.com", "hash")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, model.ErrEmailExists):
				conflicts++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, successes)
	s.Equal(attempts-1, conflicts)
}

func (s *Suite) TestGetUserNotFound() {
	_, err := s.storage.GetUserByID(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)

	_, err = s.storage.GetUserByEmail(s.ctx, "nobody@x.com")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *Suite) TestUserExistsByEmail() {
	exists, err := s.storage.UserExistsByEmail(s.ctx, "eve@x.com")
	s.Require().NoError(err)
	s.False(exists)

	_, err = s.storage.CreateUser(s.ctx, "eve", "eve@x.com", "hash")
	s.Require().NoError(err)

	exists, err = s.storage.UserExistsByEmail(s.ctx, "eve@x.com")
	s.Require().NoError(err)
	s.True(exists)
}

// Leaderboard tests

func (s *Suite) TestListLeaderboardEmpty() {
	entries, err := s.storage.ListLeaderboard(s.ctx, "")
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *Suite) TestAddLeaderboardEntry() {
	entry, err := s.storage.AddLeaderboardEntry(s.ctx, "eve", 500, model.GameModeWalls, day.Add(15*time.Hour))
	s.Require().NoError(err)
	s.NotEmpty(entry.ID)
	s.Equal("eve", entry.Username)
	s.Equal(500, entry.Score)
	s.Equal(model.GameModeWalls, entry.Mode)
	s.Equal("2026-02-19", entry.Date.Format(model.DateLayout))

	entries, err := s.storage.ListLeaderboard(s.ctx, "")
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(entry.ID, entries[0].ID)
	s.Equal("2026-02-19", entries[0].Date.Format(model.DateLayout))
}

func (s *Suite) TestLeaderboardKeepsEveryEntry() {
	for _, score := range []int{100, 200, 300} {
		_, err := s.storage.AddLeaderboardEntry(s.ctx, "eve", score, model.GameModeWalls, day)
		s.Require().NoError(err)
	}

	entries, err := s.storage.ListLeaderboard(s.ctx, "")
	s.Require().NoError(err)
	s.Len(entries, 3)
}

func (s *Suite) TestLeaderboardSortedByScoreDescending() {
	scores := []int{40, 7000, 0, 1200, 999, 1200, 35}
	for i, score := range scores {
		mode := model.GameModeWalls
		if i%2 == 1 {
			mode = model.GameModePassThrough
		}
		_, err := s.storage.AddLeaderboardEntry(s.ctx, fmt.Sprintf("p%d", i), score, mode, day)
		s.Require().NoError(err)
	}

	entries, err := s.storage.ListLeaderboard(s.ctx, "")
	s.Require().NoError(err)
	s.Require().Len(entries, len(scores))
	for i := 1; i < len(entries); i++ {
		s.GreaterOrEqual(entries[i-1].Score, entries[i].Score)
	}
	s.Equal(7000, entries[0].Score)
	s.Equal(0, entries[len(entries)-1].Score)
}

func (s *Suite) TestLeaderboardModeFilter() {
	_, err := s.storage.AddLeaderboardEntry(s.ctx, "a", 10, model.GameModeWalls, day)
	s.Require().NoError(err)
	_, err = s.storage.AddLeaderboardEntry(s.ctx, "b", 30, model.GameModePassThrough, day)
	s.Require().NoError(err)
	_, err = s.storage.AddLeaderboardEntry(s.ctx, "c", 20, model.GameModeWalls, day)
	s.Require().NoError(err)

	walls, err := s.storage.ListLeaderboard(s.ctx, model.GameModeWalls)
	s.Require().NoError(err)
	s.Require().Len(walls, 2)
	s.Equal("c", walls[0].Username)
	s.Equal("a", walls[1].Username)

	passThrough, err := s.storage.ListLeaderboard(s.ctx, model.GameModePassThrough)
	s.Require().NoError(err)
	s.Require().Len(passThrough, 1)
	s.Equal("b", passThrough[0].Username)
}

func (s *Suite) TestLeaderboardTiesAreStable() {
	for i := range 5 {
		_, err := s.storage.AddLeaderboardEntry(s.ctx, fmt.Sprintf("tie%d", i), 100, model.GameModeWalls, day)
		s.Require().NoError(err)
	}

	first, err := s.storage.ListLeaderboard(s.ctx, "")
	s.Require().NoError(err)
	second, err := s.storage.ListLeaderboard(s.ctx, "")
	s.Require().NoError(err)
	s.Equal(first, second)
}

func (s *Suite) TestLeaderboardOrdersScoresAtTheCeiling() {
	for _, score := range []int{model.MaxScore - 1, model.MaxScore, 0} {
		_, err := s.storage.AddLeaderboardEntry(s.ctx, "eve", score, model.GameModeWalls, day)
		s.Require().NoError(err)
	}

	entries, err := s.storage.ListLeaderboard(s.ctx, model.GameModeWalls)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal([]int{model.MaxScore, model.MaxScore - 1, 0}, []int{entries[0].Score, entries[1].Score, entries[2].Score})
}

// Live game tests

func (s *Suite) liveGame(id string, startedAt time.Time) *model.LiveGame {
	return &model.LiveGame{
		ID:        model.GameID(id),
		Username:  "eve",
		Score:     120,
		Mode:      model.GameModePassThrough,
		StartedAt: startedAt,
	}
}

func (s *Suite) TestAddAndGetLiveGame() {
	started := time.Date(2026, 2, 19, 10, 15, 0, 0, time.UTC)
	game, err := s.storage.AddLiveGame(s.ctx, s.liveGame("game-1", started))
	s.Require().NoError(err)
	s.Equal(model.GameID("game-1"), game.ID)

	retrieved, err := s.storage.GetLiveGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal("eve", retrieved.Username)
	s.Equal(120, retrieved.Score)
	s.Equal(model.GameModePassThrough, retrieved.Mode)
	s.True(started.Equal(retrieved.StartedAt))
}

func (s *Suite) TestAddLiveGameDuplicateID() {
	now := time.Date(2026, 2, 19, 10, 0, 0, 0, time.UTC)
	_, err := s.storage.AddLiveGame(s.ctx, s.liveGame("game-1", now))
	s.Require().NoError(err)

	_, err = s.storage.AddLiveGame(s.ctx, s.liveGame("game-1", now))
	s.ErrorIs(err, model.ErrLiveGameExists)
}

func (s *Suite) TestGetLiveGameNotFound() {
	_, err := s.storage.GetLiveGame(s.ctx, "does-not-exist")
	s.ErrorIs(err, model.ErrLiveGameNotFound)
}

func (s *Suite) TestListLiveGames() {
	games, err := s.storage.ListLiveGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)

	base := time.Date(2026, 2, 19, 10, 0, 0, 0, time.UTC)
	_, err = s.storage.AddLiveGame(s.ctx, s.liveGame("late", base.Add(time.Minute)))
	s.Require().NoError(err)
	_, err = s.storage.AddLiveGame(s.ctx, s.liveGame("early", base))
	s.Require().NoError(err)

	games, err = s.storage.ListLiveGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal(model.GameID("early"), games[0].ID)
	s.Equal(model.GameID("late"), games[1].ID)
}

func (s *Suite) TestRemoveLiveGame() {
	_, err := s.storage.AddLiveGame(s.ctx, s.liveGame("game-1", day))
	s.Require().NoError(err)

	removed, err := s.storage.RemoveLiveGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.True(removed)

	_, err = s.storage.GetLiveGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrLiveGameNotFound)

	removed, err = s.storage.RemoveLiveGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.False(removed)
}

func (s *Suite) TestRemovedLiveGameIDCanBeReused() {
	_, err := s.storage.AddLiveGame(s.ctx, s.liveGame("game-1", day))
	s.Require().NoError(err)
	_, err = s.storage.RemoveLiveGame(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.AddLiveGame(s.ctx, s.liveGame("game-1", day))
	s.NoError(err)
}
