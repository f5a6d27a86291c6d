package leaderboard

import (
	"context"
	"log/slog"

	"github.com/mcoot/snakyhub/internal/dependencies/clock"
	"github.com/mcoot/snakyhub/internal/model"
	"github.com/mcoot/snakyhub/internal/storage"
)

// Service lists and records leaderboard scores
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new leaderboard Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// List returns entries ordered by score descending
// An empty mode lists every mode; any other value must be a known mode
func (s *Service) List(ctx context.Context, mode string) ([]*model.LeaderboardEntry, error) {
	var filter model.GameMode
	if mode != "" {
		parsed, err := model.ParseGameMode(mode)
		if err != nil {
			return nil, err
		}
		filter = parsed
	}
	return s.storage.ListLeaderboard(ctx, filter)
}

// Submit records a score for user, dated today (UTC)
// Scores outside 0..model.MaxScore are rejected
func (s *Service) Submit(ctx context.Context, user *model.User, score int, mode model.GameMode) (*model.LeaderboardEntry, error) {
	if !model.ValidScore(score) {
		return nil, model.ErrInvalidScore
	}
	if !mode.Valid() {
		return nil, model.ErrInvalidMode
	}

	entry, err := s.storage.AddLeaderboardEntry(ctx, user.Username, score, mode, s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("score submitted",
		slog.String("entry_id", string(entry.ID)),
		slog.String("user_id", string(user.ID)),
		slog.Int("score", score),
		slog.String("mode", string(mode)),
	)
	return entry, nil
}
