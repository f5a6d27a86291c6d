package games

import (
	"context"
	"log/slog"

	"github.com/mcoot/snakyhub/internal/dependencies/clock"
	"github.com/mcoot/snakyhub/internal/dependencies/ids"
	"github.com/mcoot/snakyhub/internal/model"
	"github.com/mcoot/snakyhub/internal/storage"
)

// Service manages the registry of live game sessions
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ids     ids.Generator
	logger  *slog.Logger
}

// New creates a new games Service
func New(storage storage.Storage, clock clock.Clock, ids ids.Generator, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		ids:     ids,
		logger:  logger,
	}
}

// List returns every live game
func (s *Service) List(ctx context.Context) ([]*model.LiveGame, error) {
	return s.storage.ListLiveGames(ctx)
}

// Get returns a single live game or model.ErrLiveGameNotFound
func (s *Service) Get(ctx context.Context, id model.GameID) (*model.LiveGame, error) {
	return s.storage.GetLiveGame(ctx, id)
}

// Start registers a new live game for user with a zero score
// An empty id is replaced with a generated one; a chosen id must satisfy GameID.Valid
func (s *Service) Start(ctx context.Context, user *model.User, id model.GameID, mode model.GameMode) (*model.LiveGame, error) {
	if !mode.Valid() {
		return nil, model.ErrInvalidMode
	}
	if id == "" {
		id = model.GameID(s.ids.NewID())
	} else if !id.Valid() {
		return nil, model.ErrInvalidGameID
	}

	game, err := s.storage.AddLiveGame(ctx, &model.LiveGame{
		ID:        id,
		Username:  user.Username,
		Score:     0,
		Mode:      mode,
		StartedAt: s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("live game started",
		slog.String("game_id", string(game.ID)),
		slog.String("username", game.Username),
		slog.String("mode", string(game.Mode)),
	)
	return game, nil
}

// End removes a live game owned by user
// Ownership is matched on the username snapshot stored with the game
func (s *Service) End(ctx context.Context, user *model.User, id model.GameID) error {
	game, err := s.storage.GetLiveGame(ctx, id)
	if err != nil {
		return err
	}
	if game.Username != user.Username {
		return model.ErrNotGameOwner
	}

	removed, err := s.storage.RemoveLiveGame(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		// Ended concurrently by another request
		return model.ErrLiveGameNotFound
	}

	s.logger.Info("live game ended",
		slog.String("game_id", string(id)),
		slog.String("username", user.Username),
	)
	return nil
}
