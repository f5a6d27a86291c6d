package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcoot/snakyhub/internal/model"
	"github.com/mcoot/snakyhub/internal/storage"
)

// uniqueViolation is the SQLSTATE raised when a unique constraint rejects a row
const uniqueViolation = "23505"

// Storage is a PostgreSQL-backed implementation of the storage interface
type Storage struct {
	pool *pgxpool.Pool
}

// New opens a connection pool, optionally applying migrations first
func New(ctx context.Context, cfg Config) (*Storage, error) {
	if cfg.AutoMigrate {
		if err := Migrate(cfg.URL); err != nil {
			return nil, err
		}
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	timeout := cfg.ConnectTimeout
	if timeout == 0 {
		timeout = DefaultConfig().ConnectTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Storage{pool: pool}, nil
}

// NewWithPool creates a storage over an existing pool (for testing)
func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

// Close closes the connection pool
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	user := &model.User{
		ID:           model.UserID(uuid.NewString()),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash) VALUES ($1, $2, $3, $4)`,
		string(user.ID), user.Username, user.Email, user.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrEmailExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *Storage) GetUserByID(ctx context.Context, id model.UserID) (*model.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash FROM users WHERE id = $1`, string(id))
	return scanUser(row)
}

func (s *Storage) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var id, username, email, hash string
	if err := row.Scan(&id, &username, &email, &hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &model.User{
		ID:           model.UserID(id),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}, nil
}

// Leaderboard operations

func (s *Storage) ListLeaderboard(ctx context.Context, mode model.GameMode) ([]*model.LeaderboardEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, username, score, mode, entry_date
		FROM leaderboard_entries
		WHERE $1::text = '' OR mode = $1::text
		ORDER BY score DESC, seq ASC`, string(mode))
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]*model.LeaderboardEntry, 0)
	for rows.Next() {
		var (
			id, username, entryMode string
			score                   int
			date                    time.Time
		)
		if err := rows.Scan(&id, &username, &score, &entryMode, &date); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, &model.LeaderboardEntry{
			ID:       model.EntryID(id),
			Username: username,
			Score:    score,
			Mode:     model.GameMode(entryMode),
			Date:     model.DateOf(date),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard: %w", err)
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

	_, err := s.pool.Exec(ctx,
		`INSERT INTO leaderboard_entries (id, username, score, mode, entry_date) VALUES ($1, $2, $3, $4, $5)`,
		string(entry.ID), entry.Username, entry.Score, string(entry.Mode), entry.Date,
	)
	if err != nil {
		return nil, fmt.Errorf("insert leaderboard entry: %w", err)
	}
	return entry, nil
}

// Live game operations

func (s *Storage) ListLiveGames(ctx context.Context) ([]*model.LiveGame, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, username, score, mode, started_at
		FROM live_games
		ORDER BY started_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query live games: %w", err)
	}
	defer rows.Close()

	games := make([]*model.LiveGame, 0)
	for rows.Next() {
		game, err := scanLiveGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate live games: %w", err)
	}
	return games, nil
}

func (s *Storage) GetLiveGame(ctx context.Context, id model.GameID) (*model.LiveGame, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, username, score, mode, started_at FROM live_games WHERE id = $1`, string(id))
	return scanLiveGame(row)
}

func (s *Storage) AddLiveGame(ctx context.Context, game *model.LiveGame) (*model.LiveGame, error) {
	stored := *game
	stored.StartedAt = stored.StartedAt.UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO live_games (id, username, score, mode, started_at) VALUES ($1, $2, $3, $4, $5)`,
		string(stored.ID), stored.Username, stored.Score, string(stored.Mode), stored.StartedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrLiveGameExists
		}
		return nil, fmt.Errorf("insert live game: %w", err)
	}
	return &stored, nil
}

func (s *Storage) RemoveLiveGame(ctx context.Context, id model.GameID) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM live_games WHERE id = $1`, string(id))
	if err != nil {
		return false, fmt.Errorf("delete live game: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanLiveGame(row pgx.Row) (*model.LiveGame, error) {
	var (
		id, username, mode string
		score              int
		startedAt          time.Time
	)
	if err := row.Scan(&id, &username, &score, &mode, &startedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLiveGameNotFound
		}
		return nil, fmt.Errorf("scan live game: %w", err)
	}
	return &model.LiveGame{
		ID:        model.GameID(id),
		Username:  username,
		Score:     score,
		Mode:      model.GameMode(mode),
		StartedAt: startedAt.UTC(),
	}, nil
}
