package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/snakyhub/internal/config"
	"github.com/mcoot/snakyhub/internal/dependencies/clock"
	"github.com/mcoot/snakyhub/internal/dependencies/ids"
	"github.com/mcoot/snakyhub/internal/services/auth"
	"github.com/mcoot/snakyhub/internal/services/games"
	"github.com/mcoot/snakyhub/internal/services/leaderboard"
	"github.com/mcoot/snakyhub/internal/storage"
	"github.com/mcoot/snakyhub/internal/storage/memory"
	pgstorage "github.com/mcoot/snakyhub/internal/storage/postgres"
	redisstorage "github.com/mcoot/snakyhub/internal/storage/redis"
	"github.com/mcoot/snakyhub/internal/storage/seed"
)

// Storage type constants
const (
	StorageTypeMemory   = config.StorageMemory
	StorageTypePostgres = config.StoragePostgres
	StorageTypeRedis    = config.StorageRedis
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock
	IDs   ids.Generator

	// Services
	AuthService        *auth.Service
	LeaderboardService *leaderboard.Service
	GameService        *games.Service
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// Zero fields fall back to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "postgres" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds database settings (required if StorageType is "postgres")
	PostgresConfig *pgstorage.Config
	// Seed loads demo leaderboard rows and live games into empty collections
	Seed bool
}

// ConfigFromEnv translates process configuration into a factory Config
func ConfigFromEnv(cfg *config.Config, logger *slog.Logger) Config {
	out := Config{
		AuthConfig: auth.Config{
			Secret:   cfg.JWTSecret,
			TokenTTL: cfg.JWTExpiry,
		},
		Logger:      logger,
		StorageType: cfg.StorageType,
		Seed:        cfg.SeedData,
	}

	switch cfg.StorageType {
	case StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		out.RedisConfig = &redisCfg
	case StorageTypePostgres:
		pgCfg := pgstorage.DefaultConfig()
		pgCfg.URL = cfg.DatabaseURL
		pgCfg.MaxConns = int32(cfg.DatabaseMaxConns)
		pgCfg.AutoMigrate = cfg.AutoMigrate
		out.PostgresConfig = &pgCfg
	}
	return out
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Seed {
		result, err := seed.Load(ctx, store)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("seed storage: %w", err)
		}
		if result.LeaderboardEntries > 0 || result.LiveGames > 0 {
			logger.Info("seeded demo data",
				slog.Int("leaderboard_entries", result.LeaderboardEntries),
				slog.Int("live_games", result.LiveGames),
			)
		}
	}

	return newWithDependencies(store, clock.New(), ids.New(), cfg.AuthConfig, logger), nil
}

// newStorage creates the backend selected by cfg.StorageType
func newStorage(ctx context.Context, cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		return pgstorage.New(ctx, *cfg.PostgresConfig)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'postgres' or 'redis'", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, idGen ids.Generator, authCfg auth.Config, logger *slog.Logger) *App {
	return &App{
		Storage:            store,
		Clock:              clk,
		IDs:                idGen,
		AuthService:        auth.New(store, clk, authCfg, logger),
		LeaderboardService: leaderboard.New(store, clk, logger),
		GameService:        games.New(store, clk, idGen, logger),
	}
}
