package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mcoot/snakyhub/internal/dependencies/clock"
	"github.com/mcoot/snakyhub/internal/model"
	"github.com/mcoot/snakyhub/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Bearer resolution errors, in the order they are checked
	ErrNoCredentials   = errors.New("no credentials provided")
	ErrMalformedHeader = errors.New("invalid authorization header format")
	ErrInvalidToken    = errors.New("invalid authentication token")
	ErrInvalidClaims   = errors.New("invalid token claims")
	ErrUserNotFound    = errors.New("token subject does not match a user")
)

// DevelopmentSecret signs tokens when no secret is configured
// Never rely on it outside local development
const DevelopmentSecret = "snaky-dev-secret-change-me"

// Session is the result of a successful login
type Session struct {
	User      model.User
	Token     string
	ExpiresAt time.Time
}

// Service handles signup, login and bearer token resolution
// Tokens are stateless: nothing is stored server side, so logout cannot revoke them
type Service struct {
	storage  storage.Storage
	clock    clock.Clock
	tokens   *TokenManager
	hashCost int
	logger   *slog.Logger
}

// Config holds configuration for the auth service
type Config struct {
	// Secret signs bearer tokens
	Secret string
	// TokenTTL is how long a token stays valid after login
	TokenTTL time.Duration
	// HashCost is the bcrypt cost; zero selects the bcrypt default
	HashCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		Secret:   DevelopmentSecret,
		TokenTTL: 7 * 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	defaults := DefaultConfig()
	if cfg.Secret == "" {
		cfg.Secret = defaults.Secret
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = defaults.TokenTTL
	}
	return &Service{
		storage:  storage,
		clock:    clock,
		tokens:   NewTokenManager(cfg.Secret, cfg.TokenTTL, clock),
		hashCost: cfg.HashCost,
		logger:   logger,
	}
}

// Tokens exposes the token manager used by the service
func (s *Service) Tokens() *TokenManager {
	return s.tokens
}

// Signup creates a new account
// Returns model.ErrEmailExists if the email is already registered
func (s *Service) Signup(ctx context.Context, username, email, password string) (*model.User, error) {
	exists, err := s.storage.UserExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, model.ErrEmailExists
	}

	hash, err := HashPassword(password, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// The storage layer enforces uniqueness again for concurrent signups
	user, err := s.storage.CreateUser(ctx, username, email, hash)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user signed up",
		slog.String("user_id", string(user.ID)),
		slog.String("username", user.Username),
	)
	return user, nil
}

// Login verifies credentials and issues a bearer token
// Unknown emails and wrong passwords both return ErrInvalidCredentials
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			s.logger.Debug("login failed: unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		s.logger.Debug("login failed: password mismatch", slog.String("user_id", string(user.ID)))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &Session{
		User:      *user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Authenticate resolves the value of a present Authorization header to a user
// An empty or blank value is malformed; callers report a missing header as ErrNoCredentials
func (s *Service) Authenticate(ctx context.Context, header string) (*model.User, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, ErrMalformedHeader
	}

	claims, err := s.tokens.Decode(parts[1])
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, ErrInvalidClaims
	}

	user, err := s.storage.GetUserByID(ctx, model.UserID(claims.Subject))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// AuthenticateOptional is Authenticate for endpoints that allow anonymous callers
// Every failure, including storage errors, yields nil
func (s *Service) AuthenticateOptional(ctx context.Context, header string) *model.User {
	user, err := s.Authenticate(ctx, header)
	if err != nil {
		s.logger.Debug("ignoring invalid optional credentials", slog.String("error", err.Error()))
		return nil
	}
	return user
}
