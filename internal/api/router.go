package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"

	"github.com/mcoot/snakyhub/internal/api/apierr"
	"github.com/mcoot/snakyhub/internal/api/handler"
	"github.com/mcoot/snakyhub/internal/api/middleware"
	"github.com/mcoot/snakyhub/internal/api/response"
	"github.com/mcoot/snakyhub/internal/services/auth"
	"github.com/mcoot/snakyhub/internal/services/games"
	"github.com/mcoot/snakyhub/internal/services/leaderboard"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	LeaderboardService *leaderboard.Service
	GameService        *games.Service

	// AllowedOrigins for CORS; empty allows any origin
	AllowedOrigins []string
	// AuthRateLimit is signup and login requests per minute per IP; zero disables limiting
	AuthRateLimit int
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = apierr.NotFoundHandler()
	r.MethodNotAllowedHandler = apierr.MethodNotAllowedHandler()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Logger)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService, cfg.Logger)
	gamesHandler := handler.NewGamesHandler(cfg.GameService, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)
	rateLimit := authRateLimiter(cfg.AuthRateLimit)

	r.Use(middleware.Stack(cfg.Logger)...)

	// Health check endpoint (no auth)
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// API routes use full paths on the root router; a PathPrefix subrouter answers wrong methods with 404

	// Auth routes; signup and login share one per-IP budget
	r.Handle("/api/auth/signup", rateLimit(http.HandlerFunc(authHandler.Signup))).Methods(http.MethodPost)
	r.Handle("/api/auth/login", rateLimit(http.HandlerFunc(authHandler.Login))).Methods(http.MethodPost)
	r.Handle("/api/auth/logout", authMiddleware(http.HandlerFunc(authHandler.Logout))).Methods(http.MethodPost)
	r.Handle("/api/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me))).Methods(http.MethodGet)

	// Leaderboard routes
	r.Handle("/api/leaderboard", optionalAuthMiddleware(http.HandlerFunc(leaderboardHandler.List))).Methods(http.MethodGet)
	r.Handle("/api/leaderboard", authMiddleware(http.HandlerFunc(leaderboardHandler.Submit))).Methods(http.MethodPost)

	// Live game routes
	r.Handle("/api/games", optionalAuthMiddleware(http.HandlerFunc(gamesHandler.List))).Methods(http.MethodGet)
	r.Handle("/api/games", authMiddleware(http.HandlerFunc(gamesHandler.Start))).Methods(http.MethodPost)
	r.HandleFunc("/api/games/{id}", gamesHandler.Get).Methods(http.MethodGet)
	r.Handle("/api/games/{id}", authMiddleware(http.HandlerFunc(gamesHandler.End))).Methods(http.MethodDelete)

	return corsHandler(cfg.AllowedOrigins).Handler(r)
}

// corsHandler allows every method and header from the configured origins
func corsHandler(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{apierr.CodeHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// authRateLimiter limits by client IP; a non-positive limit returns a pass-through
func authRateLimiter(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(apierr.RateLimited),
	)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, response.Status{Status: "ok"})
}
