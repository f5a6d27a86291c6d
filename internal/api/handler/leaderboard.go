package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/snakyhub/internal/api/middleware"
	"github.com/mcoot/snakyhub/internal/api/request"
	"github.com/mcoot/snakyhub/internal/api/response"
	"github.com/mcoot/snakyhub/internal/model"
	"github.com/mcoot/snakyhub/internal/services/leaderboard"
)

// LeaderboardHandler handles leaderboard endpoints
type LeaderboardHandler struct {
	service *leaderboard.Service
	logger  *slog.Logger
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(service *leaderboard.Service, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		service: service,
		logger:  logger,
	}
}

// List handles GET /api/leaderboard?mode=
func (h *LeaderboardHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	mode := query.Get("mode")
	if query.Has("mode") && mode == "" {
		writeError(h.logger, w, r, model.ErrInvalidMode)
		return
	}

	if user := middleware.GetUser(r.Context()); user != nil {
		h.logger.Debug("leaderboard viewed", slog.String("username", user.Username))
	}

	entries, err := h.service.List(r.Context(), mode)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.OK(w, response.LeaderboardFromModel(entries))
}

// Submit handles POST /api/leaderboard
func (h *LeaderboardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.SubmitScoreRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	entry, err := h.service.Submit(r.Context(), user, *req.Score, model.GameMode(req.Mode))
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.Created(w, response.LeaderboardEntryFromModel(entry))
}
