package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/snakyhub/internal/api/middleware"
	"github.com/mcoot/snakyhub/internal/api/request"
	"github.com/mcoot/snakyhub/internal/api/response"
	"github.com/mcoot/snakyhub/internal/model"
	"github.com/mcoot/snakyhub/internal/services/games"
)

// GamesHandler handles live game endpoints
type GamesHandler struct {
	service *games.Service
	logger  *slog.Logger
}

// NewGamesHandler creates a new live games handler
func NewGamesHandler(service *games.Service, logger *slog.Logger) *GamesHandler {
	return &GamesHandler{
		service: service,
		logger:  logger,
	}
}

// List handles GET /api/games
func (h *GamesHandler) List(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r.Context()); user != nil {
		h.logger.Debug("live games viewed", slog.String("username", user.Username))
	}

	liveGames, err := h.service.List(r.Context())
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.OK(w, response.LiveGamesFromModel(liveGames))
}

// Get handles GET /api/games/{id}
func (h *GamesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	game, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.OK(w, response.LiveGameFromModel(game))
}

// Start handles POST /api/games
func (h *GamesHandler) Start(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.StartGameRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	game, err := h.service.Start(r.Context(), user, model.GameID(req.ID), model.GameMode(req.Mode))
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.Created(w, response.LiveGameFromModel(game))
}

// End handles DELETE /api/games/{id}
func (h *GamesHandler) End(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	id := model.GameID(mux.Vars(r)["id"])

	if err := h.service.End(r.Context(), user, id); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.NoContent(w)
}
