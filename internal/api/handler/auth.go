package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/snakyhub/internal/api/middleware"
	"github.com/mcoot/snakyhub/internal/api/request"
	"github.com/mcoot/snakyhub/internal/api/response"
	"github.com/mcoot/snakyhub/internal/services/auth"
)

// AuthHandler handles account endpoints
type AuthHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	user, err := h.authService.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.Created(w, response.UserFromModel(user))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.OK(w, response.LoginResponseFromSession(session))
}

// Logout handles POST /api/auth/logout
// Tokens are stateless so this only confirms the caller was authenticated
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	h.logger.Info("user logged out", slog.String("user_id", string(user.ID)))
	response.OK(w, response.Message{Message: "Logged out successfully"})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	response.OK(w, response.UserFromModel(user))
}
