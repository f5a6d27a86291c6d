package apierr

import (
	"errors"
	"net/http"

	"github.com/mcoot/snakyhub/internal/api/response"
	"github.com/mcoot/snakyhub/internal/model"
	"github.com/mcoot/snakyhub/internal/services/auth"
)

// CodeHeader carries the error code alongside the JSON body
const CodeHeader = "X-Error-Code"

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Detail string            `json:"detail"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Error codes
const (
	CodeEmailDuplicate     = "EMAIL_DUPLICATE"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeNotAuthenticated   = "NOT_AUTHENTICATED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeGameExists         = "GAME_EXISTS"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an ErrorResponse
type httpError struct {
	status int
	body   ErrorResponse
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.body.Detail
}

func newHTTPError(status int, code, detail string) *httpError {
	return &httpError{status, ErrorResponse{Detail: detail, Code: code}}
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set(CodeHeader, he.body.Code)
	response.JSON(w, he.status, he.body)
}

// StatusOf returns the HTTP status WriteError would use for err
func StatusOf(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Auth resolution errors
	case errors.Is(err, auth.ErrNoCredentials):
		return newHTTPError(http.StatusForbidden, CodeNotAuthenticated, "No credentials provided")
	case errors.Is(err, auth.ErrMalformedHeader):
		return newHTTPError(http.StatusUnauthorized, CodeUnauthorized, "Invalid authorization header format")
	case errors.Is(err, auth.ErrInvalidToken):
		return newHTTPError(http.StatusUnauthorized, CodeUnauthorized, "Invalid authentication token")
	case errors.Is(err, auth.ErrInvalidClaims):
		return newHTTPError(http.StatusUnauthorized, CodeUnauthorized, "Invalid token claims")
	case errors.Is(err, auth.ErrUserNotFound):
		return newHTTPError(http.StatusUnauthorized, CodeUnauthorized, "User not found")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return newHTTPError(http.StatusUnauthorized, CodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, auth.ErrPasswordTooLong):
		return toHTTPError(NewValidationError(map[string]string{
			"password": "The password may not be longer than 72 bytes.",
		}))

	// Model errors
	case errors.Is(err, model.ErrEmailExists):
		return newHTTPError(http.StatusConflict, CodeEmailDuplicate, "Email already exists")
	case errors.Is(err, model.ErrInvalidMode):
		return newHTTPError(http.StatusBadRequest, CodeInvalidInput, "Invalid game mode")
	case errors.Is(err, model.ErrInvalidScore):
		return newHTTPError(http.StatusBadRequest, CodeInvalidInput, "Score must be an integer between 0 and 2147483647")
	case errors.Is(err, model.ErrInvalidGameID):
		return newHTTPError(http.StatusBadRequest, CodeInvalidInput, "Game id may only contain letters, digits, underscores and hyphens")
	case errors.Is(err, model.ErrLiveGameNotFound):
		return newHTTPError(http.StatusNotFound, CodeNotFound, "Game not found")
	case errors.Is(err, model.ErrLiveGameExists):
		return newHTTPError(http.StatusConflict, CodeGameExists, "Game already exists")
	case errors.Is(err, model.ErrNotGameOwner):
		return newHTTPError(http.StatusForbidden, CodeForbidden, "Game belongs to another player")

	default:
		return newHTTPError(http.StatusInternalServerError, CodeInternalError, "Internal server error")
	}
}

// NewValidationError creates a 422 carrying one message per offending field
func NewValidationError(fields map[string]string) error {
	return &httpError{http.StatusUnprocessableEntity, ErrorResponse{
		Detail: "Validation failed",
		Code:   CodeInvalidInput,
		Fields: fields,
	}}
}

// NewInvalidRequestError creates an error for bodies that cannot be decoded
func NewInvalidRequestError(message string) error {
	return newHTTPError(http.StatusUnprocessableEntity, CodeInvalidInput, message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return newHTTPError(http.StatusInternalServerError, CodeInternalError, "Internal server error")
}

// NotFoundHandler answers unknown routes
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, newHTTPError(http.StatusNotFound, CodeNotFound, "Not found"))
	})
}

// MethodNotAllowedHandler answers known routes hit with the wrong method
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, newHTTPError(http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed"))
	})
}

// RateLimited answers requests rejected by the rate limiter
func RateLimited(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, newHTTPError(http.StatusTooManyRequests, CodeRateLimited, "Too many requests"))
}
