package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/snakyhub/internal/api/apierr"
	"github.com/mcoot/snakyhub/internal/middleware"
)

// Stack returns the middleware every matched API route runs behind, outermost first
// Recovery wraps logging so a panicking request is still answered with the JSON error body
func Stack(logger *slog.Logger) []mux.MiddlewareFunc {
	return []mux.MiddlewareFunc{
		Recovery(logger),
		middleware.Logging(logger),
	}
}

// Recovery turns a panic into a 500 INTERNAL_ERROR response
func Recovery(logger *slog.Logger) mux.MiddlewareFunc {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
