package middleware

import (
	"context"
	"net/http"

	"github.com/mcoot/snakyhub/internal/api/apierr"
	"github.com/mcoot/snakyhub/internal/model"
	"github.com/mcoot/snakyhub/internal/services/auth"
)

type contextKey string

const userContextKey contextKey = "user"

// Auth rejects requests whose Authorization header does not resolve to a user
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header, ok := authorizationHeader(r)
			if !ok {
				apierr.WriteError(w, auth.ErrNoCredentials)
				return
			}
			user, err := authService.Authenticate(r.Context(), header)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// OptionalAuth attaches the caller if the header resolves, and never rejects
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if header, ok := authorizationHeader(r); ok {
				if user := authService.AuthenticateOptional(r.Context(), header); user != nil {
					r = r.WithContext(WithUser(r.Context(), user))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// authorizationHeader reports whether the client sent an Authorization header at all
// A header sent with an empty value is present
func authorizationHeader(r *http.Request) (string, bool) {
	values := r.Header.Values("Authorization")
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// WithUser returns a context carrying user
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUser returns the authenticated user from the request context, or nil
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// MustGetUser returns the authenticated user or panics
func MustGetUser(ctx context.Context) *model.User {
	user := GetUser(ctx)
	if user == nil {
		panic("no user in context - auth middleware not applied?")
	}
	return user
}
