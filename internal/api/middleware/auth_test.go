package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/snakyhub/internal/api/apierr"
	"github.com/mcoot/snakyhub/internal/factory"
	"github.com/mcoot/snakyhub/internal/model"
	"github.com/mcoot/snakyhub/internal/testutil"
)

func issueToken(t *testing.T, app *factory.TestApp) (*model.User, string) {
	t.Helper()
	user, err := app.AuthService.Signup(t.Context(), "eve", "eve@x.com", "secret1")
	require.NoError(t, err)
	session, err := app.AuthService.Login(t.Context(), "eve@x.com", "secret1")
	require.NoError(t, err)
	return user, session.Token
}

func captureUser(seen **model.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = GetUser(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthAttachesUser(t *testing.T) {
	app := factory.NewTestApp()
	user, token := issueToken(t, app)

	var seen *model.User
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	Auth(app.AuthService)(captureUser(&seen)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	require.NotNil(t, seen)
	assert.Equal(t, user.ID, seen.ID)
}

func TestAuthRejects(t *testing.T) {
	app := factory.NewTestApp()

	cases := []struct {
		name   string
		header *string
		status int
		code   string
	}{
		{"missing", nil, http.StatusForbidden, apierr.CodeNotAuthenticated},
		{"empty", ptr(""), http.StatusUnauthorized, apierr.CodeUnauthorized},
		{"blank", ptr("   "), http.StatusUnauthorized, apierr.CodeUnauthorized},
		{"garbage token", ptr("Bearer garbage"), http.StatusUnauthorized, apierr.CodeUnauthorized},
		{"basic scheme", ptr("Basic dXNlcjpwYXNz"), http.StatusUnauthorized, apierr.CodeUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen *model.User
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != nil {
				req.Header.Set("Authorization", *tc.header)
			}
			rr := httptest.NewRecorder()
			Auth(app.AuthService)(captureUser(&seen)).ServeHTTP(rr, req)

			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, tc.code, rr.Header().Get(apierr.CodeHeader))
			assert.Nil(t, seen)
		})
	}
}

func ptr(s string) *string { return &s }

func TestOptionalAuthTreatsBlankHeaderAsAnonymous(t *testing.T) {
	app := factory.NewTestApp()

	var seen *model.User
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "   ")
	rr := httptest.NewRecorder()
	OptionalAuth(app.AuthService)(captureUser(&seen)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Nil(t, seen)
}

func TestOptionalAuth(t *testing.T) {
	app := factory.NewTestApp()
	user, token := issueToken(t, app)

	for header, wantUser := range map[string]bool{
		"":                false,
		"Bearer garbage":  false,
		"Bearer " + token: true,
	} {
		var seen *model.User
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		OptionalAuth(app.AuthService)(captureUser(&seen)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		if wantUser {
			require.NotNil(t, seen)
			assert.Equal(t, user.ID, seen.ID)
		} else {
			assert.Nil(t, seen)
		}
	}
}

func TestMustGetUserPanicsWithoutMiddleware(t *testing.T) {
	assert.Panics(t, func() { MustGetUser(context.Background()) })

	ctx := WithUser(context.Background(), &model.User{ID: "u1"})
	assert.Equal(t, model.UserID("u1"), MustGetUser(ctx).ID)
}

func TestRecoveryWritesJSONError(t *testing.T) {
	h := Recovery(testutil.NopLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, apierr.CodeInternalError, rr.Header().Get(apierr.CodeHeader))
}
