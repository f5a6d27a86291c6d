package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/snakyhub/internal/api"
	"github.com/mcoot/snakyhub/internal/api/apierr"
	"github.com/mcoot/snakyhub/internal/api/response"
	"github.com/mcoot/snakyhub/internal/factory"
	"github.com/mcoot/snakyhub/internal/model"
	"github.com/mcoot/snakyhub/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithConfig(t, api.RouterConfig{})
}

func newTestServerWithConfig(t *testing.T, cfg api.RouterConfig) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	cfg.Logger = testutil.NopLogger()
	cfg.AuthService = app.AuthService
	cfg.LeaderboardService = app.LeaderboardService
	cfg.GameService = app.GameService

	return &testServer{
		handler: api.NewRouter(cfg),
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	headers := map[string]string{}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return ts.requestWithHeaders(method, path, body, headers)
}

func (ts *testServer) requestWithHeaders(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	reqBody := bytes.NewBuffer(nil)
	switch b := body.(type) {
	case nil:
	case string:
		reqBody.WriteString(b)
	default:
		raw, _ := json.Marshal(b)
		reqBody.Write(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func assertError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) apierr.ErrorResponse {
	t.Helper()
	require.Equal(t, status, rr.Code, rr.Body.String())
	assert.Equal(t, code, rr.Header().Get(apierr.CodeHeader))
	body := decode[apierr.ErrorResponse](t, rr)
	assert.Equal(t, code, body.Code)
	return body
}

// Helper functions

func signup(t *testing.T, ts *testServer, username, email, password string) response.User {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[response.User](t, rr)
}

func login(t *testing.T, ts *testServer, email, password string) string {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[response.LoginResponse](t, rr).Token
}

func signupAndLogin(t *testing.T, ts *testServer, username, email string) string {
	t.Helper()
	signup(t, ts, username, email, "secret1")
	return login(t, ts, email, "secret1")
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestSignupAndLogin(t *testing.T) {
	ts := newTestServer(t)

	user := signup(t, ts, "alice", "alice@x.com", "secret123")
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@x.com", user.Email)

	rr := ts.request(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "alice@x.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[response.LoginResponse](t, rr)
	assert.Equal(t, user, resp.User)
	assert.NotEmpty(t, resp.Token)
}

func TestSignupResponseOmitsPasswordHash(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "alice", "email": "alice@x.com", "password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	raw := decode[map[string]any](t, rr)
	assert.ElementsMatch(t, []string{"id", "username", "email"}, keys(raw))
}

func TestSignupDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	signup(t, ts, "alice", "alice@x.com", "secret123")

	rr := ts.request(http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "alice2", "email": "alice@x.com", "password": "other-secret",
	}, "")
	body := assertError(t, rr, http.StatusConflict, apierr.CodeEmailDuplicate)
	assert.Equal(t, "Email already exists", body.Detail)
}

func TestConcurrentSignupSameEmail(t *testing.T) {
	ts := newTestServer(t)

	const workers = 10
	statuses := make([]int, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rr := ts.request(http.MethodPost, "/api/auth/signup", map[string]string{
				"username": fmt.Sprintf("racer%d", i), "email": "race@x.com", "password": "secret1",
			}, "")
			statuses[i] = rr.Code
		}()
	}
	wg.Wait()

	created := 0
	for _, status := range statuses {
		if status == http.StatusCreated {
			created++
		} else {
			assert.Equal(t, http.StatusConflict, status)
		}
	}
	assert.Equal(t, 1, created)
}

func TestSignupValidation(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		name  string
		body  map[string]string
		field string
	}{
		{"missing username", map[string]string{"email": "a@x.com", "password": "secret1"}, "username"},
		{"bad email", map[string]string{"username": "a", "email": "not-an-email", "password": "secret1"}, "email"},
		{"short password", map[string]string{"username": "a", "email": "a@x.com", "password": "12345"}, "password"},
		{"long username", map[string]string{"username": strings.Repeat("u", 256), "email": "a@x.com", "password": "secret1"}, "username"},
		{"long email", map[string]string{"username": "a", "email": "a@" + strings.Repeat("x", 250) + ".com", "password": "secret1"}, "email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/auth/signup", tc.body, "")
			body := assertError(t, rr, http.StatusUnprocessableEntity, apierr.CodeInvalidInput)
			assert.Contains(t, body.Fields, tc.field)
		})
	}
}

func TestMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/auth/signup", "{not json", "")
	assertError(t, rr, http.StatusUnprocessableEntity, apierr.CodeInvalidInput)

	rr = ts.request(http.MethodPost, "/api/auth/login", nil, "")
	assertError(t, rr, http.StatusUnprocessableEntity, apierr.CodeInvalidInput)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ts := newTestServer(t)
	signup(t, ts, "alice", "alice@x.com", "secret123")

	wrongPassword := ts.request(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "alice@x.com", "password": "wrong-password",
	}, "")
	unknownEmail := ts.request(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "nobody@x.com", "password": "secret123",
	}, "")

	first := assertError(t, wrongPassword, http.StatusUnauthorized, apierr.CodeInvalidCredentials)
	second := assertError(t, unknownEmail, http.StatusUnauthorized, apierr.CodeInvalidCredentials)
	assert.Equal(t, "Invalid email or password", first.Detail)
	assert.Equal(t, first, second)
}

func TestMe(t *testing.T) {
	ts := newTestServer(t)
	user := signup(t, ts, "bob", "bob@x.com", "secret1")
	token := login(t, ts, "bob@x.com", "secret1")

	rr := ts.request(http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, user, decode[response.User](t, rr))
}

func TestAuthFailures(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/auth/me", nil, "")
	body := assertError(t, rr, http.StatusForbidden, apierr.CodeNotAuthenticated)
	assert.Equal(t, "No credentials provided", body.Detail)

	cases := []struct {
		header string
		detail string
	}{
		{"Bearer garbage", "Invalid authentication token"},
		{"", "Invalid authorization header format"},
		{"   ", "Invalid authorization header format"},
		{"Token abc", "Invalid authorization header format"},
		{"Bearer", "Invalid authorization header format"},
		{"Bearer a b", "Invalid authorization header format"},
	}
	for _, tc := range cases {
		t.Run(tc.header, func(t *testing.T) {
			rr := ts.requestWithHeaders(http.MethodGet, "/api/auth/me", nil, map[string]string{"Authorization": tc.header})
			body := assertError(t, rr, http.StatusUnauthorized, apierr.CodeUnauthorized)
			assert.Equal(t, tc.detail, body.Detail)
		})
	}
}

func TestTokenForUnknownUser(t *testing.T) {
	ts := newTestServer(t)

	token, _, err := ts.app.AuthService.Tokens().Issue("ghost")
	require.NoError(t, err)

	rr := ts.request(http.MethodGet, "/api/auth/me", nil, token)
	body := assertError(t, rr, http.StatusUnauthorized, apierr.CodeUnauthorized)
	assert.Equal(t, "User not found", body.Detail)
}

func TestExpiredToken(t *testing.T) {
	ts := newTestServer(t)
	token := signupAndLogin(t, ts, "eve", "eve@x.com")

	ts.app.MockClock.Advance(7*24*time.Hour + time.Minute)

	rr := ts.request(http.MethodGet, "/api/auth/me", nil, token)
	assertError(t, rr, http.StatusUnauthorized, apierr.CodeUnauthorized)
}

func TestLogoutIsStateless(t *testing.T) {
	ts := newTestServer(t)
	token := signupAndLogin(t, ts, "eve", "eve@x.com")

	rr := ts.request(http.MethodPost, "/api/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Logged out successfully"}`, rr.Body.String())

	// The token remains valid until it expires
	rr = ts.request(http.MethodGet, "/api/auth/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/auth/logout", nil, "")
	assertError(t, rr, http.StatusForbidden, apierr.CodeNotAuthenticated)
}

func TestLeaderboardOrderingAndFilter(t *testing.T) {
	ts := newTestServer(t)
	token := signupAndLogin(t, ts, "eve", "eve@x.com")

	for _, sub := range []struct {
		score int
		mode  string
	}{
		{100, "walls"}, {700, "pass-through"}, {300, "walls"}, {300, "pass-through"}, {0, "walls"},
	} {
		rr := ts.request(http.MethodPost, "/api/leaderboard", map[string]any{"score": sub.score, "mode": sub.mode}, token)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	rr := ts.request(http.MethodGet, "/api/leaderboard", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	all := decode[[]response.LeaderboardEntry](t, rr)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Score, all[i].Score)
	}

	rr = ts.request(http.MethodGet, "/api/leaderboard?mode=walls", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	walls := decode[[]response.LeaderboardEntry](t, rr)
	require.Len(t, walls, 3)
	assert.Equal(t, []int{300, 100, 0}, []int{walls[0].Score, walls[1].Score, walls[2].Score})
	for _, e := range walls {
		assert.Equal(t, "walls", e.Mode)
	}

	// Repeated reads return the same order
	rr = ts.request(http.MethodGet, "/api/leaderboard", nil, "")
	assert.Equal(t, all, decode[[]response.LeaderboardEntry](t, rr))
}

func TestLeaderboardEmptyIsArray(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/leaderboard", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestLeaderboardInvalidMode(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/leaderboard?mode=diagonal", "/api/leaderboard?mode="} {
		rr := ts.request(http.MethodGet, path, nil, "")
		body := assertError(t, rr, http.StatusBadRequest, apierr.CodeInvalidInput)
		assert.Equal(t, "Invalid game mode", body.Detail)
	}
}

func TestLeaderboardListIgnoresBadOptionalToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.requestWithHeaders(http.MethodGet, "/api/leaderboard", nil, map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSubmitScoreValidation(t *testing.T) {
	ts := newTestServer(t)
	token := signupAndLogin(t, ts, "eve", "eve@x.com")

	cases := []struct {
		name  string
		body  any
		field string
	}{
		{"missing score", map[string]any{"mode": "walls"}, "score"},
		{"negative score", map[string]any{"score": -5, "mode": "walls"}, "score"},
		{"score above ceiling", map[string]any{"score": 2147483648, "mode": "walls"}, "score"},
		{"unknown mode", map[string]any{"score": 5, "mode": "diagonal"}, "mode"},
		{"missing mode", map[string]any{"score": 5}, "mode"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/leaderboard", tc.body, token)
			body := assertError(t, rr, http.StatusUnprocessableEntity, apierr.CodeInvalidInput)
			assert.Contains(t, body.Fields, tc.field)
		})
	}

	rr := ts.request(http.MethodPost, "/api/leaderboard", map[string]any{"score": 5, "mode": "walls"}, "")
	assertError(t, rr, http.StatusForbidden, apierr.CodeNotAuthenticated)
}

func TestEveScenario(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "eve", "email": "eve@x.com", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	token := login(t, ts, "eve@x.com", "secret1")

	rr = ts.request(http.MethodPost, "/api/leaderboard", map[string]any{"score": 500, "mode": "walls"}, token)
	require.Equal(t, http.StatusCreated, rr.Code)
	entry := decode[response.LeaderboardEntry](t, rr)
	assert.Equal(t, "eve", entry.Username)
	assert.Equal(t, 500, entry.Score)
	assert.Equal(t, ts.app.MockClock.Now().Format(model.DateLayout), entry.Date)

	rr = ts.request(http.MethodGet, "/api/leaderboard?mode=walls", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	entries := decode[[]response.LeaderboardEntry](t, rr)

	found := -1
	for i, e := range entries {
		if e.Username == "eve" && e.Score == 500 {
			found = i
			break
		}
	}
	require.NotEqual(t, -1, found)
	for _, e := range entries[:found] {
		assert.GreaterOrEqual(t, e.Score, 500)
	}
}

func TestLiveGames(t *testing.T) {
	ts := newTestServer(t)
	token := signupAndLogin(t, ts, "eve", "eve@x.com")

	ts.app.MockIDs.Queue("generated-1")
	rr := ts.request(http.MethodPost, "/api/games", map[string]string{"mode": "walls"}, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	game := decode[response.LiveGame](t, rr)
	assert.Equal(t, "generated-1", game.ID)
	assert.Equal(t, "eve", game.Username)
	assert.Zero(t, game.Score)
	assert.True(t, ts.app.MockClock.Now().Equal(game.StartedAt))

	raw := decode[map[string]any](t, rr)
	assert.Contains(t, raw, "startedAt")

	rr = ts.request(http.MethodPost, "/api/games", map[string]string{"id": "custom", "mode": "pass-through"}, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodGet, "/api/games", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]response.LiveGame](t, rr), 2)
}

func TestGetGameIsIdempotent(t *testing.T) {
	ts := newTestServer(t)
	token := signupAndLogin(t, ts, "eve", "eve@x.com")

	rr := ts.request(http.MethodPost, "/api/games", map[string]string{"id": "g1", "mode": "walls"}, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	first := ts.request(http.MethodGet, "/api/games/g1", nil, "")
	second := ts.request(http.MethodGet, "/api/games/g1", nil, "")
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestGetGameNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/games/does-not-exist", nil, "")
	body := assertError(t, rr, http.StatusNotFound, apierr.CodeNotFound)
	assert.Contains(t, strings.ToLower(body.Detail), "not found")
}

func TestStartGameConflictsAndValidation(t *testing.T) {
	ts := newTestServer(t)
	token := signupAndLogin(t, ts, "eve", "eve@x.com")

	rr := ts.request(http.MethodPost, "/api/games", map[string]string{"id": "g1", "mode": "walls"}, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/games", map[string]string{"id": "g1", "mode": "walls"}, token)
	assertError(t, rr, http.StatusConflict, apierr.CodeGameExists)

	rr = ts.request(http.MethodPost, "/api/games", map[string]string{"mode": "sideways"}, token)
	assertError(t, rr, http.StatusUnprocessableEntity, apierr.CodeInvalidInput)

	rr = ts.request(http.MethodPost, "/api/games", map[string]string{"id": strings.Repeat("x", 65), "mode": "walls"}, token)
	body := assertError(t, rr, http.StatusUnprocessableEntity, apierr.CodeInvalidInput)
	assert.Contains(t, body.Fields, "id")

	for _, id := range []string{"a/b", "   ", "game 1"} {
		rr = ts.request(http.MethodPost, "/api/games", map[string]string{"id": id, "mode": "walls"}, token)
		body = assertError(t, rr, http.StatusUnprocessableEntity, apierr.CodeInvalidInput)
		assert.Contains(t, body.Fields, "id", id)
	}

	rr = ts.request(http.MethodGet, "/api/games", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]response.LiveGame](t, rr), 1)
}

func TestTopScoreIsAccepted(t *testing.T) {
	ts := newTestServer(t)
	token := signupAndLogin(t, ts, "eve", "eve@x.com")

	rr := ts.request(http.MethodPost, "/api/leaderboard", map[string]any{"score": 2147483647, "mode": "walls"}, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, 2147483647, decode[response.LeaderboardEntry](t, rr).Score)
}

func TestEndGame(t *testing.T) {
	ts := newTestServer(t)
	eve := signupAndLogin(t, ts, "eve", "eve@x.com")
	bob := signupAndLogin(t, ts, "bob", "bob@x.com")

	rr := ts.request(http.MethodPost, "/api/games", map[string]string{"id": "g1", "mode": "walls"}, eve)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/games/g1", nil, bob)
	assertError(t, rr, http.StatusForbidden, apierr.CodeForbidden)

	rr = ts.request(http.MethodDelete, "/api/games/g1", nil, eve)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = ts.request(http.MethodDelete, "/api/games/g1", nil, eve)
	assertError(t, rr, http.StatusNotFound, apierr.CodeNotFound)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/nothing-here", nil, "")
	assertError(t, rr, http.StatusNotFound, apierr.CodeNotFound)

	rr = ts.request(http.MethodGet, "/nothing-here", nil, "")
	assertError(t, rr, http.StatusNotFound, apierr.CodeNotFound)

	rr = ts.request(http.MethodGet, "/api/games/a/b", nil, "")
	assertError(t, rr, http.StatusNotFound, apierr.CodeNotFound)
}

func TestWrongMethodOnEveryRoute(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodDelete, "/health"},
		{http.MethodGet, "/api/auth/signup"},
		{http.MethodGet, "/api/auth/login"},
		{http.MethodGet, "/api/auth/logout"},
		{http.MethodPost, "/api/auth/me"},
		{http.MethodPut, "/api/leaderboard"},
		{http.MethodDelete, "/api/leaderboard"},
		{http.MethodPut, "/api/games"},
		{http.MethodPut, "/api/games/x"},
		{http.MethodPost, "/api/games/x"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := ts.request(tc.method, tc.path, nil, "")
			assertError(t, rr, http.StatusMethodNotAllowed, apierr.CodeMethodNotAllowed)
		})
	}
}

func TestAuthRateLimit(t *testing.T) {
	ts := newTestServerWithConfig(t, api.RouterConfig{AuthRateLimit: 2})

	body := map[string]string{"email": "nobody@x.com", "password": "secret1"}
	for range 2 {
		rr := ts.request(http.MethodPost, "/api/auth/login", body, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	}

	rr := ts.request(http.MethodPost, "/api/auth/login", body, "")
	assertError(t, rr, http.StatusTooManyRequests, apierr.CodeRateLimited)

	// Other routes are not limited
	rr = ts.request(http.MethodGet, "/api/leaderboard", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCORS(t *testing.T) {
	ts := newTestServerWithConfig(t, api.RouterConfig{AllowedOrigins: []string{"http://localhost:5173"}})

	rr := ts.requestWithHeaders(http.MethodOptions, "/api/leaderboard", nil, map[string]string{
		"Origin":                         "http://localhost:5173",
		"Access-Control-Request-Method":  http.MethodPost,
		"Access-Control-Request-Headers": "Authorization, Content-Type",
	})
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))

	rr = ts.requestWithHeaders(http.MethodGet, "/api/games/missing", nil, map[string]string{"Origin": "http://localhost:5173"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Header().Get("Access-Control-Expose-Headers"), apierr.CodeHeader)

	rr = ts.requestWithHeaders(http.MethodGet, "/health", nil, map[string]string{"Origin": "http://evil.example"})
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
