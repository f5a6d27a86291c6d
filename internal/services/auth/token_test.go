package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/snakyhub/internal/dependencies/mocks"
	"github.com/mcoot/snakyhub/internal/model"
)

func newTestTokenManager() (*TokenManager, *mocks.MockClock) {
	clk := mocks.NewMockClock(time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC))
	return NewTokenManager("test-secret", 7*24*time.Hour, clk), clk
}

func TestTokenRoundTrip(t *testing.T) {
	m, clk := newTestTokenManager()

	for _, subject := range []model.UserID{"user-1", "0b7d1c1e-6a4e-4a0f-9a57-0d2d5b1f1a11", "ünïcödé"} {
		token, expiresAt, err := m.Issue(subject)
		require.NoError(t, err)
		assert.Equal(t, clk.Now().Add(7*24*time.Hour), expiresAt)

		claims, err := m.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, string(subject), claims.Subject)
		assert.Equal(t, clk.Now(), claims.IssuedAt.Time.UTC())
	}
}

func TestTokenValidUntilExpiry(t *testing.T) {
	m, clk := newTestTokenManager()
	token, _, err := m.Issue("user-1")
	require.NoError(t, err)

	clk.Advance(7*24*time.Hour - time.Second)
	_, err = m.Decode(token)
	assert.NoError(t, err)

	clk.Advance(2 * time.Second)
	_, err = m.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenWrongSecret(t *testing.T) {
	m, clk := newTestTokenManager()
	other := NewTokenManager("another-secret", time.Hour, clk)

	token, _, err := other.Issue("user-1")
	require.NoError(t, err)

	_, err = m.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestTokenMalformed(t *testing.T) {
	m, _ := newTestTokenManager()

	for _, token := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		_, err := m.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidToken, token)
	}
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	m, clk := newTestTokenManager()

	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(clk.Now().Add(time.Hour)),
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = m.Decode(hs512)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Decode(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRequiresExpiry(t *testing.T) {
	m, _ := newTestTokenManager()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
