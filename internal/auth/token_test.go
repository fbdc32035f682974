package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-with-enough-entropy-123456"

func TestNewTokenService(t *testing.T) {
	_, err := NewTokenService("")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := NewTokenService(testSecret)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		userID := uuid.New()

		token, err := svc.Issue(userID)
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(token, "."))

		principal, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, userID, principal.UserID)
		assert.Equal(t, userID.String(), principal.Subject())
	}
}

func TestTokenService_NoExpiryByDefault(t *testing.T) {
	svc, err := NewTokenService(testSecret)
	require.NoError(t, err)

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
	assert.NotNil(t, claims.IssuedAt)

	later, err := NewTokenService(testSecret, WithClock(func() time.Time {
		return time.Now().Add(24 * 365 * time.Hour)
	}))
	require.NoError(t, err)
	_, err = later.Verify(token)
	assert.NoError(t, err)
}

func TestTokenService_Rejects(t *testing.T) {
	svc, err := NewTokenService(testSecret)
	require.NoError(t, err)

	valid, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	other, err := NewTokenService("a-completely-different-secret-value")
	require.NoError(t, err)
	foreign, err := other.Issue(uuid.New())
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: uuid.NewString(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "not-a-uuid",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject: uuid.NewString(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "garbage"},
		{name: "empty", token: ""},
		{name: "tampered suffix", token: valid + "tampered"},
		{name: "signed with another secret", token: foreign},
		{name: "none algorithm", token: noneAlg},
		{name: "non uuid subject", token: badSubject},
		{name: "unexpected hmac variant", token: hs512},
		{name: "three dots of nothing", token: "a.b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, principal)
		})
	}
}

func TestTokenService_Expiry(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt

	svc, err := NewTokenService(testSecret,
		WithTTL(time.Hour),
		WithClock(func() time.Time { return now }),
	)
	require.NoError(t, err)

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	now = issuedAt.Add(30 * time.Minute)
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	now = issuedAt.Add(2 * time.Hour)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_ValidateToken(t *testing.T) {
	svc, err := NewTokenService(testSecret)
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.Issue(userID)
	require.NoError(t, err)

	principal, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, principal.UserID)
}
