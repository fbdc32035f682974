package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned for any token that does not verify:
	// malformed, wrong signature, unexpected algorithm, expired or with an
	// unusable subject.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingSecret is returned when a TokenService is built without a key
	ErrMissingSecret = errors.New("token signing secret is required")
)

// TokenService issues and verifies HS256 identity tokens.
// The secret is read-only after construction, so a TokenService is safe
// for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption configures a TokenService.
type TokenOption func(*TokenService)

// WithTTL sets the token lifetime. Zero means tokens never expire.
func WithTTL(ttl time.Duration) TokenOption {
	return func(s *TokenService) {
		s.ttl = ttl
	}
}

// WithClock overrides the time source used for iat/exp.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService creates a TokenService signing with secret.
func NewTokenService(secret string, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	s := &TokenService{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs a token whose subject is userID.
func (s *TokenService) Issue(userID uuid.UUID) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:  userID.String(),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Verify checks the token signature and returns the principal it asserts.
// Every failure is reported as ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Principal, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Principal{UserID: userID}, nil
}

// ValidateToken adapts Verify to the request guard.
func (s *TokenService) ValidateToken(_ context.Context, token string) (*Principal, error) {
	return s.Verify(token)
}
