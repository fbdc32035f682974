package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultBcryptCost is the work factor used when none is configured.
	DefaultBcryptCost = 8

	// MaxPasswordBytes is the longest plaintext bcrypt accepts.
	MaxPasswordBytes = 72
)

var (
	// ErrEmptyPassword is returned when hashing an empty plaintext
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrPasswordTooLong is returned when hashing more than MaxPasswordBytes
	ErrPasswordTooLong = fmt.Errorf("password cannot exceed %d bytes", MaxPasswordBytes)

	// ErrInvalidCost is returned for a work factor bcrypt does not accept
	ErrInvalidCost = fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
)

// PasswordHasher hashes and verifies passwords with bcrypt.
// The salt is embedded in the digest.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the given work factor.
// A zero cost selects DefaultBcryptCost.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, ErrInvalidCost
	}
	return &PasswordHasher{cost: cost}, nil
}

// Hash returns the bcrypt digest of plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	if len(plaintext) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Matches reports whether plaintext hashes to digest.
// A malformed digest never matches.
func (h *PasswordHasher) Matches(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// Cost returns the configured work factor.
func (h *PasswordHasher) Cost() int {
	return h.cost
}
