package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher(t *testing.T) {
	t.Run("zero cost uses default", func(t *testing.T) {
		h, err := NewPasswordHasher(0)
		require.NoError(t, err)
		assert.Equal(t, DefaultBcryptCost, h.Cost())
	})

	t.Run("rejects cost below minimum", func(t *testing.T) {
		_, err := NewPasswordHasher(bcrypt.MinCost - 1)
		assert.ErrorIs(t, err, ErrInvalidCost)
	})

	t.Run("rejects cost above maximum", func(t *testing.T) {
		_, err := NewPasswordHasher(bcrypt.MaxCost + 1)
		assert.ErrorIs(t, err, ErrInvalidCost)
	})
}

func TestPasswordHasher(t *testing.T) {
	h, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("hash matches its own plaintext", func(t *testing.T) {
		for _, p := range []string{"123456", "correct horse battery staple", "sénha-ç"} {
			digest, err := h.Hash(p)
			require.NoError(t, err)
			assert.True(t, h.Matches(p, digest), "plaintext %q", p)
		}
	})

	t.Run("different plaintext does not match", func(t *testing.T) {
		digest, err := h.Hash("password-one")
		require.NoError(t, err)
		assert.False(t, h.Matches("password-two", digest))
		assert.False(t, h.Matches("", digest))
	})

	t.Run("digest embeds salt and cost", func(t *testing.T) {
		first, err := h.Hash("same")
		require.NoError(t, err)
		second, err := h.Hash("same")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.True(t, strings.HasPrefix(first, "$2a$04$"))
		assert.NotContains(t, first, "same")

		cost, err := bcrypt.Cost([]byte(first))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.MinCost, cost)
	})

	t.Run("empty plaintext is rejected", func(t *testing.T) {
		_, err := h.Hash("")
		assert.ErrorIs(t, err, ErrEmptyPassword)
	})

	t.Run("plaintext over 72 bytes is rejected", func(t *testing.T) {
		_, err := h.Hash(strings.Repeat("p", MaxPasswordBytes+1))
		assert.ErrorIs(t, err, ErrPasswordTooLong)

		// 36 two-byte runes fit, 37 do not
		digest, err := h.Hash(strings.Repeat("ç", 36))
		require.NoError(t, err)
		assert.True(t, h.Matches(strings.Repeat("ç", 36), digest))

		_, err = h.Hash(strings.Repeat("ç", 37))
		assert.ErrorIs(t, err, ErrPasswordTooLong)
	})

	t.Run("malformed digest never matches", func(t *testing.T) {
		assert.False(t, h.Matches("anything", "not-a-bcrypt-digest"))
		assert.False(t, h.Matches("anything", ""))
	})
}
