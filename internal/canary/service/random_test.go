package service

import (
	"crypto/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/canarydrop/internal/canary/domain"
)

var tokenIDPattern = regexp.MustCompile(`^([a-z]+)_([0-9a-f]{32})$`)

func TestNewTokenID_Format(t *testing.T) {
	for _, tokenType := range domain.AllTokenTypes() {
		t.Run(tokenType.String(), func(t *testing.T) {
			tokenID, err := NewTokenID(rand.Reader, tokenType)
			require.NoError(t, err)

			match := tokenIDPattern.FindStringSubmatch(tokenID)
			require.NotNil(t, match, "unexpected token id %q", tokenID)
			assert.Equal(t, tokenType.Prefix(), match[1])
		})
	}
}

func TestNewTokenID_Deterministic(t *testing.T) {
	tokenID, err := NewTokenID(&sequenceReader{}, domain.TokenTypeDNS)
	require.NoError(t, err)
	assert.Equal(t, "dns_000102030405060708090a0b0c0d0e0f", tokenID)
}

func TestNewTokenID_Unique(t *testing.T) {
	const n = 10000
	seen := make(map[string]struct{}, n)

	for i := 0; i < n; i++ {
		tokenID, err := NewTokenID(rand.Reader, domain.TokenTypeHTTP)
		require.NoError(t, err)

		_, dup := seen[tokenID]
		require.False(t, dup, "duplicate token id %q", tokenID)
		seen[tokenID] = struct{}{}
	}

	assert.Len(t, seen, n)
}

func TestNewTokenID_Errors(t *testing.T) {
	t.Run("Error_InvalidTokenType", func(t *testing.T) {
		_, err := NewTokenID(rand.Reader, domain.TokenType("gopher"))
		assert.ErrorIs(t, err, domain.ErrInvalidTokenType)
	})

	t.Run("Error_RandomSource", func(t *testing.T) {
		_, err := NewTokenID(failingReader(4), domain.TokenTypeDNS)
		assert.ErrorIs(t, err, errRandomUnavailable)
	})
}
