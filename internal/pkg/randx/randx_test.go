package randx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenShape(t *testing.T) {
	token, err := SessionToken()
	require.NoError(t, err)
	assert.Len(t, token, SessionTokenLength)
	assert.True(t, IsValidSessionToken(token))
}

func TestSessionTokensAreUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		token, err := SessionToken()
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup, "duplicate token generated")
		seen[token] = struct{}{}
	}
}

func TestIsValidSessionToken(t *testing.T) {
	assert.False(t, IsValidSessionToken(""))
	assert.False(t, IsValidSessionToken("short"))
	assert.False(t, IsValidSessionToken(string(make([]byte, SessionTokenLength))))
}
