package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameTokenRoundTrip(t *testing.T) {
	s := NewSigner("test-secret", time.Hour)

	token, err := s.GenerateGameToken("game-1")
	require.NoError(t, err)

	claims, err := s.ValidateGameToken(token)
	require.NoError(t, err)
	assert.Equal(t, "game-1", claims.GameID)

	assert.NoError(t, s.Authorize(token, "game-1"))
	assert.ErrorIs(t, s.Authorize(token, "game-2"), ErrInvalidToken)
}

func TestGameTokenWrongSecret(t *testing.T) {
	token, err := NewSigner("one", time.Hour).GenerateGameToken("g")
	require.NoError(t, err)

	_, err = NewSigner("two", time.Hour).ValidateGameToken(token)
	assert.Error(t, err)
}

func TestGameTokenExpired(t *testing.T) {
	s := NewSigner("test-secret", -time.Minute)

	token, err := s.GenerateGameToken("g")
	require.NoError(t, err)

	_, err = s.ValidateGameToken(token)
	assert.Error(t, err)
}
