package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken("secret", 7, "alice", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenIDsAreUnique(t *testing.T) {
	a, err := GenerateToken("secret", 1, "alice", time.Hour)
	require.NoError(t, err)
	b, err := GenerateToken("secret", 1, "alice", time.Hour)
	require.NoError(t, err)

	ca, err := ParseToken("secret", a)
	require.NoError(t, err)
	cb, err := ParseToken("secret", b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestParseTokenRejects(t *testing.T) {
	tok, err := GenerateToken("secret", 1, "alice", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", tok)
	assert.Error(t, err, "wrong key")

	expired, err := GenerateToken("secret", 1, "alice", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken("secret", expired)
	assert.Error(t, err, "expired")

	_, err = ParseToken("secret", "not-a-jwt")
	assert.Error(t, err)
}
