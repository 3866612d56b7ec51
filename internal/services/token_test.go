package services

import (
	"testing"
	"time"

	"schoolportal-backend-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	tokens := testTokens()
	raw, exp, err := tokens.IssueSession("user-1", models.RoleModerator)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	session, ok := tokens.VerifySession(raw)
	require.True(t, ok)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, models.RoleModerator, session.Role)
	assert.WithinDuration(t, exp, session.ExpiresAt, time.Second)
}

func TestSessionTamperedTokenRejected(t *testing.T) {
	tokens := testTokens()
	raw, _, err := tokens.IssueSession("user-1", models.RoleUser)
	require.NoError(t, err)

	// Flip one byte in the payload segment. The MAC no longer matches, so
	// the altered claims must never be trusted.
	tampered := []byte(raw)
	mid := len(tampered) / 2
	if tampered[mid] == 'A' {
		tampered[mid] = 'B'
	} else {
		tampered[mid] = 'A'
	}
	_, ok := tokens.VerifySession(string(tampered))
	assert.False(t, ok)
}

func TestSessionWrongSecretRejected(t *testing.T) {
	tokens := testTokens()
	raw, _, err := tokens.IssueSession("user-1", models.RoleUser)
	require.NoError(t, err)

	other := tokens
	other.Secret = []byte("different-secret")
	_, ok := other.VerifySession(raw)
	assert.False(t, ok)
}

func TestSessionExpiredTokenRejected(t *testing.T) {
	tokens := testTokens()
	tokens.TTL = -time.Minute
	raw, _, err := tokens.IssueSession("user-1", models.RoleUser)
	require.NoError(t, err)

	_, ok := tokens.VerifySession(raw)
	assert.False(t, ok)
}

func TestSessionGarbageRejected(t *testing.T) {
	tokens := testTokens()
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, ok := tokens.VerifySession(raw)
		assert.False(t, ok, "token %q", raw)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	tokens := testTokens()
	hash, err := tokens.HashPassword("hunter2")
	require.NoError(t, err)
	assert.True(t, tokens.VerifyPassword("hunter2", hash))
	assert.False(t, tokens.VerifyPassword("hunter3", hash))
}
