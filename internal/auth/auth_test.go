package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	h, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", h)
	assert.True(t, CheckPassword(h, "s3cret"))
	assert.False(t, CheckPassword(h, "wrong"))
}

func TestTokens_IssueVerify(t *testing.T) {
	tm, err := NewTokens("test-secret-test-secret-test-secret", "cinerator", "api", time.Hour)
	require.NoError(t, err)

	tok, err := tm.Issue("user-1", "neo", "USER")
	require.NoError(t, err)

	claims, err := tm.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "neo", claims.Username)

	other, err := NewTokens("another-secret", "cinerator", "api", time.Hour)
	require.NoError(t, err)
	_, err = other.Verify(tok)
	assert.Error(t, err)
}

func TestTokens_Expired(t *testing.T) {
	tm, err := NewTokens("secret", "", "", time.Minute)
	require.NoError(t, err)
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := tm.Issue("u", "u", "USER")
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.Verify(tok)
	assert.Error(t, err)
}

func TestNewTokens_EmptySecret(t *testing.T) {
	_, err := NewTokens("", "", "", 0)
	assert.Error(t, err)
}
