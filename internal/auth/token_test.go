package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	raw, err := issuer.Issue(42)
	require.NoError(t, err)

	uid, err := issuer.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), uid)
}

func TestTokenWrongSecret(t *testing.T) {
	raw, err := NewTokenIssuer("secret-a", time.Hour).Issue(42)
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b", time.Hour).Verify(raw)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	raw, err := NewTokenIssuer("test-secret", -time.Minute).Issue(42)
	require.NoError(t, err)

	_, err = NewTokenIssuer("test-secret", -time.Minute).Verify(raw)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := NewTokenIssuer("test-secret", time.Hour).Verify("not.a.token")
	assert.Error(t, err)
}
