package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.Generate("owner-1", "owner@example.com", "session-1")
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", claims.UserID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, "session-1", claims.SessionID)
}

func TestTokenIssuerRejectsForeignSecret(t *testing.T) {
	token, err := NewTokenIssuer("other", time.Hour).Generate("owner-1", "a@b.c", "s")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret", time.Hour).Validate(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenIssuerRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", -time.Minute)
	token, err := issuer.Generate("owner-1", "a@b.c", "s")
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}
