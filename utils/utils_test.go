package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrencyVND(t *testing.T) {
	assert.Equal(t, "0đ", FormatCurrencyVND(0))
	assert.Equal(t, "950đ", FormatCurrencyVND(950))
	assert.Equal(t, "315.000đ", FormatCurrencyVND(315000))
	assert.Equal(t, "1.000.000đ", FormatCurrencyVND(1e6))
	assert.Equal(t, "-45.000đ", FormatCurrencyVND(-45000))
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, nil)

	token, expiresAt, err := m.GenerateToken("admin", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("one", time.Hour, nil).GenerateToken("admin", "admin")
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour, nil).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute, nil)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _, err := m.GenerateToken("admin", "admin")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevokeBlacklistsToken(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, nil)
	token, _, err := m.GenerateToken("admin", "admin")
	require.NoError(t, err)

	require.NoError(t, m.Revoke(token))
	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, m.Revoke(token), ErrInvalidToken)
}

func TestBlacklistCleanup(t *testing.T) {
	b := NewTokenBlacklist()
	b.Add("old", time.Now().Add(-time.Minute))
	b.Add("fresh", time.Now().Add(time.Hour))

	assert.False(t, b.IsBlacklisted("old"))
	assert.True(t, b.IsBlacklisted("fresh"))
	assert.Equal(t, 1, b.Cleanup(time.Now()))
	assert.True(t, b.IsBlacklisted("fresh"))
}
