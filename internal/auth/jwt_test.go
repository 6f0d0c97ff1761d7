package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTM() *TokenManager {
	return NewTokenManager("acc-secret", "ref-secret", 15*time.Minute, 24*time.Hour)
}

func TestGenerateAndParsePair(t *testing.T) {
	tm := newTM()
	pair, err := tm.GeneratePair("u-1", "brand")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, isRefresh, err := tm.ParseAny(pair.AccessToken)
	require.NoError(t, err)
	assert.False(t, isRefresh)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "brand", claims.Role)
	assert.Equal(t, "access", claims.Type)

	claims, isRefresh, err = tm.ParseAny(pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, isRefresh)
	assert.Equal(t, "refresh", claims.Type)
}

func TestParseRejectsGarbage(t *testing.T) {
	tm := newTM()
	_, _, err := tm.ParseAny("not.a.token")
	require.Error(t, err)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	other := NewTokenManager("different", "different", time.Minute, time.Minute)
	pair, err := other.GeneratePair("u-1", "creator")
	require.NoError(t, err)

	tm := newTM()
	_, _, err = tm.ParseAny(pair.AccessToken)
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	tm := NewTokenManager("acc-secret", "ref-secret", -time.Minute, -time.Minute)
	pair, err := tm.GeneratePair("u-1", "creator")
	require.NoError(t, err)

	_, _, err = tm.ParseAny(pair.AccessToken)
	require.Error(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, VerifyPassword("hunter22", hash))
	assert.Error(t, VerifyPassword("hunter23", hash))
}
