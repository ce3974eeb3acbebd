package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	svc := NewService("test-secret", time.Hour, "fatigue-monitor")

	token, err := svc.GenerateToken(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "fatigue-monitor", claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewService("test-secret", time.Hour, "")
	svc.duration = -time.Hour

	token, err := svc.GenerateToken(1, "bob")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewService("secret-one", time.Hour, "")
	verifier := NewService("secret-two", time.Hour, "")

	token, err := issuer.GenerateToken(1, "bob")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewService("test-secret", time.Hour, "")

	for _, token := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		_, err := svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestNewService_Defaults(t *testing.T) {
	svc := NewService("secret", 0, "")

	assert.Equal(t, 24*time.Hour, svc.TokenDuration())
	assert.Equal(t, "fatigue-monitor", svc.issuer)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", hash)

	assert.True(t, CheckPassword("Sup3rSecret", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
	assert.False(t, CheckPassword("Sup3rSecret", "not-a-hash"))
}
