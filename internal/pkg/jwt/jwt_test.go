package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("u-1", "alice", "BIW")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, Claims{UserID: "u-1", Username: "alice", Department: "BIW"}, claims)
}

func TestValidateAccessTokenRejects(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h")
	other := NewJWTService("another-secret", "1h")

	token, _, err := other.GenerateAccessToken("u-1", "alice", "BIW")
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err, "wrong signature")

	expired := NewJWTService("test-secret-key-for-jwt", "-1h")
	token, _, err = expired.GenerateAccessToken("u-1", "alice", "BIW")
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err, "expired")

	_, tokenString, err := svc.JWTAuth().Encode(map[string]interface{}{"username": "alice", "department": "BIW", "type": "refresh"})
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(tokenString)
	assert.Error(t, err, "wrong type")
}

func TestClaimsFromMap(t *testing.T) {
	_, err := ClaimsFromMap(map[string]interface{}{"type": "access", "username": "alice"})
	assert.Error(t, err)

	claims, err := ClaimsFromMap(map[string]interface{}{"type": "access", "username": "alice", "department": "Paint"})
	require.NoError(t, err)
	assert.Equal(t, "Paint", claims.Department)
}
