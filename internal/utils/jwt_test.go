// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test_secret")
	userID := uuid.New()

	token, err := GenerateJWT(userID, "merchant1", "MERCHANT", 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "merchant1", claims.Username)
	assert.Equal(t, "MERCHANT", claims.Role)
	assert.Equal(t, "hotelist", claims.Issuer)
}

func TestValidateJWTRejectsBadTokens(t *testing.T) {
	SetJWTSecret("test_secret")

	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)

	// Token signed with a different secret.
	token, err := GenerateJWT(uuid.New(), "merchant1", "MERCHANT", 1)
	require.NoError(t, err)
	SetJWTSecret("another_secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
	SetJWTSecret("test_secret")
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	SetJWTSecret("test_secret")

	token, err := GenerateJWT(uuid.New(), "merchant1", "MERCHANT", -1)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}
