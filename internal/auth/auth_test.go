package auth

import (
	"testing"

	"pg-backend/internal/config"
	"pg-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "pg-backend-test"
	return cfg
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, VerifyPassword(hash, "secret123"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := NewJWTManager(testConfig("test-secret"))

	user := &models.User{ID: 42, Email: "tenant@example.com", Role: models.RoleTenant}
	token, err := m.GenerateToken(user)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "tenant@example.com", claims.Email)
	assert.Equal(t, models.RoleTenant, claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := NewJWTManager(testConfig("secret-a")).GenerateToken(
		&models.User{ID: 1, Email: "a@example.com", Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = NewJWTManager(testConfig("secret-b")).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := NewJWTManager(testConfig("secret")).ValidateToken("not-a-token")
	assert.Error(t, err)
}
