// internal/pkg/auth/auth_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimezu-studio/storefront-backend/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "kimezu-storefront"
	cfg.JWT.Secret = "test-secret-key-that-is-long-enough-123"
	cfg.JWT.AccessTokenExpiry = 15 * time.Minute
	cfg.JWT.RefreshTokenExpiry = 7 * 24 * time.Hour
	cfg.Security.BcryptCost = 4 // minimum cost, keeps tests fast
	return cfg
}

func TestAccessTokenRoundTrip(t *testing.T) {
	j := NewJWTManager(testConfig())

	token, err := j.GenerateAccessToken(42, "laura@example.com", false)
	require.NoError(t, err)

	claims, err := j.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "laura@example.com", claims.Email)
	assert.False(t, claims.IsAdmin)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestRefreshTokenRejectedAsAccess(t *testing.T) {
	j := NewJWTManager(testConfig())

	token, err := j.GenerateRefreshToken(42, "laura@example.com")
	require.NoError(t, err)

	_, err = j.ValidateAccessToken(token)
	assert.Error(t, err)

	claims, err := j.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	j := NewJWTManager(testConfig())
	token, err := j.GenerateAccessToken(1, "a@b.co", false)
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "another-secret-key-that-is-long-enough"
	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashAndVerify(t *testing.T) {
	p := NewPasswordManager(testConfig())

	hash, err := p.HashPassword("velas2024")
	require.NoError(t, err)
	assert.NotEqual(t, "velas2024", hash)

	assert.NoError(t, p.VerifyPassword("velas2024", hash))
	assert.Error(t, p.VerifyPassword("velas2025", hash))
}

func TestValidatePassword(t *testing.T) {
	p := NewPasswordManager(testConfig())

	assert.Error(t, p.ValidatePassword("short1"))
	assert.Error(t, p.ValidatePassword("onlyletters"))
	assert.Error(t, p.ValidatePassword("12345678"))
	assert.NoError(t, p.ValidatePassword("velas2024"))
}
