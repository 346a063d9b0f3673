// internal/services/auth_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/catalog-manager/internal/config"
	"github.com/javajoker/catalog-manager/internal/utils"
)

func TestAuthService_IssueToken(t *testing.T) {
	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)

	s := NewAuthService(config.AuthConfig{
		Enabled:           true,
		JWTSecret:         "service-test-secret",
		AdminPasswordHash: hash,
		TokenTTL:          2,
	})
	assert.True(t, s.Enabled())

	resp, err := s.IssueToken(&TokenRequest{Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 7200, resp.ExpiresIn)

	claims, err := utils.ValidateJWT(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)

	_, err = s.IssueToken(&TokenRequest{Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.IssueToken(&TokenRequest{})
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestAuthService_NoPasswordConfigured(t *testing.T) {
	s := NewAuthService(config.AuthConfig{JWTSecret: "x"})
	assert.False(t, s.Enabled())

	_, err := s.IssueToken(&TokenRequest{Password: "anything"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
