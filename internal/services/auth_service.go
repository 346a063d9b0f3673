// internal/services/auth_service.go
package services

import (
	"errors"

	"github.com/javajoker/catalog-manager/internal/config"
	"github.com/javajoker/catalog-manager/internal/utils"
)

const RoleAdmin = "admin"

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	cfg config.AuthConfig
}

type TokenRequest struct {
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
}

func NewAuthService(cfg config.AuthConfig) *AuthService {
	utils.SetJWTSecret(cfg.JWTSecret)
	return &AuthService{cfg: cfg}
}

func (s *AuthService) Enabled() bool {
	return s.cfg.Enabled
}

// IssueToken exchanges the admin password for a bearer token.
func (s *AuthService) IssueToken(req *TokenRequest) (*TokenResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Err: err}
	}

	if s.cfg.AdminPasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := utils.CheckPassword(s.cfg.AdminPasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(RoleAdmin, s.cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.TokenTTL * 3600,
	}, nil
}
