// internal/handlers/auth.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/catalog-manager/internal/i18n"
	"github.com/javajoker/catalog-manager/internal/services"
	"github.com/javajoker/catalog-manager/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /auth/token
func (h *AuthHandler) IssueToken(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	resp, err := h.authService.IssueToken(&req)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			utils.ValidationErrorResponse(c, "", utils.GetValidationErrors(validationErr.Err))
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyAuthTokenIssued),
		"token":      resp.AccessToken,
		"token_type": resp.TokenType,
		"expires_in": resp.ExpiresIn,
	})
}
