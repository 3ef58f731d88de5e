package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appErr "github.com/xxxsen/edule/internal/pkg/errors"
	"github.com/xxxsen/edule/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// IssueToken answers unknown emails with 403 and an empty token rather than
// the usual forbidden message; clients key off the accessToken field.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	token, err := h.auth.IssueToken(c.Request.Context(), email)
	if errors.Is(err, appErr.ErrForbidden) {
		c.JSON(http.StatusForbidden, tokenResponse{AccessToken: ""})
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{AccessToken: token})
}
