package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/edule/internal/pkg/response"
)

type RoleChecker interface {
	HasRole(ctx context.Context, email, role string) (bool, error)
}

// RequireRole must run after JWTAuth. It reads the caller's user record on
// every request.
func RequireRole(checker RoleChecker, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := DecodedEmail(c)
		if email == "" {
			response.Forbidden(c)
			return
		}
		ok, err := checker.HasRole(c.Request.Context(), email, role)
		if err != nil {
			logutil.GetLogger(c.Request.Context()).Error("role lookup failed",
				zap.String("email", email),
				zap.String("role", role),
				zap.Error(err),
			)
			response.Error(c, http.StatusInternalServerError, "internal error")
			c.Abort()
			return
		}
		if !ok {
			response.Forbidden(c)
			return
		}
		c.Next()
	}
}
