package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/edule/internal/pkg/jwt"
	"github.com/xxxsen/edule/internal/pkg/response"
)

const ContextEmailKey = "decoded_email"

// JWTAuth rejects requests without a valid bearer token and stores the
// token's email on the context.
func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Forbidden(c)
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Forbidden(c)
			return
		}
		claims, err := jwt.ParseToken(strings.TrimSpace(parts[1]), secret)
		if err != nil {
			response.Forbidden(c)
			return
		}
		c.Set(ContextEmailKey, claims.Email)
		c.Next()
	}
}

func DecodedEmail(c *gin.Context) string {
	return c.GetString(ContextEmailKey)
}
