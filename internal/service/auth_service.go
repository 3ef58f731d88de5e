package service

import (
	"context"
	"time"

	appErr "github.com/xxxsen/edule/internal/pkg/errors"
	"github.com/xxxsen/edule/internal/pkg/jwt"
)

type AuthService struct {
	users     UserStore
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users UserStore, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl}
}

// IssueToken signs a token for a registered email. Unknown emails get
// ErrForbidden.
func (s *AuthService) IssueToken(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", appErr.ErrForbidden
	}
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if appErr.IsNotFound(err) {
			return "", appErr.ErrForbidden
		}
		return "", err
	}
	return jwt.GenerateToken(email, s.jwtSecret, s.jwtTTL)
}
