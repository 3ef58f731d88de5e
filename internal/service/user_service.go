package service

import (
	"context"
	"strings"

	"github.com/xxxsen/edule/internal/model"
	appErr "github.com/xxxsen/edule/internal/pkg/errors"
)

type UserService struct {
	users        UserStore
	updateFields map[string]struct{}
}

// NewUserService restricts profile updates to updateFields.
func NewUserService(users UserStore, updateFields []string) *UserService {
	allowed := make(map[string]struct{}, len(updateFields))
	for _, f := range updateFields {
		allowed[f] = struct{}{}
	}
	return &UserService{users: users, updateFields: allowed}
}

func (s *UserService) Create(ctx context.Context, user *model.User) (*model.InsertResult, error) {
	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return insertResult(id), nil
}

// HasRole reports whether email belongs to a user holding role. An unknown
// email simply does not hold any role.
func (s *UserService) HasRole(ctx context.Context, email, role string) (bool, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return user.HasRole(role), nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) ListByEmail(ctx context.Context, email string) ([]model.User, error) {
	return s.users.ListByEmail(ctx, email)
}

// GetByID returns nil without error when no user has the id.
func (s *UserService) GetByID(ctx context.Context, rawID string) (*model.User, error) {
	id, err := model.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile sets the allowed fields present in fields on the user named by
// key. A key containing "@" is an email; otherwise a key that parses as an
// object id selects by id, and anything else is matched as an email.
func (s *UserService) UpdateProfile(ctx context.Context, key string, fields map[string]string) (*model.UpdateResult, error) {
	set := make(map[string]string, len(fields))
	for k, v := range fields {
		if _, ok := s.updateFields[k]; ok {
			set[k] = v
		}
	}
	if len(set) == 0 || key == "" {
		return nil, appErr.ErrInvalid
	}
	if !strings.Contains(key, "@") {
		if id, err := model.ParseID(key); err == nil {
			return s.users.UpdateByID(ctx, id, set)
		}
	}
	return s.users.UpdateByEmail(ctx, key, set)
}
