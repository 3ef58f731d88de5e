// Package testutil holds in-memory stand-ins for the Mongo repositories.
package testutil

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xxxsen/edule/internal/model"
	appErr "github.com/xxxsen/edule/internal/pkg/errors"
)

// UserStore keeps users in insertion order. Setting Err makes every call fail.
type UserStore struct {
	mu    sync.Mutex
	users []model.User
	Err   error
}

func NewUserStore() *UserStore {
	return &UserStore{}
}

func (s *UserStore) Create(_ context.Context, user *model.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return primitive.NilObjectID, s.Err
	}
	u := *user
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users = append(s.users, u)
	return u.ID, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return s.first(func(u *model.User) bool { return u.Email == email })
}

func (s *UserStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	return s.first(func(u *model.User) bool { return u.ID == id })
}

func (s *UserStore) List(_ context.Context) ([]model.User, error) {
	return s.filter(func(*model.User) bool { return true })
}

func (s *UserStore) ListByEmail(_ context.Context, email string) ([]model.User, error) {
	return s.filter(func(u *model.User) bool { return u.Email == email })
}

func (s *UserStore) UpdateByEmail(_ context.Context, email string, fields map[string]string) (*model.UpdateResult, error) {
	return s.update(func(u *model.User) bool { return u.Email == email }, fields)
}

func (s *UserStore) UpdateByID(_ context.Context, id primitive.ObjectID, fields map[string]string) (*model.UpdateResult, error) {
	return s.update(func(u *model.User) bool { return u.ID == id }, fields)
}

func (s *UserStore) first(match func(*model.User) bool) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.users {
		if match(&s.users[i]) {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (s *UserStore) filter(match func(*model.User) bool) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []model.User{}
	for i := range s.users {
		if match(&s.users[i]) {
			out = append(out, s.users[i])
		}
	}
	return out, nil
}

// update touches the first match only, like updateOne.
func (s *UserStore) update(match func(*model.User) bool, fields map[string]string) (*model.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	res := &model.UpdateResult{Acknowledged: true}
	for i := range s.users {
		u := &s.users[i]
		if !match(u) {
			continue
		}
		res.MatchedCount = 1
		before := *u
		for k, v := range fields {
			setProfileField(u, k, v)
		}
		if *u != before {
			res.ModifiedCount = 1
		}
		break
	}
	return res, nil
}

func setProfileField(u *model.User, field, value string) {
	switch field {
	case model.FieldName:
		u.Name = value
	case model.FieldLocation:
		u.Location = value
	case model.FieldPhone:
		u.Phone = value
	case model.FieldCity:
		u.City = value
	case model.FieldStudy:
		u.Study = value
	}
}

// DocumentStore backs tuitions, connects and applicants. With UniqueKeys set,
// Insert rejects a second document carrying the same values for those keys.
type DocumentStore struct {
	mu         sync.Mutex
	docs       []model.Document
	UniqueKeys []string
	Err        error
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{}
}

func (s *DocumentStore) Insert(_ context.Context, doc model.Document) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return primitive.NilObjectID, s.Err
	}
	if len(s.UniqueKeys) > 0 {
		for _, existing := range s.docs {
			if sameKeys(existing, doc, s.UniqueKeys) {
				return primitive.NilObjectID, appErr.ErrConflict
			}
		}
	}
	stored := doc.WithoutID()
	id := primitive.NewObjectID()
	stored[model.KeyID] = id
	s.docs = append(s.docs, stored)
	return id, nil
}

func (s *DocumentStore) List(_ context.Context) ([]model.Document, error) {
	return s.filter(func(model.Document) bool { return true })
}

func (s *DocumentStore) FindByID(_ context.Context, id primitive.ObjectID) ([]model.Document, error) {
	return s.filter(func(d model.Document) bool { return d[model.KeyID] == id })
}

func (s *DocumentStore) FindByEmailAndSubject(_ context.Context, email, subjectID string) ([]model.Document, error) {
	return s.filter(func(d model.Document) bool {
		return d[model.KeyEmail] == email && d[model.KeySubjectID] == subjectID
	})
}

// Len reports how many documents were stored.
func (s *DocumentStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

func (s *DocumentStore) filter(match func(model.Document) bool) ([]model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []model.Document{}
	for _, d := range s.docs {
		if match(d) {
			cp := make(model.Document, len(d))
			for k, v := range d {
				cp[k] = v
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

func sameKeys(a, b model.Document, keys []string) bool {
	for _, k := range keys {
		if a[k] != b[k] {
			return false
		}
	}
	return true
}
