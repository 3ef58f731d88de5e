package service

import (
	"context"

	"github.com/xxxsen/edule/internal/model"
	appErr "github.com/xxxsen/edule/internal/pkg/errors"
)

type ConnectService struct {
	connects DocumentInserter
}

func NewConnectService(connects DocumentInserter) *ConnectService {
	return &ConnectService{connects: connects}
}

func (s *ConnectService) Create(ctx context.Context, doc model.Document) (*model.InsertResult, error) {
	if len(doc.WithoutID()) == 0 {
		return nil, appErr.ErrInvalid
	}
	id, err := s.connects.Insert(ctx, doc)
	if err != nil {
		return nil, err
	}
	return insertResult(id), nil
}
