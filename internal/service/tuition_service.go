package service

import (
	"context"

	"github.com/xxxsen/edule/internal/model"
	appErr "github.com/xxxsen/edule/internal/pkg/errors"
)

type TuitionService struct {
	tuitions DocumentStore
}

func NewTuitionService(tuitions DocumentStore) *TuitionService {
	return &TuitionService{tuitions: tuitions}
}

func (s *TuitionService) Create(ctx context.Context, doc model.Document) (*model.InsertResult, error) {
	if len(doc.WithoutID()) == 0 {
		return nil, appErr.ErrInvalid
	}
	id, err := s.tuitions.Insert(ctx, doc)
	if err != nil {
		return nil, err
	}
	return insertResult(id), nil
}

func (s *TuitionService) List(ctx context.Context) ([]model.Document, error) {
	return s.tuitions.List(ctx)
}

func (s *TuitionService) Get(ctx context.Context, rawID string) ([]model.Document, error) {
	id, err := model.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	return s.tuitions.FindByID(ctx, id)
}
