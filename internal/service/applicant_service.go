package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/edule/internal/model"
	appErr "github.com/xxxsen/edule/internal/pkg/errors"
)

const AlreadyAppliedMessage = "You have already applied"

type ApplicantService struct {
	applicants ApplicantStore
}

func NewApplicantService(applicants ApplicantStore) *ApplicantService {
	return &ApplicantService{applicants: applicants}
}

// Apply stores an application unless the same email already applied to the
// same subject. The lookup and the insert are separate round trips, so two
// concurrent identical applications can both land unless the applicants
// collection carries the unique (email, subjectId) index.
func (s *ApplicantService) Apply(ctx context.Context, doc model.Document) (*model.InsertResult, error) {
	email, ok := doc.StringField(model.KeyEmail)
	if !ok || email == "" {
		return nil, appErr.ErrInvalid
	}
	subjectID, ok := doc.StringField(model.KeySubjectID)
	if !ok || subjectID == "" {
		return nil, appErr.ErrInvalid
	}
	existing, err := s.applicants.FindByEmailAndSubject(ctx, email, subjectID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, appErr.ErrAlreadyApplied
	}
	id, err := s.applicants.Insert(ctx, doc)
	if err != nil {
		if appErr.IsConflict(err) {
			logutil.GetLogger(ctx).Info("duplicate application rejected by index",
				zap.String("email", email),
				zap.String("subject_id", subjectID),
			)
			return nil, appErr.ErrAlreadyApplied
		}
		return nil, err
	}
	return insertResult(id), nil
}

func (s *ApplicantService) List(ctx context.Context) ([]model.Document, error) {
	return s.applicants.List(ctx)
}
