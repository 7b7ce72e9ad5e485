package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/msa-adp-api/internal/models"
	appErrors "github.com/noah-isme/msa-adp-api/pkg/errors"
)

type teacherLister interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error)
}

// TeacherService exposes the read-only teacher directory used by the
// admin console when assigning course codes.
type TeacherService struct {
	teachers teacherLister
	logger   *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(teachers teacherLister, logger *zap.Logger) *TeacherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{teachers: teachers, logger: logger}
}

// List returns teachers for the organization, optionally restricted to
// active ones or filtered by name/instrument search.
func (s *TeacherService) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error) {
	items, err := s.teachers.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list teachers")
	}
	return items, nil
}
