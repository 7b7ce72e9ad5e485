package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/msa-adp-api/internal/models"
)

// TeacherRepository reads the teacher roster.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository creates a new teacher repository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns teachers with optional filtering.
func (r *TeacherRepository) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, error) {
	base := "SELECT id, org_id, full_name, instrument, active, created_at FROM teachers WHERE org_id = $1"
	args := []interface{}{filter.OrgID}

	if filter.ActiveOnly {
		base += " AND active = TRUE"
	}
	if filter.Search != "" {
		base += fmt.Sprintf(" AND full_name ILIKE $%d", len(args)+1)
		args = append(args, "%"+strings.TrimSpace(filter.Search)+"%")
	}
	base += " ORDER BY full_name ASC"

	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, base, args...); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// MapByID returns the roster indexed by teacher id.
func (r *TeacherRepository) MapByID(ctx context.Context, orgID string) (map[string]models.Teacher, error) {
	teachers, err := r.List(ctx, models.TeacherFilter{OrgID: orgID})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Teacher, len(teachers))
	for _, teacher := range teachers {
		byID[teacher.ID] = teacher
	}
	return byID, nil
}
