package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/msa-adp-api/internal/models"
)

const courseCodeColumns = "id, org_id, course_type_id, code, name, description, capacity, teacher_id, room, active, display_order, created_at, updated_at"

// CourseCodeRepository provides persistence for course codes.
type CourseCodeRepository struct {
	db *sqlx.DB
}

// NewCourseCodeRepository creates a new course code repository.
func NewCourseCodeRepository(db *sqlx.DB) *CourseCodeRepository {
	return &CourseCodeRepository{db: db}
}

// List returns course codes with optional filtering and pagination.
func (r *CourseCodeRepository) List(ctx context.Context, filter models.CourseCodeFilter) ([]models.CourseCode, int, error) {
	base := "FROM course_codes WHERE org_id = $1"
	args := []interface{}{filter.OrgID}

	if filter.CourseTypeID != "" {
		base += fmt.Sprintf(" AND course_type_id = $%d", len(args)+1)
		args = append(args, filter.CourseTypeID)
	}
	if filter.TeacherID != "" {
		base += fmt.Sprintf(" AND teacher_id = $%d", len(args)+1)
		args = append(args, filter.TeacherID)
	}
	if filter.ActiveOnly {
		base += " AND active = TRUE"
	}
	if filter.Search != "" {
		base += fmt.Sprintf(" AND (code ILIKE $%d OR name ILIKE $%d)", len(args)+1, len(args)+1)
		args = append(args, "%"+strings.TrimSpace(filter.Search)+"%")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY display_order ASC, created_at ASC LIMIT %d OFFSET %d", courseCodeColumns, base, size, offset)
	var items []models.CourseCode
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list course codes: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count course codes: %w", err)
	}

	return items, total, nil
}

// ListAll returns every course code in the org, used by the reconciliation
// pipeline which needs inactive codes for display.
func (r *CourseCodeRepository) ListAll(ctx context.Context, orgID string) ([]models.CourseCode, error) {
	query := fmt.Sprintf("SELECT %s FROM course_codes WHERE org_id = $1 ORDER BY code ASC", courseCodeColumns)
	var items []models.CourseCode
	if err := r.db.SelectContext(ctx, &items, query, orgID); err != nil {
		return nil, fmt.Errorf("list all course codes: %w", err)
	}
	return items, nil
}

// FindByID loads a course code scoped to the org.
func (r *CourseCodeRepository) FindByID(ctx context.Context, orgID, id string) (*models.CourseCode, error) {
	query := fmt.Sprintf("SELECT %s FROM course_codes WHERE org_id = $1 AND id = $2", courseCodeColumns)
	var item models.CourseCode
	if err := r.db.GetContext(ctx, &item, query, orgID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find course code: %w", err)
	}
	return &item, nil
}

// FindByCode checks for an existing record with the same code string, used
// for duplicate detection before writes.
func (r *CourseCodeRepository) FindByCode(ctx context.Context, orgID, code string) (*models.CourseCode, error) {
	query := fmt.Sprintf("SELECT %s FROM course_codes WHERE org_id = $1 AND LOWER(code) = LOWER($2)", courseCodeColumns)
	var item models.CourseCode
	if err := r.db.GetContext(ctx, &item, query, orgID, strings.TrimSpace(code)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find course code by code: %w", err)
	}
	return &item, nil
}

// Create stores a new course code record.
func (r *CourseCodeRepository) Create(ctx context.Context, item *models.CourseCode) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	const query = `INSERT INTO course_codes (id, org_id, course_type_id, code, name, description, capacity, teacher_id, room, active, display_order, created_at, updated_at) VALUES (:id, :org_id, :course_type_id, :code, :name, :description, :capacity, :teacher_id, :room, :active, :display_order, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create course code: %w", err)
	}
	return nil
}

// Update modifies a course code record.
func (r *CourseCodeRepository) Update(ctx context.Context, item *models.CourseCode) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE course_codes SET course_type_id = :course_type_id, code = :code, name = :name, description = :description, capacity = :capacity, teacher_id = :teacher_id, room = :room, display_order = :display_order, updated_at = :updated_at WHERE org_id = :org_id AND id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("update course code: %w", err)
	}
	return nil
}

// SetActive flips the active flag.
func (r *CourseCodeRepository) SetActive(ctx context.Context, orgID, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE course_codes SET active = $1, updated_at = $2 WHERE org_id = $3 AND id = $4`, active, time.Now().UTC(), orgID, id)
	if err != nil {
		return fmt.Errorf("toggle course code: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Options returns the lightweight id/code/name triples for active codes.
func (r *CourseCodeRepository) Options(ctx context.Context, orgID string) ([]models.CourseCodeOption, error) {
	const query = `SELECT id, code, name FROM course_codes WHERE org_id = $1 AND active = TRUE ORDER BY display_order ASC, created_at ASC`
	var options []models.CourseCodeOption
	if err := r.db.SelectContext(ctx, &options, query, orgID); err != nil {
		return nil, fmt.Errorf("list course code options: %w", err)
	}
	return options, nil
}
