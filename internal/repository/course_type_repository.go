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

const courseTypeColumns = "id, org_id, name, min_age, max_age, duration_minutes, capacity, difficulty_tier, pricing_model, trial_limit, packages, trial_bundles, active, display_order, created_at, updated_at"

// CourseTypeRepository provides persistence for course types.
type CourseTypeRepository struct {
	db *sqlx.DB
}

// NewCourseTypeRepository creates a new course type repository.
func NewCourseTypeRepository(db *sqlx.DB) *CourseTypeRepository {
	return &CourseTypeRepository{db: db}
}

// List returns course types for an org ordered by display_order then created_at.
func (r *CourseTypeRepository) List(ctx context.Context, filter models.CourseTypeFilter) ([]models.CourseType, int, error) {
	base := "FROM course_types WHERE org_id = $1"
	args := []interface{}{filter.OrgID}

	if filter.ActiveOnly {
		base += " AND active = TRUE"
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY display_order ASC, created_at ASC LIMIT %d OFFSET %d", courseTypeColumns, base, size, offset)
	var items []models.CourseType
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list course types: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count course types: %w", err)
	}

	return items, total, nil
}

// FindByID loads a course type scoped to the org.
func (r *CourseTypeRepository) FindByID(ctx context.Context, orgID, id string) (*models.CourseType, error) {
	query := fmt.Sprintf("SELECT %s FROM course_types WHERE org_id = $1 AND id = $2", courseTypeColumns)
	var item models.CourseType
	if err := r.db.GetContext(ctx, &item, query, orgID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find course type: %w", err)
	}
	return &item, nil
}

// FindByName checks for an existing course type with the same name, used for
// duplicate detection before writes.
func (r *CourseTypeRepository) FindByName(ctx context.Context, orgID, name string) (*models.CourseType, error) {
	query := fmt.Sprintf("SELECT %s FROM course_types WHERE org_id = $1 AND LOWER(name) = LOWER($2)", courseTypeColumns)
	var item models.CourseType
	if err := r.db.GetContext(ctx, &item, query, orgID, strings.TrimSpace(name)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find course type by name: %w", err)
	}
	return &item, nil
}

// Create stores a new course type record.
func (r *CourseTypeRepository) Create(ctx context.Context, item *models.CourseType) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	const query = `INSERT INTO course_types (id, org_id, name, min_age, max_age, duration_minutes, capacity, difficulty_tier, pricing_model, trial_limit, packages, trial_bundles, active, display_order, created_at, updated_at) VALUES (:id, :org_id, :name, :min_age, :max_age, :duration_minutes, :capacity, :difficulty_tier, :pricing_model, :trial_limit, :packages, :trial_bundles, :active, :display_order, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create course type: %w", err)
	}
	return nil
}

// Update modifies a course type record.
func (r *CourseTypeRepository) Update(ctx context.Context, item *models.CourseType) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE course_types SET name = :name, min_age = :min_age, max_age = :max_age, duration_minutes = :duration_minutes, capacity = :capacity, difficulty_tier = :difficulty_tier, pricing_model = :pricing_model, trial_limit = :trial_limit, packages = :packages, trial_bundles = :trial_bundles, display_order = :display_order, updated_at = :updated_at WHERE org_id = :org_id AND id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("update course type: %w", err)
	}
	return nil
}

// SetActive flips the active flag. Course codes under the type are left
// untouched; deactivation hides the type from new bookings only.
func (r *CourseTypeRepository) SetActive(ctx context.Context, orgID, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE course_types SET active = $1, updated_at = $2 WHERE org_id = $3 AND id = $4`, active, time.Now().UTC(), orgID, id)
	if err != nil {
		return fmt.Errorf("toggle course type: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Options returns the lightweight id/name pairs for active types.
func (r *CourseTypeRepository) Options(ctx context.Context, orgID string) ([]models.CourseTypeOption, error) {
	const query = `SELECT id, name FROM course_types WHERE org_id = $1 AND active = TRUE ORDER BY display_order ASC, created_at ASC`
	var options []models.CourseTypeOption
	if err := r.db.SelectContext(ctx, &options, query, orgID); err != nil {
		return nil, fmt.Errorf("list course type options: %w", err)
	}
	return options, nil
}
