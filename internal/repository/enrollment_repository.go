package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/msa-adp-api/internal/models"
)

// regularEnrollmentRow mirrors the regular_enrollments table. The student
// subsystem stores weekdays 0=Sunday..6=Saturday, already matching the
// canonical convention; only the schedule_slots table carries the legacy
// ISO numbering.
type regularEnrollmentRow struct {
	ID             string    `db:"id"`
	OrgID          string    `db:"org_id"`
	StudentID      string    `db:"student_id"`
	StudentName    string    `db:"student_name"`
	Weekday        int       `db:"weekday"`
	StartTime      string    `db:"start_time"`
	CourseCodeID   *string   `db:"course_code_id"`
	StartDate      time.Time `db:"start_date"`
	PackageLessons *int      `db:"package_lessons"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
}

func (row regularEnrollmentRow) toModel() (models.RegularEnrollment, error) {
	weekday := models.Weekday(row.Weekday)
	if !weekday.Valid() {
		return models.RegularEnrollment{}, fmt.Errorf("enrollment %s: weekday %d out of range [0,6]", row.ID, row.Weekday)
	}
	start, err := models.ParseTimeOfDay(row.StartTime)
	if err != nil {
		return models.RegularEnrollment{}, fmt.Errorf("enrollment %s: %w", row.ID, err)
	}
	return models.RegularEnrollment{
		ID:             row.ID,
		OrgID:          row.OrgID,
		StudentID:      row.StudentID,
		StudentName:    row.StudentName,
		Weekday:        weekday,
		StartTime:      start,
		CourseCodeID:   row.CourseCodeID,
		StartDate:      row.StartDate,
		PackageLessons: row.PackageLessons,
		Status:         models.EnrollmentStatus(row.Status),
		CreatedAt:      row.CreatedAt,
	}, nil
}

// trialEnrollmentRow mirrors the trial_enrollments table.
type trialEnrollmentRow struct {
	ID              string    `db:"id"`
	OrgID           string    `db:"org_id"`
	StudentID       string    `db:"student_id"`
	StudentName     string    `db:"student_name"`
	LessonDate      time.Time `db:"lesson_date"`
	StartTime       string    `db:"start_time"`
	CourseCodeID    *string   `db:"course_code_id"`
	DurationMinutes int       `db:"duration_minutes"`
	CreatedAt       time.Time `db:"created_at"`
}

func (row trialEnrollmentRow) toModel() (models.TrialEnrollment, error) {
	start, err := models.ParseTimeOfDay(row.StartTime)
	if err != nil {
		return models.TrialEnrollment{}, fmt.Errorf("trial %s: %w", row.ID, err)
	}
	return models.TrialEnrollment{
		ID:              row.ID,
		OrgID:           row.OrgID,
		StudentID:       row.StudentID,
		StudentName:     row.StudentName,
		LessonDate:      row.LessonDate,
		StartTime:       start,
		CourseCodeID:    row.CourseCodeID,
		DurationMinutes: row.DurationMinutes,
		CreatedAt:       row.CreatedAt,
	}, nil
}

// EnrollmentRepository reads enrollment data owned by the student-management
// subsystem. This engine never writes to these tables.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository creates a new enrollment repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListRegular returns regular enrollments with optional filtering. The
// table belongs to the student subsystem, so a malformed row is skipped
// instead of failing the whole listing; matching later surfaces affected
// students as unscheduled.
func (r *EnrollmentRepository) ListRegular(ctx context.Context, filter models.EnrollmentFilter) ([]models.RegularEnrollment, error) {
	base := "SELECT id, org_id, student_id, student_name, weekday, start_time, course_code_id, start_date, package_lessons, status, created_at FROM regular_enrollments WHERE org_id = $1"
	args := []interface{}{filter.OrgID}

	if filter.Status != "" {
		base += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, string(filter.Status))
	}
	if filter.Weekday != nil {
		base += fmt.Sprintf(" AND weekday = $%d", len(args)+1)
		args = append(args, int(*filter.Weekday))
	}
	if filter.StudentID != "" {
		base += fmt.Sprintf(" AND student_id = $%d", len(args)+1)
		args = append(args, filter.StudentID)
	}
	base += " ORDER BY weekday ASC, start_time ASC, student_name ASC"

	var rows []regularEnrollmentRow
	if err := r.db.SelectContext(ctx, &rows, base, args...); err != nil {
		return nil, fmt.Errorf("list regular enrollments: %w", err)
	}

	enrollments := make([]models.RegularEnrollment, 0, len(rows))
	for _, row := range rows {
		enrollment, err := row.toModel()
		if err != nil {
			continue
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, nil
}

// ListTrialsBetween returns trial enrollments with lesson dates inside the
// inclusive [from, to] range.
func (r *EnrollmentRepository) ListTrialsBetween(ctx context.Context, orgID string, from, to time.Time) ([]models.TrialEnrollment, error) {
	const query = `SELECT id, org_id, student_id, student_name, lesson_date, start_time, course_code_id, duration_minutes, created_at FROM trial_enrollments WHERE org_id = $1 AND lesson_date >= $2 AND lesson_date <= $3 ORDER BY lesson_date ASC, start_time ASC`
	var rows []trialEnrollmentRow
	if err := r.db.SelectContext(ctx, &rows, query, orgID, from, to); err != nil {
		return nil, fmt.Errorf("list trial enrollments: %w", err)
	}

	trials := make([]models.TrialEnrollment, 0, len(rows))
	for _, row := range rows {
		trial, err := row.toModel()
		if err != nil {
			continue
		}
		trials = append(trials, trial)
	}
	return trials, nil
}
