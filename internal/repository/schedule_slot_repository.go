package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/msa-adp-api/internal/models"
)

const scheduleSlotColumns = "id, org_id, weekday_iso, start_time, duration_minutes, capacity, course_code_id, section, room, is_primary, active, created_at, updated_at"

// scheduleSlotRow mirrors the schedule_slots table, which still stores the
// legacy 1=Monday..7=Sunday weekday numbering and HH:MM time strings.
// Conversion to canonical types happens here and nowhere else.
type scheduleSlotRow struct {
	ID              string    `db:"id"`
	OrgID           string    `db:"org_id"`
	WeekdayISO      int       `db:"weekday_iso"`
	StartTime       string    `db:"start_time"`
	DurationMinutes int       `db:"duration_minutes"`
	Capacity        int       `db:"capacity"`
	CourseCodeID    *string   `db:"course_code_id"`
	Section         *string   `db:"section"`
	Room            *string   `db:"room"`
	Primary         bool      `db:"is_primary"`
	Active          bool      `db:"active"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (row scheduleSlotRow) toModel() (models.ScheduleSlot, error) {
	weekday, err := models.WeekdayFromISO(row.WeekdayISO)
	if err != nil {
		return models.ScheduleSlot{}, fmt.Errorf("slot %s: %w", row.ID, err)
	}
	start, err := models.ParseTimeOfDay(row.StartTime)
	if err != nil {
		return models.ScheduleSlot{}, fmt.Errorf("slot %s: %w", row.ID, err)
	}
	return models.ScheduleSlot{
		ID:              row.ID,
		OrgID:           row.OrgID,
		Weekday:         weekday,
		StartTime:       start,
		DurationMinutes: row.DurationMinutes,
		Capacity:        row.Capacity,
		CourseCodeID:    row.CourseCodeID,
		Section:         row.Section,
		Room:            row.Room,
		Primary:         row.Primary,
		Active:          row.Active,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}

func slotRowFromModel(slot *models.ScheduleSlot) scheduleSlotRow {
	return scheduleSlotRow{
		ID:              slot.ID,
		OrgID:           slot.OrgID,
		WeekdayISO:      slot.Weekday.ISO(),
		StartTime:       slot.StartTime.String(),
		DurationMinutes: slot.DurationMinutes,
		Capacity:        slot.Capacity,
		CourseCodeID:    slot.CourseCodeID,
		Section:         slot.Section,
		Room:            slot.Room,
		Primary:         slot.Primary,
		Active:          slot.Active,
		CreatedAt:       slot.CreatedAt,
		UpdatedAt:       slot.UpdatedAt,
	}
}

// ScheduleSlotRepository provides persistence for recurring schedule slots.
type ScheduleSlotRepository struct {
	db *sqlx.DB
}

// NewScheduleSlotRepository creates a new schedule slot repository.
func NewScheduleSlotRepository(db *sqlx.DB) *ScheduleSlotRepository {
	return &ScheduleSlotRepository{db: db}
}

// List returns slots with optional filtering and pagination.
func (r *ScheduleSlotRepository) List(ctx context.Context, filter models.ScheduleSlotFilter) ([]models.ScheduleSlot, int, error) {
	base := "FROM schedule_slots WHERE org_id = $1"
	args := []interface{}{filter.OrgID}

	if filter.Weekday != nil {
		base += fmt.Sprintf(" AND weekday_iso = $%d", len(args)+1)
		args = append(args, filter.Weekday.ISO())
	}
	if filter.CourseCodeID != "" {
		base += fmt.Sprintf(" AND course_code_id = $%d", len(args)+1)
		args = append(args, filter.CourseCodeID)
	}
	if filter.ActiveOnly {
		base += " AND active = TRUE"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY weekday_iso ASC, start_time ASC LIMIT %d OFFSET %d", scheduleSlotColumns, base, size, offset)
	var rows []scheduleSlotRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list schedule slots: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count schedule slots: %w", err)
	}

	slots := make([]models.ScheduleSlot, 0, len(rows))
	for _, row := range rows {
		slot, err := row.toModel()
		if err != nil {
			return nil, 0, err
		}
		slots = append(slots, slot)
	}
	return slots, total, nil
}

// ListActive returns every active slot in the org for reconciliation and
// conflict validation.
func (r *ScheduleSlotRepository) ListActive(ctx context.Context, orgID string) ([]models.ScheduleSlot, error) {
	query := fmt.Sprintf("SELECT %s FROM schedule_slots WHERE org_id = $1 AND active = TRUE ORDER BY weekday_iso ASC, start_time ASC", scheduleSlotColumns)
	var rows []scheduleSlotRow
	if err := r.db.SelectContext(ctx, &rows, query, orgID); err != nil {
		return nil, fmt.Errorf("list active schedule slots: %w", err)
	}
	slots := make([]models.ScheduleSlot, 0, len(rows))
	for _, row := range rows {
		slot, err := row.toModel()
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// FindByID loads a slot scoped to the org.
func (r *ScheduleSlotRepository) FindByID(ctx context.Context, orgID, id string) (*models.ScheduleSlot, error) {
	query := fmt.Sprintf("SELECT %s FROM schedule_slots WHERE org_id = $1 AND id = $2", scheduleSlotColumns)
	var row scheduleSlotRow
	if err := r.db.GetContext(ctx, &row, query, orgID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find schedule slot: %w", err)
	}
	slot, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create stores a new slot record.
func (r *ScheduleSlotRepository) Create(ctx context.Context, slot *models.ScheduleSlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	slot.CreatedAt = now
	slot.UpdatedAt = now

	row := slotRowFromModel(slot)
	const query = `INSERT INTO schedule_slots (id, org_id, weekday_iso, start_time, duration_minutes, capacity, course_code_id, section, room, is_primary, active, created_at, updated_at) VALUES (:id, :org_id, :weekday_iso, :start_time, :duration_minutes, :capacity, :course_code_id, :section, :room, :is_primary, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, &row); err != nil {
		return fmt.Errorf("create schedule slot: %w", err)
	}
	return nil
}

// Update modifies a slot record.
func (r *ScheduleSlotRepository) Update(ctx context.Context, slot *models.ScheduleSlot) error {
	slot.UpdatedAt = time.Now().UTC()
	row := slotRowFromModel(slot)
	const query = `UPDATE schedule_slots SET weekday_iso = :weekday_iso, start_time = :start_time, duration_minutes = :duration_minutes, capacity = :capacity, course_code_id = :course_code_id, section = :section, room = :room, is_primary = :is_primary, updated_at = :updated_at WHERE org_id = :org_id AND id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, &row); err != nil {
		return fmt.Errorf("update schedule slot: %w", err)
	}
	return nil
}

// SetActive flips the active flag.
func (r *ScheduleSlotRepository) SetActive(ctx context.Context, orgID, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE schedule_slots SET active = $1, updated_at = $2 WHERE org_id = $3 AND id = $4`, active, time.Now().UTC(), orgID, id)
	if err != nil {
		return fmt.Errorf("toggle schedule slot: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a slot by id.
func (r *ScheduleSlotRepository) Delete(ctx context.Context, orgID, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedule_slots WHERE org_id = $1 AND id = $2`, orgID, id); err != nil {
		return fmt.Errorf("delete schedule slot: %w", err)
	}
	return nil
}
