package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/msa-adp-api/internal/models"
)

// HolidayRepository reads holiday dates maintained by the calendar admin.
type HolidayRepository struct {
	db *sqlx.DB
}

// NewHolidayRepository creates a new holiday repository.
func NewHolidayRepository(db *sqlx.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// ListBetween returns holidays inside the inclusive [from, to] range.
func (r *HolidayRepository) ListBetween(ctx context.Context, orgID string, from, to time.Time) ([]models.Holiday, error) {
	const query = `SELECT id, org_id, holiday_date, title FROM holidays WHERE org_id = $1 AND holiday_date >= $2 AND holiday_date <= $3 ORDER BY holiday_date ASC`
	var holidays []models.Holiday
	if err := r.db.SelectContext(ctx, &holidays, query, orgID, from, to); err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	return holidays, nil
}
