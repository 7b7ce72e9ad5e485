package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/msa-adp-api/internal/models"
)

func slotRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "org_id", "weekday_iso", "start_time", "duration_minutes", "capacity", "course_code_id", "section", "room", "is_primary", "active", "created_at", "updated_at"})
}

func TestScheduleSlotRepositoryListActiveConvertsLegacyWeekday(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleSlotRepository(db)

	now := time.Now().UTC()
	rows := slotRows().
		AddRow("slot-1", "org-1", 1, "09:00", 45, 6, nil, nil, nil, true, true, now, now).
		AddRow("slot-2", "org-1", 7, "10:30", 60, 4, nil, nil, nil, false, true, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM schedule_slots WHERE org_id = $1 AND active = TRUE")).
		WithArgs("org-1").
		WillReturnRows(rows)

	slots, err := repo.ListActive(context.Background(), "org-1")
	require.NoError(t, err)
	require.Len(t, slots, 2)

	// Legacy 1 is Monday, legacy 7 folds to canonical Sunday.
	assert.Equal(t, models.Monday, slots[0].Weekday)
	assert.Equal(t, models.Sunday, slots[1].Weekday)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, 10*60+30, int(slots[1].StartTime))
}

func TestScheduleSlotRepositoryListActiveRejectsCorruptRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleSlotRepository(db)

	now := time.Now().UTC()
	rows := slotRows().
		AddRow("slot-1", "org-1", 0, "09:00", 45, 6, nil, nil, nil, true, true, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM schedule_slots WHERE org_id = $1 AND active = TRUE")).
		WithArgs("org-1").
		WillReturnRows(rows)

	_, err := repo.ListActive(context.Background(), "org-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slot-1")
}

func TestScheduleSlotRepositoryCreateWritesLegacyColumns(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleSlotRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_slots")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	slot := &models.ScheduleSlot{
		OrgID:           "org-1",
		Weekday:         models.Sunday,
		StartTime:       9 * 60,
		DurationMinutes: 45,
		Capacity:        6,
		Active:          true,
	}
	require.NoError(t, repo.Create(context.Background(), slot))
	assert.NotEmpty(t, slot.ID)

	// Round-trip through the row shape keeps Sunday on the legacy value 7.
	row := slotRowFromModel(slot)
	assert.Equal(t, 7, row.WeekdayISO)
	assert.Equal(t, "09:00", row.StartTime)
}

func TestScheduleSlotRepositoryListFiltersByWeekday(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleSlotRepository(db)

	monday := models.Monday
	now := time.Now().UTC()
	rows := slotRows().
		AddRow("slot-1", "org-1", 1, "09:00", 45, 6, nil, nil, nil, true, true, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("AND weekday_iso = $2")).
		WithArgs("org-1", 1).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("org-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	slots, total, err := repo.List(context.Background(), models.ScheduleSlotFilter{OrgID: "org-1", Weekday: &monday})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, slots, 1)
	assert.Equal(t, models.Monday, slots[0].Weekday)
}
