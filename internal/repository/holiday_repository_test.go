package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidayRepositoryListBetween(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "org_id", "holiday_date", "title"}).
		AddRow("hol-1", "org-1", time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC), "Lunar New Year")

	mock.ExpectQuery(regexp.QuoteMeta("FROM holidays WHERE org_id = $1 AND holiday_date >= $2 AND holiday_date <= $3")).
		WithArgs("org-1", from, to).
		WillReturnRows(rows)

	holidays, err := repo.ListBetween(context.Background(), "org-1", from, to)
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "Lunar New Year", holidays[0].Title)
}
