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

func TestEnrollmentRepositoryListRegular(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	lessons := 10
	rows := sqlmock.NewRows([]string{"id", "org_id", "student_id", "student_name", "weekday", "start_time", "course_code_id", "start_date", "package_lessons", "status", "created_at"}).
		AddRow("enr-sun", "org-1", "student-2", "Ken Lim", 0, "10:00", nil, startDate, lessons, "ACTIVE", now).
		AddRow("enr-1", "org-1", "student-1", "Mia Tan", 1, "15:00", nil, startDate, lessons, "ACTIVE", now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM regular_enrollments WHERE org_id = $1 AND status = $2")).
		WithArgs("org-1", "ACTIVE").
		WillReturnRows(rows)

	items, err := repo.ListRegular(context.Background(), models.EnrollmentFilter{OrgID: "org-1", Status: models.EnrollmentStatusActive})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.Sunday, items[0].Weekday)
	assert.Equal(t, models.Monday, items[1].Weekday)
	assert.Equal(t, "15:00", items[1].StartTime.String())
	require.NotNil(t, items[1].PackageLessons)
	assert.Equal(t, 10, *items[1].PackageLessons)
}

func TestEnrollmentRepositoryListRegularSkipsMalformedRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "org_id", "student_id", "student_name", "weekday", "start_time", "course_code_id", "start_date", "package_lessons", "status", "created_at"}).
		AddRow("enr-bad", "org-1", "student-3", "Ada Ng", 7, "09:00", nil, startDate, nil, "ACTIVE", now).
		AddRow("enr-1", "org-1", "student-1", "Mia Tan", 1, "15:00", nil, startDate, nil, "ACTIVE", now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM regular_enrollments WHERE org_id = $1")).
		WithArgs("org-1").
		WillReturnRows(rows)

	// One out-of-range weekday must not take down the whole listing.
	items, err := repo.ListRegular(context.Background(), models.EnrollmentFilter{OrgID: "org-1"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "enr-1", items[0].ID)
}

func TestEnrollmentRepositoryListRegularWeekdayFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	sunday := models.Sunday
	rows := sqlmock.NewRows([]string{"id", "org_id", "student_id", "student_name", "weekday", "start_time", "course_code_id", "start_date", "package_lessons", "status", "created_at"})

	mock.ExpectQuery(regexp.QuoteMeta("AND weekday = $2")).
		WithArgs("org-1", 0).
		WillReturnRows(rows)

	_, err := repo.ListRegular(context.Background(), models.EnrollmentFilter{OrgID: "org-1", Weekday: &sunday})
	require.NoError(t, err)
}

func TestEnrollmentRepositoryListTrialsBetween(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	lessonDate := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "org_id", "student_id", "student_name", "lesson_date", "start_time", "course_code_id", "duration_minutes", "created_at"}).
		AddRow("trial-1", "org-1", "student-2", "Ken Lim", lessonDate, "16:30", nil, 30, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM trial_enrollments WHERE org_id = $1 AND lesson_date >= $2 AND lesson_date <= $3")).
		WithArgs("org-1", lessonDate, lessonDate).
		WillReturnRows(rows)

	trials, err := repo.ListTrialsBetween(context.Background(), "org-1", lessonDate, lessonDate)
	require.NoError(t, err)
	require.Len(t, trials, 1)
	assert.Equal(t, 16*60+30, int(trials[0].StartTime))
	assert.Equal(t, 30, trials[0].DurationMinutes)
}
