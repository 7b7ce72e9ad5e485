package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/msa-adp-api/internal/models"
	appErrors "github.com/noah-isme/msa-adp-api/pkg/errors"
)

func intPtr(v int) *int { return &v }

func TestWeekdayOccurrences(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // a Monday
	ref := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)  // a Monday, excluded

	assert.Equal(t, 10, weekdayOccurrences(start, ref, models.Monday))
	assert.Equal(t, 10, weekdayOccurrences(start, ref, models.Tuesday))
	assert.Equal(t, 10, weekdayOccurrences(start, ref, models.Sunday))
	assert.Equal(t, 0, weekdayOccurrences(start, start, models.Monday))
	assert.Equal(t, 1, weekdayOccurrences(start, start.AddDate(0, 0, 1), models.Monday))
}

func TestComputeBalancesWithHoliday(t *testing.T) {
	enrollment := models.RegularEnrollment{
		ID:             "enr-1",
		StudentID:      "student-1",
		StudentName:    "Mia Tan",
		Weekday:        models.Monday,
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PackageLessons: intPtr(10),
		Status:         models.EnrollmentStatusActive,
	}
	ref := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	holidays := []models.Holiday{
		{ID: "hol-1", Date: time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC), Title: "Lunar New Year"},
	}

	balances := ComputeBalances([]models.RegularEnrollment{enrollment}, ref, holidays)
	require.Len(t, balances, 1)
	// Ten Mondays in range, one falls on a holiday.
	assert.Equal(t, 9, balances[0].Consumed)
	require.NotNil(t, balances[0].Remaining)
	assert.Equal(t, 1, *balances[0].Remaining)
	assert.False(t, balances[0].MissingPackageLength)
}

func TestComputeBalancesHolidayIdempotent(t *testing.T) {
	enrollment := models.RegularEnrollment{
		ID:             "enr-1",
		Weekday:        models.Monday,
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PackageLessons: intPtr(10),
	}
	ref := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	holiday := models.Holiday{ID: "hol-1", Date: time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC)}

	once := ComputeBalances([]models.RegularEnrollment{enrollment}, ref, []models.Holiday{holiday})
	// The same date listed twice, in any order, must not double-deduct.
	twice := ComputeBalances([]models.RegularEnrollment{enrollment}, ref, []models.Holiday{holiday, holiday})
	assert.Equal(t, once[0].Consumed, twice[0].Consumed)
}

func TestComputeBalancesIgnoresHolidaysOnOtherWeekdays(t *testing.T) {
	enrollment := models.RegularEnrollment{
		ID:             "enr-1",
		Weekday:        models.Monday,
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PackageLessons: intPtr(10),
	}
	ref := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	holidays := []models.Holiday{
		{ID: "hol-1", Date: time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)}, // a Wednesday
	}

	balances := ComputeBalances([]models.RegularEnrollment{enrollment}, ref, holidays)
	assert.Equal(t, 10, balances[0].Consumed)
}

func TestComputeBalancesNegativeRemainingNotClamped(t *testing.T) {
	enrollment := models.RegularEnrollment{
		ID:             "enr-1",
		Weekday:        models.Monday,
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PackageLessons: intPtr(4),
	}
	ref := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	balances := ComputeBalances([]models.RegularEnrollment{enrollment}, ref, nil)
	require.NotNil(t, balances[0].Remaining)
	assert.Equal(t, -6, *balances[0].Remaining)
}

func TestComputeBalancesMissingPackageLengthIsPerItem(t *testing.T) {
	withPackage := models.RegularEnrollment{
		ID:             "enr-1",
		Weekday:        models.Monday,
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PackageLessons: intPtr(10),
	}
	withoutPackage := models.RegularEnrollment{
		ID:        "enr-2",
		Weekday:   models.Monday,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	ref := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	balances := ComputeBalances([]models.RegularEnrollment{withPackage, withoutPackage}, ref, nil)
	require.Len(t, balances, 2)
	assert.False(t, balances[0].MissingPackageLength)
	assert.Empty(t, balances[0].Code)
	assert.True(t, balances[1].MissingPackageLength)
	assert.Equal(t, appErrors.ErrMissingPackageLength.Code, balances[1].Code)
	assert.Nil(t, balances[1].Remaining)
	// The flawed record still reports consumption.
	assert.Equal(t, 10, balances[1].Consumed)
}

type mockBalanceEnrollments struct {
	enrollments []models.RegularEnrollment
}

func (m *mockBalanceEnrollments) ListRegular(ctx context.Context, filter models.EnrollmentFilter) ([]models.RegularEnrollment, error) {
	if filter.StudentID == "" {
		return m.enrollments, nil
	}
	var filtered []models.RegularEnrollment
	for _, e := range m.enrollments {
		if e.StudentID == filter.StudentID {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

type mockBalanceHolidays struct {
	holidays []models.Holiday
	from     time.Time
	to       time.Time
}

func (m *mockBalanceHolidays) ListBetween(ctx context.Context, orgID string, from, to time.Time) ([]models.Holiday, error) {
	m.from, m.to = from, to
	return m.holidays, nil
}

func TestBalanceServiceLoadsHolidayHistoryFromEarliestStart(t *testing.T) {
	enrollments := &mockBalanceEnrollments{enrollments: []models.RegularEnrollment{
		{
			ID:             "enr-1",
			StudentID:      "student-1",
			Weekday:        models.Monday,
			StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			PackageLessons: intPtr(10),
		},
		{
			ID:             "enr-2",
			StudentID:      "student-2",
			Weekday:        models.Tuesday,
			StartDate:      time.Date(2023, 11, 7, 0, 0, 0, 0, time.UTC),
			PackageLessons: intPtr(20),
		},
	}}
	holidays := &mockBalanceHolidays{holidays: []models.Holiday{
		{ID: "hol-1", Date: time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC)},
	}}
	svc := NewBalanceService(enrollments, holidays, nil)

	ref := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	balances, err := svc.Balances(context.Background(), "org-1", ref, "")
	require.NoError(t, err)
	require.Len(t, balances, 2)

	assert.Equal(t, time.Date(2023, 11, 7, 0, 0, 0, 0, time.UTC), holidays.from)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), holidays.to)
	assert.Equal(t, 9, balances[0].Consumed)
}

func TestBalanceServiceEmptyOrg(t *testing.T) {
	svc := NewBalanceService(&mockBalanceEnrollments{}, &mockBalanceHolidays{}, nil)
	balances, err := svc.Balances(context.Background(), "org-1", time.Now(), "")
	require.NoError(t, err)
	assert.Empty(t, balances)
}
