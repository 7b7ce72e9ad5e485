package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/msa-adp-api/internal/models"
	appErrors "github.com/noah-isme/msa-adp-api/pkg/errors"
)

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// weekdayOccurrences counts dates with the given weekday inside the
// half-open range [start, end).
func weekdayOccurrences(start, end time.Time, weekday models.Weekday) int {
	start = midnightUTC(start)
	end = midnightUTC(end)
	if !start.Before(end) {
		return 0
	}

	offset := (int(weekday) - int(start.Weekday()) + 7) % 7
	first := start.AddDate(0, 0, offset)
	if !first.Before(end) {
		return 0
	}
	days := int(end.Sub(first).Hours() / 24)
	return (days-1)/7 + 1
}

// ComputeBalances derives package accounting for a batch of enrollments as
// of refDate. Consumption counts every occurrence of the enrollment's
// weekday from its start date up to but excluding refDate, minus holidays
// that landed on those dates. The holiday list is bucketed by weekday in a
// single pass, so reordered or duplicated holiday input cannot change the
// outcome.
//
// Remaining is nil when the enrollment has no package length; that case is
// flagged per item instead of failing the batch. Remaining goes negative
// when a student has consumed past their package.
func ComputeBalances(enrollments []models.RegularEnrollment, refDate time.Time, holidays []models.Holiday) []models.LessonBalance {
	refDate = midnightUTC(refDate)

	holidayDates := make(map[models.Weekday]map[string]time.Time)
	for _, h := range holidays {
		day := midnightUTC(h.Date)
		weekday := models.WeekdayOf(day)
		if holidayDates[weekday] == nil {
			holidayDates[weekday] = make(map[string]time.Time)
		}
		holidayDates[weekday][models.DateKey(day)] = day
	}

	balances := make([]models.LessonBalance, 0, len(enrollments))
	for _, enrollment := range enrollments {
		start := midnightUTC(enrollment.StartDate)
		consumed := weekdayOccurrences(start, refDate, enrollment.Weekday)
		for _, day := range holidayDates[enrollment.Weekday] {
			if !day.Before(start) && day.Before(refDate) {
				consumed--
			}
		}

		balance := models.LessonBalance{
			EnrollmentID:   enrollment.ID,
			StudentID:      enrollment.StudentID,
			StudentName:    enrollment.StudentName,
			PackageLessons: enrollment.PackageLessons,
			Consumed:       consumed,
		}
		if enrollment.PackageLessons == nil {
			balance.MissingPackageLength = true
			balance.Code = appErrors.ErrMissingPackageLength.Code
		} else {
			remaining := *enrollment.PackageLessons - consumed
			balance.Remaining = &remaining
		}
		balances = append(balances, balance)
	}
	return balances
}

type balanceEnrollmentRepository interface {
	ListRegular(ctx context.Context, filter models.EnrollmentFilter) ([]models.RegularEnrollment, error)
}

type balanceHolidayRepository interface {
	ListBetween(ctx context.Context, orgID string, from, to time.Time) ([]models.Holiday, error)
}

// BalanceService serves lesson balances for the admin console.
type BalanceService struct {
	enrollments balanceEnrollmentRepository
	holidays    balanceHolidayRepository
	logger      *zap.Logger
}

// NewBalanceService constructs the service.
func NewBalanceService(enrollments balanceEnrollmentRepository, holidays balanceHolidayRepository, logger *zap.Logger) *BalanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BalanceService{enrollments: enrollments, holidays: holidays, logger: logger}
}

// Balances computes balances for every active enrollment in the org as of
// refDate, optionally narrowed to a single student.
func (s *BalanceService) Balances(ctx context.Context, orgID string, refDate time.Time, studentID string) ([]models.LessonBalance, error) {
	enrollments, err := s.enrollments.ListRegular(ctx, models.EnrollmentFilter{
		OrgID:     orgID,
		Status:    models.EnrollmentStatusActive,
		StudentID: studentID,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollments")
	}
	if len(enrollments) == 0 {
		return []models.LessonBalance{}, nil
	}

	earliest := midnightUTC(enrollments[0].StartDate)
	for _, enrollment := range enrollments[1:] {
		if start := midnightUTC(enrollment.StartDate); start.Before(earliest) {
			earliest = start
		}
	}

	// refDate itself is excluded from consumption, so the holiday range
	// ends the day before.
	holidays, err := s.holidays.ListBetween(ctx, orgID, earliest, midnightUTC(refDate).AddDate(0, 0, -1))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load holidays")
	}

	return ComputeBalances(enrollments, refDate, holidays), nil
}
