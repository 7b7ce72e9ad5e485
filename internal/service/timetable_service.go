package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/msa-adp-api/internal/models"
	"github.com/noah-isme/msa-adp-api/internal/repository"
	appErrors "github.com/noah-isme/msa-adp-api/pkg/errors"
)

type timetableSlotRepository interface {
	ListActive(ctx context.Context, orgID string) ([]models.ScheduleSlot, error)
}

type timetableCodeRepository interface {
	ListAll(ctx context.Context, orgID string) ([]models.CourseCode, error)
}

type timetableEnrollmentRepository interface {
	ListRegular(ctx context.Context, filter models.EnrollmentFilter) ([]models.RegularEnrollment, error)
	ListTrialsBetween(ctx context.Context, orgID string, from, to time.Time) ([]models.TrialEnrollment, error)
}

type timetableHolidayRepository interface {
	ListBetween(ctx context.Context, orgID string, from, to time.Time) ([]models.Holiday, error)
}

type timetableTeacherRepository interface {
	MapByID(ctx context.Context, orgID string) (map[string]models.Teacher, error)
}

type viewCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// TimetableService assembles timetable views: it loads catalog and booking
// state, reconciles each covered date, runs occupancy checks, attaches
// lesson balances and aggregates the result.
type TimetableService struct {
	slots       timetableSlotRepository
	codes       timetableCodeRepository
	enrollments timetableEnrollmentRepository
	holidays    timetableHolidayRepository
	teachers    timetableTeacherRepository
	cache       viewCache
	metrics     *MetricsService
	logger      *zap.Logger
	viewTTL     time.Duration
}

// NewTimetableService constructs the service.
func NewTimetableService(slots timetableSlotRepository, codes timetableCodeRepository, enrollments timetableEnrollmentRepository, holidays timetableHolidayRepository, teachers timetableTeacherRepository, cache viewCache, metrics *MetricsService, logger *zap.Logger, viewTTL time.Duration) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if viewTTL <= 0 {
		viewTTL = 2 * time.Minute
	}
	return &TimetableService{
		slots:       slots,
		codes:       codes,
		enrollments: enrollments,
		holidays:    holidays,
		teachers:    teachers,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		viewTTL:     viewTTL,
	}
}

type timetableState struct {
	slots    []models.ScheduleSlot
	codes    []models.CourseCode
	regulars []models.RegularEnrollment
	trials   []models.TrialEnrollment
	holidays []models.Holiday
	teachers map[string]models.Teacher
}

// loadState fetches the six inputs concurrently. The first error wins; the
// remaining loads still finish before it is returned.
func (s *TimetableService) loadState(ctx context.Context, orgID string, from, to time.Time) (*timetableState, error) {
	state := &timetableState{}
	var wg sync.WaitGroup
	errs := make([]error, 6)

	wg.Add(6)
	go func() {
		defer wg.Done()
		state.slots, errs[0] = s.slots.ListActive(ctx, orgID)
	}()
	go func() {
		defer wg.Done()
		state.codes, errs[1] = s.codes.ListAll(ctx, orgID)
	}()
	go func() {
		defer wg.Done()
		state.regulars, errs[2] = s.enrollments.ListRegular(ctx, models.EnrollmentFilter{OrgID: orgID, Status: models.EnrollmentStatusActive})
	}()
	go func() {
		defer wg.Done()
		state.trials, errs[3] = s.enrollments.ListTrialsBetween(ctx, orgID, from, to)
	}()
	go func() {
		defer wg.Done()
		state.holidays, errs[4] = s.holidays.ListBetween(ctx, orgID, from, to)
	}()
	go func() {
		defer wg.Done()
		state.teachers, errs[5] = s.teachers.MapByID(ctx, orgID)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable state")
		}
	}
	return state, nil
}

// Build assembles one view from scratch, bypassing the cache.
func (s *TimetableService) Build(ctx context.Context, orgID string, granularity models.ViewGranularity, refDate time.Time) (*models.TimetableView, error) {
	started := time.Now()
	from, to := ViewRange(granularity, refDate)

	state, err := s.loadState(ctx, orgID, from, to)
	if err != nil {
		return nil, err
	}

	holidaySet := models.NewHolidaySet(state.holidays)
	codeByID := make(map[string]models.CourseCode, len(state.codes))
	for _, code := range state.codes {
		codeByID[code.ID] = code
	}

	input := MatchInput{
		Slots:    state.slots,
		Regulars: state.regulars,
		Trials:   state.trials,
		Holidays: holidaySet,
		Codes:    codeByID,
		Teachers: state.teachers,
	}

	// Balances are computed once as of the reference date and stamped onto
	// every matched regular student in the view.
	balances, err := s.balancesAsOf(ctx, orgID, state.regulars, refDate)
	if err != nil {
		return nil, err
	}
	remainingByEnrollment := make(map[string]*int, len(balances))
	for i := range balances {
		remainingByEnrollment[balances[i].EnrollmentID] = balances[i].Remaining
	}

	results := make(map[string]MatchResult)
	for _, date := range DatesIn(from, to) {
		result := MatchDate(date, input)
		for i := range result.Occurrences {
			occ := &result.Occurrences[i]
			for j := range occ.Students {
				if occ.Students[j].Origin == models.OriginRegular {
					occ.Students[j].Remaining = remainingByEnrollment[occ.Students[j].EnrollmentID]
				}
			}
			CheckOccupancy(occ)
		}
		results[models.DateKey(date)] = result
	}

	view := BuildView(orgID, granularity, refDate, results, holidaySet)
	s.metrics.ObserveReconcile(string(granularity), time.Since(started))
	return &view, nil
}

// balancesAsOf loads the holiday history each enrollment needs and derives
// balances. Holidays inside the view range may not cover an enrollment's
// full lifetime, so the range is computed from the earliest start date.
func (s *TimetableService) balancesAsOf(ctx context.Context, orgID string, regulars []models.RegularEnrollment, refDate time.Time) ([]models.LessonBalance, error) {
	if len(regulars) == 0 {
		return nil, nil
	}
	earliest := midnightUTC(regulars[0].StartDate)
	for _, enrollment := range regulars[1:] {
		if start := midnightUTC(enrollment.StartDate); start.Before(earliest) {
			earliest = start
		}
	}
	holidays, err := s.holidays.ListBetween(ctx, orgID, earliest, midnightUTC(refDate).AddDate(0, 0, -1))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load holidays for balances")
	}
	return ComputeBalances(regulars, refDate, holidays), nil
}

// View serves a timetable view through the cache.
func (s *TimetableService) View(ctx context.Context, orgID string, granularity models.ViewGranularity, refDate time.Time) (*models.TimetableView, error) {
	key := repository.TimetableViewKey(orgID, string(granularity), models.DateKey(refDate))
	if s.cache != nil {
		var cached models.TimetableView
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			s.metrics.RecordViewCache(true)
			return &cached, nil
		}
		s.metrics.RecordViewCache(false)
	}
	return s.Rebuild(ctx, orgID, granularity, refDate)
}

// Rebuild assembles a fresh view and replaces the cached copy.
func (s *TimetableService) Rebuild(ctx context.Context, orgID string, granularity models.ViewGranularity, refDate time.Time) (*models.TimetableView, error) {
	view, err := s.Build(ctx, orgID, granularity, refDate)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		key := repository.TimetableViewKey(orgID, string(granularity), models.DateKey(refDate))
		if err := s.cache.Set(ctx, key, view, s.viewTTL); err != nil {
			s.logger.Warn("failed to cache timetable view", zap.String("key", key), zap.Error(err))
		}
	}
	return view, nil
}

// Holidays lists holidays in an inclusive range for the admin console.
func (s *TimetableService) Holidays(ctx context.Context, orgID string, from, to time.Time) ([]models.Holiday, error) {
	holidays, err := s.holidays.ListBetween(ctx, orgID, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list holidays")
	}
	return holidays, nil
}
