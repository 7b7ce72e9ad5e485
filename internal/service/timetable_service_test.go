package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/msa-adp-api/internal/models"
	appErrors "github.com/noah-isme/msa-adp-api/pkg/errors"
)

type mockSlotRepo struct {
	slots []models.ScheduleSlot
}

func (m *mockSlotRepo) ListActive(ctx context.Context, orgID string) ([]models.ScheduleSlot, error) {
	return m.slots, nil
}

type mockCodeRepo struct {
	codes []models.CourseCode
}

func (m *mockCodeRepo) ListAll(ctx context.Context, orgID string) ([]models.CourseCode, error) {
	return m.codes, nil
}

type mockEnrollmentReader struct {
	regulars []models.RegularEnrollment
	trials   []models.TrialEnrollment
}

func (m *mockEnrollmentReader) ListRegular(ctx context.Context, filter models.EnrollmentFilter) ([]models.RegularEnrollment, error) {
	return m.regulars, nil
}

func (m *mockEnrollmentReader) ListTrialsBetween(ctx context.Context, orgID string, from, to time.Time) ([]models.TrialEnrollment, error) {
	return m.trials, nil
}

type mockHolidayRepo struct {
	holidays []models.Holiday
}

func (m *mockHolidayRepo) ListBetween(ctx context.Context, orgID string, from, to time.Time) ([]models.Holiday, error) {
	var inRange []models.Holiday
	for _, h := range m.holidays {
		if !h.Date.Before(from) && !h.Date.After(to) {
			inRange = append(inRange, h)
		}
	}
	return inRange, nil
}

type mockTeacherRepo struct {
	teachers map[string]models.Teacher
}

func (m *mockTeacherRepo) MapByID(ctx context.Context, orgID string) (map[string]models.Teacher, error) {
	return m.teachers, nil
}

type mockViewCache struct {
	mu     sync.Mutex
	values map[string]*models.TimetableView
	hits   int
	sets   int
}

func (m *mockViewCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	view, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	m.hits++
	*(dest.(*models.TimetableView)) = *view
	return nil
}

func (m *mockViewCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]*models.TimetableView)
	}
	m.values[key] = value.(*models.TimetableView)
	m.sets++
	return nil
}

func newTimetableFixture(cache viewCache) *TimetableService {
	slots := &mockSlotRepo{slots: []models.ScheduleSlot{
		slot("slot-1", models.Monday, 15*60, 45, strPtr("code-piano"), nil),
	}}
	codes := &mockCodeRepo{codes: []models.CourseCode{
		{ID: "code-piano", Code: "PIANO-01", Capacity: 6, TeacherID: strPtr("teacher-1"), Active: true},
	}}
	enrollments := &mockEnrollmentReader{
		regulars: []models.RegularEnrollment{
			regular("enr-1", "Mia Tan", models.Monday, 15*60, strPtr("code-piano")),
			regular("enr-2", "Ken Lim", models.Monday, 15*60, strPtr("code-piano")),
		},
		trials: []models.TrialEnrollment{
			{
				ID:              "trial-1",
				OrgID:           "org-1",
				StudentID:       "student-3",
				StudentName:     "Ana Ong",
				LessonDate:      time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
				StartTime:       15 * 60,
				CourseCodeID:    strPtr("code-piano"),
				DurationMinutes: 45,
			},
		},
	}
	holidays := &mockHolidayRepo{}
	teachers := &mockTeacherRepo{teachers: map[string]models.Teacher{
		"teacher-1": {ID: "teacher-1", FullName: "Mr Goh", Active: true},
	}}
	return NewTimetableService(slots, codes, enrollments, holidays, teachers, cache, nil, nil, time.Minute)
}

func TestTimetableServiceBuildDayView(t *testing.T) {
	svc := newTimetableFixture(nil)
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	view, err := svc.Build(context.Background(), "org-1", models.GranularityDay, monday)
	require.NoError(t, err)
	require.Len(t, view.Groups, 1)
	require.Len(t, view.Groups[0].Occurrences, 1)

	occ := view.Groups[0].Occurrences[0]
	// Two regulars plus a trial: three of six seats taken, not over capacity.
	assert.Len(t, occ.Students, 3)
	assert.Equal(t, 6, occ.Capacity)
	assert.False(t, occ.OverCapacity)
	assert.Equal(t, "Mr Goh", occ.TeacherName)

	origins := map[string]int{}
	for _, student := range occ.Students {
		origins[student.Origin]++
		switch student.Origin {
		case models.OriginRegular:
			require.NotNil(t, student.Remaining, "regular students carry a balance")
		case models.OriginTrial:
			assert.Nil(t, student.Remaining, "trial students have no package to draw down")
		}
	}
	assert.Equal(t, 2, origins[models.OriginRegular])
	assert.Equal(t, 1, origins[models.OriginTrial])
}

func TestTimetableServiceOverCapacityFlagged(t *testing.T) {
	svc := newTimetableFixture(nil)
	svc.slots = &mockSlotRepo{slots: []models.ScheduleSlot{
		func() models.ScheduleSlot {
			s := slot("slot-1", models.Monday, 15*60, 45, strPtr("code-piano"), nil)
			s.Capacity = 2
			return s
		}(),
	}}
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	view, err := svc.Build(context.Background(), "org-1", models.GranularityDay, monday)
	require.NoError(t, err)
	require.Len(t, view.Groups, 1)
	assert.True(t, view.Groups[0].Occurrences[0].OverCapacity)
}

func TestTimetableServiceViewUsesCache(t *testing.T) {
	cache := &mockViewCache{}
	svc := newTimetableFixture(cache)
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	first, err := svc.View(context.Background(), "org-1", models.GranularityDay, monday)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.View(context.Background(), "org-1", models.GranularityDay, monday)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first.Groups, second.Groups)
}

func TestTimetableServiceRebuildReplacesCache(t *testing.T) {
	cache := &mockViewCache{}
	svc := newTimetableFixture(cache)
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	_, err := svc.Rebuild(context.Background(), "org-1", models.GranularityDay, monday)
	require.NoError(t, err)
	_, err = svc.Rebuild(context.Background(), "org-1", models.GranularityDay, monday)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.sets)
	assert.Equal(t, 0, cache.hits)
}

func TestTimetableServiceHolidayWeek(t *testing.T) {
	svc := newTimetableFixture(nil)
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	svc.holidays = &mockHolidayRepo{holidays: []models.Holiday{
		{ID: "hol-1", Date: monday, Title: "Term Break"},
	}}

	view, err := svc.Build(context.Background(), "org-1", models.GranularityWeek, monday)
	require.NoError(t, err)
	// The only slot is on Monday, which is a holiday: nothing generated.
	assert.Empty(t, view.Groups)
	require.Len(t, view.Days, 7)
	assert.True(t, view.Days[1].Holiday)
}
