package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/msa-adp-api/internal/models"
)

func TestViewRange(t *testing.T) {
	// 2024-03-13 is a Wednesday.
	ref := time.Date(2024, 3, 13, 10, 30, 0, 0, time.UTC)

	from, to := ViewRange(models.GranularityDay, ref)
	assert.Equal(t, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, from, to)

	from, to = ViewRange(models.GranularityWeek, ref)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), from, "weeks start on Sunday")
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), to)

	from, to = ViewRange(models.GranularityMonth, ref)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), to)
}

func TestBuildViewSortsGroupsByNumericTime(t *testing.T) {
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	nine, _ := models.ParseTimeOfDay("9:00")
	ten, _ := models.ParseTimeOfDay("10:00")

	results := map[string]MatchResult{
		models.DateKey(monday): {
			Occurrences: []models.LessonOccurrence{
				{SlotID: "slot-late", Date: monday, Weekday: models.Monday, StartTime: ten, CourseCode: "PIANO-01"},
				{SlotID: "slot-early", Date: monday, Weekday: models.Monday, StartTime: nine, CourseCode: "PIANO-01"},
			},
		},
	}

	view := BuildView("org-1", models.GranularityDay, monday, results, nil)
	require.Len(t, view.Groups, 2)
	// Numeric ordering: 9:00 sorts before 10:00 even though "9:00" is
	// lexically greater than "10:00".
	assert.Equal(t, nine, view.Groups[0].StartTime)
	assert.Equal(t, ten, view.Groups[1].StartTime)
}

func TestBuildViewStableUnderInputOrder(t *testing.T) {
	week := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	occA := models.LessonOccurrence{SlotID: "slot-a", Date: week, Weekday: models.Monday, StartTime: 9 * 60, CourseCode: "PIANO-01"}
	occB := models.LessonOccurrence{SlotID: "slot-b", Date: week.AddDate(0, 0, 1), Weekday: models.Tuesday, StartTime: 9 * 60, CourseCode: "THEORY-02"}

	forward := map[string]MatchResult{
		models.DateKey(occA.Date): {Occurrences: []models.LessonOccurrence{occA}},
		models.DateKey(occB.Date): {Occurrences: []models.LessonOccurrence{occB}},
	}

	viewA := BuildView("org-1", models.GranularityWeek, week, forward, nil)
	viewB := BuildView("org-1", models.GranularityWeek, week, forward, nil)
	assert.Equal(t, viewA.Groups, viewB.Groups)
	assert.Equal(t, viewA.Days, viewB.Days)

	require.Len(t, viewA.Groups, 2)
	assert.Equal(t, models.Monday, viewA.Groups[0].Weekday)
	assert.Equal(t, models.Tuesday, viewA.Groups[1].Weekday)
}

func TestBuildViewDaySummariesAndHolidayAnnotation(t *testing.T) {
	week := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	holiday := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)

	over := models.LessonOccurrence{
		SlotID:       "slot-a",
		Date:         week,
		Weekday:      models.Monday,
		StartTime:    9 * 60,
		Capacity:     2,
		CourseCode:   "PIANO-01",
		Students:     make([]models.OccurrenceStudent, 3),
		OverCapacity: true,
	}
	results := map[string]MatchResult{
		models.DateKey(week): {Occurrences: []models.LessonOccurrence{over}},
	}
	holidays := models.NewHolidaySet([]models.Holiday{{Date: holiday, Title: "Term Break"}})

	view := BuildView("org-1", models.GranularityWeek, week, results, holidays)
	require.Len(t, view.Days, 7)

	var monday, tuesday models.DayOccupancy
	for _, day := range view.Days {
		switch models.DateKey(day.Date) {
		case models.DateKey(week):
			monday = day
		case models.DateKey(holiday):
			tuesday = day
		}
	}
	assert.Equal(t, 1, monday.LessonCount)
	assert.Equal(t, 3, monday.StudentCount)
	assert.Equal(t, 1, monday.OverCapacity)
	assert.True(t, tuesday.Holiday)
	assert.Equal(t, "Term Break", tuesday.HolidayTitle)
}

func TestBuildViewDayGranularityHasNoDaySummaries(t *testing.T) {
	day := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	view := BuildView("org-1", models.GranularityDay, day, nil, nil)
	assert.Nil(t, view.Days)
	assert.Equal(t, day, view.From)
	assert.Equal(t, day, view.To)
}
