package service

import (
	"sort"
	"time"

	"github.com/noah-isme/msa-adp-api/internal/models"
)

// ViewRange returns the inclusive [from, to] date range a granularity covers
// around refDate. Weeks run Sunday through Saturday.
func ViewRange(granularity models.ViewGranularity, refDate time.Time) (time.Time, time.Time) {
	day := midnightUTC(refDate)
	switch granularity {
	case models.GranularityWeek:
		from := day.AddDate(0, 0, -int(day.Weekday()))
		return from, from.AddDate(0, 0, 6)
	case models.GranularityMonth:
		from := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 1, -1)
	default:
		return day, day
	}
}

// DatesIn expands an inclusive range into its individual days.
func DatesIn(from, to time.Time) []time.Time {
	var dates []time.Time
	for d := midnightUTC(from); !d.After(midnightUTC(to)); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

type groupKey struct {
	weekday    models.Weekday
	start      models.TimeOfDay
	courseCode string
}

// BuildView assembles the read model from per-date reconciliation results.
// Pure and deterministic: occurrences cluster by (weekday, start time,
// course code), groups sort by weekday then numeric start time then course
// code, and occurrences inside a group sort by date. Feeding dates in a
// different order produces the identical view.
func BuildView(orgID string, granularity models.ViewGranularity, refDate time.Time, results map[string]MatchResult, holidays models.HolidaySet) models.TimetableView {
	from, to := ViewRange(granularity, refDate)

	grouped := make(map[groupKey][]models.LessonOccurrence)
	var unscheduled []models.UnscheduledEntry
	days := make([]models.DayOccupancy, 0)

	for _, date := range DatesIn(from, to) {
		result := results[models.DateKey(date)]

		day := models.DayOccupancy{Date: date, Weekday: models.WeekdayOf(date)}
		if holiday, ok := holidays[models.DateKey(date)]; ok {
			day.Holiday = true
			day.HolidayTitle = holiday.Title
		}

		for _, occ := range result.Occurrences {
			key := groupKey{weekday: occ.Weekday, start: occ.StartTime, courseCode: occ.CourseCode}
			grouped[key] = append(grouped[key], occ)

			day.LessonCount++
			day.StudentCount += len(occ.Students)
			if occ.OverCapacity {
				day.OverCapacity++
			}
		}
		unscheduled = append(unscheduled, result.Unscheduled...)
		days = append(days, day)
	}

	keys := make([]groupKey, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].weekday != keys[j].weekday {
			return keys[i].weekday < keys[j].weekday
		}
		if keys[i].start != keys[j].start {
			return keys[i].start < keys[j].start
		}
		return keys[i].courseCode < keys[j].courseCode
	})

	groups := make([]models.ViewGroup, 0, len(keys))
	for _, key := range keys {
		occurrences := grouped[key]
		sort.Slice(occurrences, func(i, j int) bool {
			if !occurrences[i].Date.Equal(occurrences[j].Date) {
				return occurrences[i].Date.Before(occurrences[j].Date)
			}
			return occurrences[i].SlotID < occurrences[j].SlotID
		})
		groups = append(groups, models.ViewGroup{
			Weekday:     key.weekday,
			StartTime:   key.start,
			CourseCode:  key.courseCode,
			Occurrences: occurrences,
		})
	}

	sort.Slice(unscheduled, func(i, j int) bool {
		if !unscheduled[i].Date.Equal(unscheduled[j].Date) {
			return unscheduled[i].Date.Before(unscheduled[j].Date)
		}
		if unscheduled[i].StartTime != unscheduled[j].StartTime {
			return unscheduled[i].StartTime < unscheduled[j].StartTime
		}
		return unscheduled[i].EnrollmentID < unscheduled[j].EnrollmentID
	})

	view := models.TimetableView{
		OrgID:       orgID,
		Granularity: granularity,
		RefDate:     midnightUTC(refDate),
		From:        from,
		To:          to,
		Groups:      groups,
		Unscheduled: unscheduled,
		GeneratedAt: time.Now().UTC(),
	}
	if granularity != models.GranularityDay {
		view.Days = days
	}
	return view
}
