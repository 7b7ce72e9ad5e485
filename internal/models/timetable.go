package models

import "time"

// ViewGranularity selects how much of the calendar a timetable view covers.
type ViewGranularity string

// Supported granularities.
const (
	GranularityDay   ViewGranularity = "day"
	GranularityWeek  ViewGranularity = "week"
	GranularityMonth ViewGranularity = "month"
)

// Valid reports whether the granularity is one of the supported values.
func (g ViewGranularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	}
	return false
}

// ViewGroup clusters occurrences that share a (weekday, start time, course
// code) identity across the covered dates.
type ViewGroup struct {
	Weekday     Weekday            `json:"weekday"`
	StartTime   TimeOfDay          `json:"start_time"`
	CourseCode  string             `json:"course_code,omitempty"`
	Occurrences []LessonOccurrence `json:"occurrences"`
}

// DayOccupancy summarizes one covered day for week and month views.
type DayOccupancy struct {
	Date         time.Time `json:"date"`
	Weekday      Weekday   `json:"weekday"`
	Holiday      bool      `json:"holiday"`
	HolidayTitle string    `json:"holiday_title,omitempty"`
	LessonCount  int       `json:"lesson_count"`
	StudentCount int       `json:"student_count"`
	OverCapacity int       `json:"over_capacity"`
}

// TimetableView is the assembled read model for one (org, granularity,
// date) request.
type TimetableView struct {
	OrgID       string             `json:"org_id"`
	Granularity ViewGranularity    `json:"granularity"`
	RefDate     time.Time          `json:"ref_date"`
	From        time.Time          `json:"from"`
	To          time.Time          `json:"to"`
	Groups      []ViewGroup        `json:"groups"`
	Days        []DayOccupancy     `json:"days,omitempty"`
	Unscheduled []UnscheduledEntry `json:"unscheduled,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
}
