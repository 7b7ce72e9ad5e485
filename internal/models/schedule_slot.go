package models

import "time"

// ScheduleSlot is a recurring weekly (weekday, time) booking, optionally
// tied to a course code. Weekday is canonical (0=Sunday); the legacy ISO
// numbering survives only in the weekday_iso column and is converted at the
// repository boundary.
type ScheduleSlot struct {
	ID              string    `db:"id" json:"id"`
	OrgID           string    `db:"org_id" json:"org_id"`
	Weekday         Weekday   `json:"weekday"`
	StartTime       TimeOfDay `json:"start_time"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Capacity        int       `db:"capacity" json:"capacity"`
	CourseCodeID    *string   `db:"course_code_id" json:"course_code_id,omitempty"`
	Section         *string   `db:"section" json:"section,omitempty"`
	Room            *string   `db:"room" json:"room,omitempty"`
	Primary         bool      `db:"is_primary" json:"is_primary"`
	Active          bool      `db:"active" json:"active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// End returns the exclusive end of the slot's time range.
func (s ScheduleSlot) End() TimeOfDay {
	return s.StartTime + TimeOfDay(s.DurationMinutes)
}

// SectionLabel returns the section string, empty when unset.
func (s ScheduleSlot) SectionLabel() string {
	if s.Section == nil {
		return ""
	}
	return *s.Section
}

// ScheduleSlotFilter narrows slot listings.
type ScheduleSlotFilter struct {
	OrgID        string
	Weekday      *Weekday
	CourseCodeID string
	ActiveOnly   bool
	Page         int
	PageSize     int
}
