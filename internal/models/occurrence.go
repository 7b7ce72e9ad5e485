package models

import "time"

// Student origin values on an occurrence.
const (
	OriginRegular = "regular"
	OriginTrial   = "trial"
)

// OccurrenceStudent is one student placed on a concrete lesson occurrence.
type OccurrenceStudent struct {
	EnrollmentID string `json:"enrollment_id"`
	StudentID    string `json:"student_id"`
	StudentName  string `json:"student_name"`
	Origin       string `json:"origin"`
	Remaining    *int   `json:"remaining,omitempty"`
}

// LessonOccurrence is a schedule slot realized on a concrete date with the
// students matched onto it.
type LessonOccurrence struct {
	SlotID          string              `json:"slot_id"`
	Date            time.Time           `json:"date"`
	Weekday         Weekday             `json:"weekday"`
	StartTime       TimeOfDay           `json:"start_time"`
	DurationMinutes int                 `json:"duration_minutes"`
	Capacity        int                 `json:"capacity"`
	CourseCodeID    *string             `json:"course_code_id,omitempty"`
	CourseCode      string              `json:"course_code,omitempty"`
	Section         string              `json:"section,omitempty"`
	Room            string              `json:"room,omitempty"`
	TeacherName     string              `json:"teacher_name,omitempty"`
	Students        []OccurrenceStudent `json:"students"`
	OverCapacity    bool                `json:"over_capacity"`
}

// UnscheduledEntry is an enrollment or trial that matched no slot on a date
// it should have been taught. Surfaced rather than silently dropped.
type UnscheduledEntry struct {
	EnrollmentID string    `json:"enrollment_id"`
	StudentID    string    `json:"student_id"`
	StudentName  string    `json:"student_name"`
	Origin       string    `json:"origin"`
	Date         time.Time `json:"date"`
	StartTime    TimeOfDay `json:"start_time"`
	Reason       string    `json:"reason"`
}

// LessonBalance is the package accounting for one regular enrollment as of
// a reference date. Remaining may be negative; overconsumption is data the
// front office needs to see, not an error to clamp. Code carries the
// per-item error kind when the balance could not be computed.
type LessonBalance struct {
	EnrollmentID         string `json:"enrollment_id"`
	StudentID            string `json:"student_id"`
	StudentName          string `json:"student_name"`
	PackageLessons       *int   `json:"package_lessons,omitempty"`
	Consumed             int    `json:"consumed"`
	Remaining            *int   `json:"remaining,omitempty"`
	MissingPackageLength bool   `json:"missing_package_length,omitempty"`
	Code                 string `json:"code,omitempty"`
}
