package models

import "time"

// EnrollmentStatus represents the lifecycle of a regular enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusActive EnrollmentStatus = "ACTIVE"
	EnrollmentStatusPaused EnrollmentStatus = "PAUSED"
	EnrollmentStatusEnded  EnrollmentStatus = "ENDED"
)

// RegularEnrollment is a student's ongoing weekly booking against a
// purchased lesson package. Owned by the student-management subsystem;
// read-only input to the reconciliation engine.
type RegularEnrollment struct {
	ID             string           `db:"id" json:"id"`
	OrgID          string           `db:"org_id" json:"org_id"`
	StudentID      string           `db:"student_id" json:"student_id"`
	StudentName    string           `db:"student_name" json:"student_name"`
	Weekday        Weekday          `json:"weekday"`
	StartTime      TimeOfDay        `json:"start_time"`
	CourseCodeID   *string          `db:"course_code_id" json:"course_code_id,omitempty"`
	StartDate      time.Time        `db:"start_date" json:"start_date"`
	PackageLessons *int             `db:"package_lessons" json:"package_lessons,omitempty"`
	Status         EnrollmentStatus `db:"status" json:"status"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
}

// TrialEnrollment is a one-off, single-date booking. It participates in
// occupancy only, never in lesson-balance accounting.
type TrialEnrollment struct {
	ID              string    `db:"id" json:"id"`
	OrgID           string    `db:"org_id" json:"org_id"`
	StudentID       string    `db:"student_id" json:"student_id"`
	StudentName     string    `db:"student_name" json:"student_name"`
	LessonDate      time.Time `db:"lesson_date" json:"lesson_date"`
	StartTime       TimeOfDay `json:"start_time"`
	CourseCodeID    *string   `db:"course_code_id" json:"course_code_id,omitempty"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// EnrollmentFilter narrows regular enrollment listings.
type EnrollmentFilter struct {
	OrgID     string
	Status    EnrollmentStatus
	Weekday   *Weekday
	StudentID string
}
