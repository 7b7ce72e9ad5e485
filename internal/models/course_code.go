package models

import "time"

// CourseCode is a concrete class/section under a course type, with its own
// capacity, teacher and room. The code string is unique per organization.
type CourseCode struct {
	ID           string    `db:"id" json:"id"`
	OrgID        string    `db:"org_id" json:"org_id"`
	CourseTypeID *string   `db:"course_type_id" json:"course_type_id,omitempty"`
	Code         string    `db:"code" json:"code"`
	Name         string    `db:"name" json:"name"`
	Description  *string   `db:"description" json:"description,omitempty"`
	Capacity     int       `db:"capacity" json:"capacity"`
	TeacherID    *string   `db:"teacher_id" json:"teacher_id,omitempty"`
	Room         *string   `db:"room" json:"room,omitempty"`
	Active       bool      `db:"active" json:"active"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// CourseCodeFilter narrows course code listings.
type CourseCodeFilter struct {
	OrgID        string
	CourseTypeID string
	TeacherID    string
	ActiveOnly   bool
	Search       string
	Page         int
	PageSize     int
}

// CourseCodeOption is the lightweight shape served to form dropdowns.
type CourseCodeOption struct {
	ID   string `db:"id" json:"id"`
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}
