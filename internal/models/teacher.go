package models

import "time"

// Teacher is a roster entry supplied by the teacher directory, used for
// display names and double-booking checks.
type Teacher struct {
	ID         string    `db:"id" json:"id"`
	OrgID      string    `db:"org_id" json:"org_id"`
	FullName   string    `db:"full_name" json:"full_name"`
	Instrument *string   `db:"instrument" json:"instrument,omitempty"`
	Active     bool      `db:"active" json:"active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// TeacherFilter narrows roster listings.
type TeacherFilter struct {
	OrgID      string
	ActiveOnly bool
	Search     string
}
