package models

import "time"

// Holiday suppresses lesson generation for its date regardless of matching
// slots. Owned by the external calendar-admin collaborator.
type Holiday struct {
	ID    string    `db:"id" json:"id"`
	OrgID string    `db:"org_id" json:"org_id"`
	Date  time.Time `db:"holiday_date" json:"date"`
	Title string    `db:"title" json:"title"`
}

// DateKey is the canonical YYYY-MM-DD key for date-set membership.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// HolidaySet indexes holidays by date for O(1) membership checks. Duplicate
// dates collapse, which keeps balance math idempotent under duplicated or
// reordered holiday lists.
type HolidaySet map[string]Holiday

// NewHolidaySet builds the index.
func NewHolidaySet(holidays []Holiday) HolidaySet {
	set := make(HolidaySet, len(holidays))
	for _, h := range holidays {
		set[DateKey(h.Date)] = h
	}
	return set
}

// Contains reports whether the date is a holiday.
func (s HolidaySet) Contains(t time.Time) bool {
	_, ok := s[DateKey(t)]
	return ok
}
