package models

import (
	"fmt"
	"time"
)

// Weekday is the canonical weekday index used everywhere inside the engine:
// 0=Sunday .. 6=Saturday. Legacy data sources that number days 1=Monday ..
// 7=Sunday are converted exactly once, at the persistence boundary, through
// WeekdayFromISO.
type Weekday int

// Canonical weekday values.
const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Valid reports whether the weekday is inside [0,6].
func (w Weekday) Valid() bool {
	return w >= Sunday && w <= Saturday
}

// String returns the English day name, or a numeric fallback for invalid values.
func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// WeekdayFromISO converts the legacy 1=Monday..7=Sunday numbering to the
// canonical convention. This is the only conversion site in the codebase.
func WeekdayFromISO(iso int) (Weekday, error) {
	if iso < 1 || iso > 7 {
		return 0, fmt.Errorf("iso weekday %d out of range [1,7]", iso)
	}
	if iso == 7 {
		return Sunday, nil
	}
	return Weekday(iso), nil
}

// ISO returns the legacy 1=Monday..7=Sunday value for persistence into the
// schedule_slots table.
func (w Weekday) ISO() int {
	if w == Sunday {
		return 7
	}
	return int(w)
}

// WeekdayOf returns the canonical weekday of a calendar date.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(int(t.Weekday()))
}
