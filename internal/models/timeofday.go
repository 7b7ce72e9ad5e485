package models

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is minutes since midnight. Keeping the value numeric makes
// time ordering and overlap arithmetic trivial and avoids the lexical
// comparison trap where "9:00" sorts after "10:00".
type TimeOfDay int

// ParseTimeOfDay accepts "HH:MM" or "H:MM" clock strings.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("time %q is not in HH:MM form", raw)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("time %q has invalid hour: %w", raw, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("time %q has invalid minute: %w", raw, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time %q out of range", raw)
	}
	return TimeOfDay(hours*60 + minutes), nil
}

// Valid reports whether the value falls within a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < 24*60
}

// String renders the zero-padded HH:MM form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalJSON encodes the clock string rather than raw minutes.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

// UnmarshalJSON accepts the clock string form.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	raw, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("time of day must be a string: %w", err)
	}
	parsed, err := ParseTimeOfDay(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
