package models

import (
	"fmt"
	"sort"
	"strings"
)

// ViolationKind classifies a slot validation failure.
type ViolationKind string

// Violation kinds.
const (
	ViolationSlotOverlap       ViolationKind = "SLOT_OVERLAP"
	ViolationTeacherDoubleBook ViolationKind = "TEACHER_DOUBLE_BOOKED"
	ViolationCapacityExceeded  ViolationKind = "CAPACITY_EXCEEDED"
)

// Violation is one conflict found while validating a slot placement.
type Violation struct {
	Kind       ViolationKind `json:"kind"`
	SlotID     string        `json:"slot_id,omitempty"`
	OtherID    string        `json:"other_id,omitempty"`
	CourseCode string        `json:"course_code,omitempty"`
	TeacherID  string        `json:"teacher_id,omitempty"`
	Detail     string        `json:"detail"`
}

// SortViolations orders violations deterministically so the outcome is
// independent of the order slots were loaded in.
func SortViolations(violations []Violation) {
	sort.Slice(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.OtherID != b.OtherID {
			return a.OtherID < b.OtherID
		}
		return a.Detail < b.Detail
	})
}

// SlotValidationError carries the full violation list across the service
// boundary so handlers can surface every conflict at once.
type SlotValidationError struct {
	Violations []Violation
}

// Error summarizes the violation kinds.
func (e *SlotValidationError) Error() string {
	kinds := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		kinds = append(kinds, string(v.Kind))
	}
	return fmt.Sprintf("slot validation failed: %s", strings.Join(kinds, ", "))
}
