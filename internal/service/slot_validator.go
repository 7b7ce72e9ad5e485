package service

import (
	"fmt"

	"github.com/noah-isme/msa-adp-api/internal/models"
)

// overlaps reports whether two half-open time ranges [start, end) intersect.
// Back-to-back slots sharing a boundary minute do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd models.TimeOfDay) bool {
	return aStart < bEnd && bStart < aEnd
}

func courseCodeOf(slot models.ScheduleSlot, codes map[string]models.CourseCode) (models.CourseCode, bool) {
	if slot.CourseCodeID == nil {
		return models.CourseCode{}, false
	}
	code, ok := codes[*slot.CourseCodeID]
	return code, ok
}

// ValidateSlot checks a candidate slot placement against every existing slot
// in the org and returns all conflicts at once. Pure: callers load state and
// decide what to do with the violations.
//
// Rules:
//   - SLOT_OVERLAP: time overlap on the same weekday between two slots of the
//     same course code and the same section. Different sections of one course
//     code may run in parallel.
//   - TEACHER_DOUBLE_BOOKED: time overlap on the same weekday between slots
//     of two different course codes that share a teacher. A teacher cannot be
//     double-booked by the same course code twice; that case is SLOT_OVERLAP
//     or a legitimate parallel section.
//
// Inactive slots and the candidate's own record are ignored. The returned
// list is deterministically ordered so the outcome does not depend on the
// order slots were loaded in.
func ValidateSlot(candidate models.ScheduleSlot, existing []models.ScheduleSlot, codes map[string]models.CourseCode) []models.Violation {
	var violations []models.Violation

	candCode, candHasCode := courseCodeOf(candidate, codes)
	candEnd := candidate.End()

	for _, other := range existing {
		if !other.Active || other.ID == candidate.ID {
			continue
		}
		if other.Weekday != candidate.Weekday {
			continue
		}
		if !overlaps(candidate.StartTime, candEnd, other.StartTime, other.End()) {
			continue
		}

		otherCode, otherHasCode := courseCodeOf(other, codes)

		sameCode := candidate.CourseCodeID == nil && other.CourseCodeID == nil
		if candidate.CourseCodeID != nil && other.CourseCodeID != nil {
			sameCode = *candidate.CourseCodeID == *other.CourseCodeID
		}

		if sameCode && candidate.SectionLabel() == other.SectionLabel() {
			v := models.Violation{
				Kind:    models.ViolationSlotOverlap,
				SlotID:  candidate.ID,
				OtherID: other.ID,
				Detail:  fmt.Sprintf("overlaps slot at %s on %s", other.StartTime, other.Weekday),
			}
			if candHasCode {
				v.CourseCode = candCode.Code
			}
			violations = append(violations, v)
			continue
		}

		if !sameCode && candHasCode && otherHasCode &&
			candCode.TeacherID != nil && otherCode.TeacherID != nil &&
			*candCode.TeacherID == *otherCode.TeacherID {
			violations = append(violations, models.Violation{
				Kind:       models.ViolationTeacherDoubleBook,
				SlotID:     candidate.ID,
				OtherID:    other.ID,
				CourseCode: otherCode.Code,
				TeacherID:  *candCode.TeacherID,
				Detail:     fmt.Sprintf("teacher already booked by %s at %s on %s", otherCode.Code, other.StartTime, other.Weekday),
			})
		}
	}

	models.SortViolations(violations)
	return violations
}

// CheckOccupancy flags an occurrence whose matched students exceed its
// capacity. Overbooking surfaces as a violation on the view; it never blocks
// the write that caused it, because the booking already happened upstream.
func CheckOccupancy(occ *models.LessonOccurrence) *models.Violation {
	if occ == nil || len(occ.Students) <= occ.Capacity {
		return nil
	}
	occ.OverCapacity = true
	return &models.Violation{
		Kind:       models.ViolationCapacityExceeded,
		SlotID:     occ.SlotID,
		CourseCode: occ.CourseCode,
		Detail:     fmt.Sprintf("%d students matched against capacity %d on %s", len(occ.Students), occ.Capacity, models.DateKey(occ.Date)),
	}
}
