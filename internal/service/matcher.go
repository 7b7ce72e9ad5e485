package service

import (
	"sort"
	"time"

	"github.com/noah-isme/msa-adp-api/internal/models"
)

// MatchInput carries the loaded state one date is reconciled against.
type MatchInput struct {
	Slots    []models.ScheduleSlot
	Regulars []models.RegularEnrollment
	Trials   []models.TrialEnrollment
	Holidays models.HolidaySet
	Codes    map[string]models.CourseCode
	Teachers map[string]models.Teacher
}

// MatchResult is the outcome of reconciling one date.
type MatchResult struct {
	Occurrences []models.LessonOccurrence
	Unscheduled []models.UnscheduledEntry
}

func slotMatchesBooking(slot models.ScheduleSlot, start models.TimeOfDay, codeID *string) bool {
	if slot.StartTime != start {
		return false
	}
	if slot.CourseCodeID == nil && codeID == nil {
		return true
	}
	if slot.CourseCodeID == nil || codeID == nil {
		return false
	}
	return *slot.CourseCodeID == *codeID
}

// MatchDate reconciles every booking against the recurring slots for one
// calendar date. Pure: the same input always yields the same result.
//
// A holiday suppresses the whole date; nothing is generated and nothing is
// reported unscheduled, since no lesson was owed. Otherwise each active
// regular enrollment whose weekday matches the date, and each trial booked
// for the date, is placed on at most one slot: the slot must agree on start
// time and course code (two absent course codes agree). Bookings that match
// no slot surface as unscheduled entries rather than vanishing.
func MatchDate(date time.Time, in MatchInput) MatchResult {
	if in.Holidays.Contains(date) {
		return MatchResult{}
	}

	weekday := models.WeekdayOf(date)

	// Primary slots take the booking when several slots qualify.
	slots := make([]models.ScheduleSlot, 0, len(in.Slots))
	for _, slot := range in.Slots {
		if slot.Active && slot.Weekday == weekday {
			slots = append(slots, slot)
		}
	}
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Primary != slots[j].Primary {
			return slots[i].Primary
		}
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime < slots[j].StartTime
		}
		return slots[i].ID < slots[j].ID
	})

	occurrences := make([]models.LessonOccurrence, 0, len(slots))
	occBySlot := make(map[string]int, len(slots))
	for _, slot := range slots {
		occ := models.LessonOccurrence{
			SlotID:          slot.ID,
			Date:            date,
			Weekday:         slot.Weekday,
			StartTime:       slot.StartTime,
			DurationMinutes: slot.DurationMinutes,
			Capacity:        slot.Capacity,
			CourseCodeID:    slot.CourseCodeID,
			Section:         slot.SectionLabel(),
			Students:        []models.OccurrenceStudent{},
		}
		if slot.Room != nil {
			occ.Room = *slot.Room
		}
		if slot.CourseCodeID != nil {
			if code, ok := in.Codes[*slot.CourseCodeID]; ok {
				occ.CourseCode = code.Code
				if occ.Room == "" && code.Room != nil {
					occ.Room = *code.Room
				}
				if code.TeacherID != nil {
					if teacher, ok := in.Teachers[*code.TeacherID]; ok {
						occ.TeacherName = teacher.FullName
					}
				}
			}
		}
		occBySlot[slot.ID] = len(occurrences)
		occurrences = append(occurrences, occ)
	}

	var unscheduled []models.UnscheduledEntry

	for _, enrollment := range in.Regulars {
		if enrollment.Status != models.EnrollmentStatusActive {
			continue
		}
		if enrollment.Weekday != weekday {
			continue
		}
		if date.Before(enrollment.StartDate) {
			continue
		}
		placed := false
		for _, slot := range slots {
			if !slotMatchesBooking(slot, enrollment.StartTime, enrollment.CourseCodeID) {
				continue
			}
			idx := occBySlot[slot.ID]
			occurrences[idx].Students = append(occurrences[idx].Students, models.OccurrenceStudent{
				EnrollmentID: enrollment.ID,
				StudentID:    enrollment.StudentID,
				StudentName:  enrollment.StudentName,
				Origin:       models.OriginRegular,
			})
			placed = true
			break
		}
		if !placed {
			unscheduled = append(unscheduled, models.UnscheduledEntry{
				EnrollmentID: enrollment.ID,
				StudentID:    enrollment.StudentID,
				StudentName:  enrollment.StudentName,
				Origin:       models.OriginRegular,
				Date:         date,
				StartTime:    enrollment.StartTime,
				Reason:       "no slot matches weekday, time and course code",
			})
		}
	}

	for _, trial := range in.Trials {
		if models.DateKey(trial.LessonDate) != models.DateKey(date) {
			continue
		}
		placed := false
		for _, slot := range slots {
			if !slotMatchesBooking(slot, trial.StartTime, trial.CourseCodeID) {
				continue
			}
			idx := occBySlot[slot.ID]
			occurrences[idx].Students = append(occurrences[idx].Students, models.OccurrenceStudent{
				EnrollmentID: trial.ID,
				StudentID:    trial.StudentID,
				StudentName:  trial.StudentName,
				Origin:       models.OriginTrial,
			})
			placed = true
			break
		}
		if !placed {
			unscheduled = append(unscheduled, models.UnscheduledEntry{
				EnrollmentID: trial.ID,
				StudentID:    trial.StudentID,
				StudentName:  trial.StudentName,
				Origin:       models.OriginTrial,
				Date:         date,
				StartTime:    trial.StartTime,
				Reason:       "no slot matches time and course code",
			})
		}
	}

	return MatchResult{Occurrences: occurrences, Unscheduled: unscheduled}
}
