package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/msa-adp-api/internal/models"
)

func matchDateMonday() time.Time {
	// 2024-03-11 is a Monday.
	return time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
}

func regular(id, student string, weekday models.Weekday, start models.TimeOfDay, codeID *string) models.RegularEnrollment {
	return models.RegularEnrollment{
		ID:           id,
		OrgID:        "org-1",
		StudentID:    "student-" + id,
		StudentName:  student,
		Weekday:      weekday,
		StartTime:    start,
		CourseCodeID: codeID,
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:       models.EnrollmentStatusActive,
	}
}

func TestMatchDatePlacesRegularsOnMatchingSlot(t *testing.T) {
	in := MatchInput{
		Slots: []models.ScheduleSlot{
			slot("slot-1", models.Monday, 15*60, 45, strPtr("code-piano"), nil),
		},
		Regulars: []models.RegularEnrollment{
			regular("enr-1", "Mia Tan", models.Monday, 15*60, strPtr("code-piano")),
			regular("enr-2", "Ken Lim", models.Monday, 15*60, strPtr("code-piano")),
		},
		Codes: testCodes(),
	}

	result := MatchDate(matchDateMonday(), in)
	require.Len(t, result.Occurrences, 1)
	assert.Len(t, result.Occurrences[0].Students, 2)
	assert.Empty(t, result.Unscheduled)
	assert.Equal(t, "PIANO-01", result.Occurrences[0].CourseCode)
}

func TestMatchDateHolidaySuppressesEverything(t *testing.T) {
	date := matchDateMonday()
	in := MatchInput{
		Slots: []models.ScheduleSlot{
			slot("slot-1", models.Monday, 15*60, 45, strPtr("code-piano"), nil),
		},
		Regulars: []models.RegularEnrollment{
			regular("enr-1", "Mia Tan", models.Monday, 15*60, strPtr("code-piano")),
		},
		Holidays: models.NewHolidaySet([]models.Holiday{{Date: date, Title: "Term Break"}}),
		Codes:    testCodes(),
	}

	result := MatchDate(date, in)
	assert.Empty(t, result.Occurrences)
	// No lesson was owed, so nothing counts as unscheduled either.
	assert.Empty(t, result.Unscheduled)
}

func TestMatchDateUnmatchedEnrollmentSurfaces(t *testing.T) {
	in := MatchInput{
		Slots: []models.ScheduleSlot{
			slot("slot-1", models.Monday, 15*60, 45, strPtr("code-piano"), nil),
		},
		Regulars: []models.RegularEnrollment{
			// Time differs from every slot.
			regular("enr-1", "Mia Tan", models.Monday, 16*60, strPtr("code-piano")),
		},
		Codes: testCodes(),
	}

	result := MatchDate(matchDateMonday(), in)
	require.Len(t, result.Unscheduled, 1)
	assert.Equal(t, "enr-1", result.Unscheduled[0].EnrollmentID)
	assert.Equal(t, models.OriginRegular, result.Unscheduled[0].Origin)
	require.Len(t, result.Occurrences, 1)
	assert.Empty(t, result.Occurrences[0].Students)
}

func TestMatchDateStudentPlacedOnAtMostOneSlot(t *testing.T) {
	primary := slot("slot-1", models.Monday, 15*60, 45, strPtr("code-piano"), strPtr("A"))
	primary.Primary = true
	secondary := slot("slot-2", models.Monday, 15*60, 45, strPtr("code-piano"), strPtr("B"))

	in := MatchInput{
		Slots: []models.ScheduleSlot{secondary, primary},
		Regulars: []models.RegularEnrollment{
			regular("enr-1", "Mia Tan", models.Monday, 15*60, strPtr("code-piano")),
		},
		Codes: testCodes(),
	}

	result := MatchDate(matchDateMonday(), in)
	require.Len(t, result.Occurrences, 2)

	var placed []string
	for _, occ := range result.Occurrences {
		for range occ.Students {
			placed = append(placed, occ.SlotID)
		}
	}
	require.Len(t, placed, 1)
	assert.Equal(t, "slot-1", placed[0], "primary slot wins when several qualify")
}

func TestMatchDateNilCourseCodesAgree(t *testing.T) {
	in := MatchInput{
		Slots: []models.ScheduleSlot{
			slot("slot-1", models.Monday, 10*60, 30, nil, nil),
		},
		Regulars: []models.RegularEnrollment{
			regular("enr-1", "Mia Tan", models.Monday, 10*60, nil),
		},
	}

	result := MatchDate(matchDateMonday(), in)
	require.Len(t, result.Occurrences, 1)
	assert.Len(t, result.Occurrences[0].Students, 1)
}

func TestMatchDateTrialMatchesItsDateOnly(t *testing.T) {
	date := matchDateMonday()
	trial := models.TrialEnrollment{
		ID:           "trial-1",
		StudentID:    "student-9",
		StudentName:  "Ken Lim",
		LessonDate:   date,
		StartTime:    15 * 60,
		CourseCodeID: strPtr("code-piano"),
	}
	in := MatchInput{
		Slots: []models.ScheduleSlot{
			slot("slot-1", models.Monday, 15*60, 45, strPtr("code-piano"), nil),
		},
		Trials: []models.TrialEnrollment{trial},
		Codes:  testCodes(),
	}

	result := MatchDate(date, in)
	require.Len(t, result.Occurrences, 1)
	require.Len(t, result.Occurrences[0].Students, 1)
	assert.Equal(t, models.OriginTrial, result.Occurrences[0].Students[0].Origin)

	nextWeek := MatchDate(date.AddDate(0, 0, 7), in)
	require.Len(t, nextWeek.Occurrences, 1)
	assert.Empty(t, nextWeek.Occurrences[0].Students)
}

func TestMatchDateSkipsEnrollmentsBeforeStartDate(t *testing.T) {
	enrollment := regular("enr-1", "Mia Tan", models.Monday, 15*60, strPtr("code-piano"))
	enrollment.StartDate = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	in := MatchInput{
		Slots: []models.ScheduleSlot{
			slot("slot-1", models.Monday, 15*60, 45, strPtr("code-piano"), nil),
		},
		Regulars: []models.RegularEnrollment{enrollment},
		Codes:    testCodes(),
	}

	result := MatchDate(matchDateMonday(), in)
	require.Len(t, result.Occurrences, 1)
	assert.Empty(t, result.Occurrences[0].Students)
	assert.Empty(t, result.Unscheduled)
}
