package dto

import "github.com/noah-isme/msa-adp-api/internal/models"

// CreateCourseTypeRequest captures POST /catalog/course-types payload.
type CreateCourseTypeRequest struct {
	Name            string                     `json:"name" validate:"required,min=1,max=120"`
	MinAge          *int                       `json:"minAge" validate:"omitempty,min=0"`
	MaxAge          *int                       `json:"maxAge" validate:"omitempty,min=0"`
	DurationMinutes int                        `json:"durationMinutes" validate:"required,min=5,max=480"`
	Capacity        int                        `json:"capacity" validate:"required,min=1"`
	DifficultyTier  string                     `json:"difficultyTier" validate:"omitempty,max=40"`
	PricingModel    string                     `json:"pricingModel" validate:"omitempty,max=40"`
	TrialLimit      int                        `json:"trialLimit" validate:"omitempty,min=0"`
	Packages        []models.PackageOption     `json:"packages" validate:"omitempty,dive"`
	TrialBundles    []models.TrialBundleOption `json:"trialBundles" validate:"omitempty,dive"`
	DisplayOrder    int                        `json:"displayOrder"`
}

// UpdateCourseTypeRequest captures PUT /catalog/course-types/:id. Nil fields
// are left untouched; empty strings clear optional text columns.
type UpdateCourseTypeRequest struct {
	Name            *string                    `json:"name" validate:"omitempty,min=1,max=120"`
	MinAge          *int                       `json:"minAge" validate:"omitempty,min=0"`
	MaxAge          *int                       `json:"maxAge" validate:"omitempty,min=0"`
	DurationMinutes *int                       `json:"durationMinutes" validate:"omitempty,min=5,max=480"`
	Capacity        *int                       `json:"capacity" validate:"omitempty,min=1"`
	DifficultyTier  *string                    `json:"difficultyTier" validate:"omitempty,max=40"`
	PricingModel    *string                    `json:"pricingModel" validate:"omitempty,max=40"`
	TrialLimit      *int                       `json:"trialLimit" validate:"omitempty,min=0"`
	Packages        []models.PackageOption     `json:"packages" validate:"omitempty,dive"`
	TrialBundles    []models.TrialBundleOption `json:"trialBundles" validate:"omitempty,dive"`
	DisplayOrder    *int                       `json:"displayOrder"`
}

// CreateCourseCodeRequest captures POST /catalog/course-codes payload.
type CreateCourseCodeRequest struct {
	CourseTypeID *string `json:"courseTypeId" validate:"omitempty,uuid"`
	Code         string  `json:"code" validate:"required,min=1,max=40"`
	Name         string  `json:"name" validate:"required,min=1,max=120"`
	Description  *string `json:"description" validate:"omitempty,max=500"`
	Capacity     int     `json:"capacity" validate:"required,min=1"`
	TeacherID    *string `json:"teacherId" validate:"omitempty,uuid"`
	Room         *string `json:"room" validate:"omitempty,max=60"`
	DisplayOrder int     `json:"displayOrder"`
}

// UpdateCourseCodeRequest captures PUT /catalog/course-codes/:id.
type UpdateCourseCodeRequest struct {
	CourseTypeID *string `json:"courseTypeId" validate:"omitempty,uuid"`
	Code         *string `json:"code" validate:"omitempty,min=1,max=40"`
	Name         *string `json:"name" validate:"omitempty,min=1,max=120"`
	Description  *string `json:"description" validate:"omitempty,max=500"`
	Capacity     *int    `json:"capacity" validate:"omitempty,min=1"`
	TeacherID    *string `json:"teacherId" validate:"omitempty,uuid"`
	Room         *string `json:"room" validate:"omitempty,max=60"`
	DisplayOrder *int    `json:"displayOrder"`
}

// CreateScheduleSlotRequest captures POST /catalog/slots payload.
// Weekday uses the canonical 0=Sunday convention; startTime is HH:MM.
type CreateScheduleSlotRequest struct {
	Weekday         int     `json:"weekday" validate:"min=0,max=6"`
	StartTime       string  `json:"startTime" validate:"required"`
	DurationMinutes int     `json:"durationMinutes" validate:"required,min=5,max=480"`
	Capacity        int     `json:"capacity" validate:"required,min=1"`
	CourseCodeID    *string `json:"courseCodeId" validate:"omitempty,uuid"`
	Section         *string `json:"section" validate:"omitempty,max=20"`
	Room            *string `json:"room" validate:"omitempty,max=60"`
	Primary         bool    `json:"isPrimary"`
}

// UpdateScheduleSlotRequest captures PUT /catalog/slots/:id.
type UpdateScheduleSlotRequest struct {
	Weekday         *int    `json:"weekday" validate:"omitempty,min=0,max=6"`
	StartTime       *string `json:"startTime"`
	DurationMinutes *int    `json:"durationMinutes" validate:"omitempty,min=5,max=480"`
	Capacity        *int    `json:"capacity" validate:"omitempty,min=1"`
	CourseCodeID    *string `json:"courseCodeId" validate:"omitempty,uuid"`
	Section         *string `json:"section" validate:"omitempty,max=20"`
	Room            *string `json:"room" validate:"omitempty,max=60"`
	Primary         *bool   `json:"isPrimary"`
}

// ToggleActiveRequest flips the active flag on a catalog record.
type ToggleActiveRequest struct {
	Active bool `json:"active"`
}

// CatalogOptionsResponse feeds form dropdowns in the admin console.
type CatalogOptionsResponse struct {
	CourseTypes []models.CourseTypeOption `json:"courseTypes"`
	CourseCodes []models.CourseCodeOption `json:"courseCodes"`
}
