package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// CourseType is the abstract offering (e.g. "Piano Foundations") a course
// code is created under. Duration and capacity here are canonical defaults;
// individual schedule slots may override them.
type CourseType struct {
	ID              string         `db:"id" json:"id"`
	OrgID           string         `db:"org_id" json:"org_id"`
	Name            string         `db:"name" json:"name"`
	MinAge          *int           `db:"min_age" json:"min_age,omitempty"`
	MaxAge          *int           `db:"max_age" json:"max_age,omitempty"`
	DurationMinutes int            `db:"duration_minutes" json:"duration_minutes"`
	Capacity        int            `db:"capacity" json:"capacity"`
	DifficultyTier  string         `db:"difficulty_tier" json:"difficulty_tier"`
	PricingModel    string         `db:"pricing_model" json:"pricing_model"`
	TrialLimit      int            `db:"trial_limit" json:"trial_limit"`
	Packages        types.JSONText `db:"packages" json:"packages"`
	TrialBundles    types.JSONText `db:"trial_bundles" json:"trial_bundles"`
	Active          bool           `db:"active" json:"active"`
	DisplayOrder    int            `db:"display_order" json:"display_order"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// PackageOption is one purchasable lesson bundle under a course type.
type PackageOption struct {
	LessonCount int     `json:"lesson_count"`
	Price       float64 `json:"price"`
}

// TrialBundleOption is a one-off trial offering.
type TrialBundleOption struct {
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
}

// CourseTypeFilter narrows course type listings.
type CourseTypeFilter struct {
	OrgID      string
	ActiveOnly bool
	Page       int
	PageSize   int
}

// CourseTypeOption is the lightweight shape served to form dropdowns.
type CourseTypeOption struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
