package dto

// TimetableQuery filters GET /timetable.
type TimetableQuery struct {
	Granularity string `form:"granularity" json:"granularity" validate:"required,oneof=day week month"`
	Date        string `form:"date" json:"date" validate:"required"`
}

// RefreshRequest forces a rebuild of one timetable view.
type RefreshRequest struct {
	Granularity string `json:"granularity" validate:"required,oneof=day week month"`
	Date        string `json:"date" validate:"required"`
}

// BalancesQuery filters GET /students/balances.
type BalancesQuery struct {
	Date      string `form:"date" json:"date" validate:"required"`
	StudentID string `form:"studentId" json:"studentId"`
}

// HolidaysQuery filters GET /holidays by inclusive date range.
type HolidaysQuery struct {
	From string `form:"from" json:"from" validate:"required"`
	To   string `form:"to" json:"to" validate:"required"`
}
