package dto

// ── payroll module DTOs ──

// ConfigurePeriodsRequest regenerates the payroll-period set from an anchor.
type ConfigurePeriodsRequest struct {
	AnchorDate string `json:"anchor_date" binding:"required"` // "2006-01-02"
}

// PayrollPeriodResponse is the payroll-period wire shape.
type PayrollPeriodResponse struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// NavigatePeriodRequest moves one period forward or back.
type NavigatePeriodRequest struct {
	Direction int `form:"direction" binding:"required,oneof=-1 1"`
}

// PeriodSummaryResponse aggregates a period's shifts.
type PeriodSummaryResponse struct {
	Period         PayrollPeriodResponse `json:"period"`
	TotalShifts    int                   `json:"total_shifts"`
	ImportedShifts int                   `json:"imported_shifts"`
	ManualShifts   int                   `json:"manual_shifts"`
	TotalHours     float64               `json:"total_hours"`
	EmployeeHours  []NamedHours          `json:"employee_hours"`
	ChildHours     []NamedHours          `json:"child_hours"`
}

// NamedHours is an hour rollup line for one employee or child.
type NamedHours struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

// ── exclusion DTOs ──

// CreateExclusionRequest creates one exclusion window. At most one of
// employee_id / child_id may be set; neither means a global exclusion.
type CreateExclusionRequest struct {
	Name       string  `json:"name"       binding:"required,min=1,max=200"`
	StartDate  string  `json:"start_date" binding:"required"`
	EndDate    string  `json:"end_date"   binding:"required"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	EmployeeID *string `json:"employee_id" binding:"omitempty,uuid"`
	ChildID    *string `json:"child_id"    binding:"omitempty,uuid"`
	Reason     string  `json:"reason"      binding:"omitempty,max=500"`
}

// ExclusionListRequest filters the exclusion listing.
type ExclusionListRequest struct {
	ActiveOnly bool `form:"active_only"`
}

// ExclusionResponse is the exclusion wire shape.
type ExclusionResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	StartTime  *string `json:"start_time,omitempty"`
	EndTime    *string `json:"end_time,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	ChildID    *string `json:"child_id,omitempty"`
	Reason     string  `json:"reason,omitempty"`
	Active     bool    `json:"active"`
	CreatedAt  string  `json:"created_at"`
}

// ── bulk recurring-exclusion DTOs ──

// ExpandBulkDatesRequest enumerates concrete dates for a recurring exclusion.
// Weekdays use 0=Sunday .. 6=Saturday; week_filter positions each date within
// its payroll period.
type ExpandBulkDatesRequest struct {
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	Weekdays   []int   `json:"weekdays"    binding:"required,min=1,dive,min=0,max=6"`
	WeekFilter string  `json:"week_filter" binding:"required,oneof=week1 week2 both"`
}

// BulkDate is one expanded calendar date with its week position.
type BulkDate struct {
	Date string `json:"date"`
	Week int    `json:"week"`
}

// CreateBulkExclusionsRequest writes one exclusion row per expanded date, so
// each date can later be deactivated individually.
type CreateBulkExclusionsRequest struct {
	ExpandBulkDatesRequest
	Name       string  `json:"name"       binding:"required,min=1,max=200"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	EmployeeID *string `json:"employee_id" binding:"omitempty,uuid"`
	ChildID    *string `json:"child_id"    binding:"omitempty,uuid"`
	Reason     string  `json:"reason"      binding:"omitempty,max=500"`
}

// CreateBulkExclusionsResponse reports what was written.
type CreateBulkExclusionsResponse struct {
	Created int        `json:"created"`
	Dates   []BulkDate `json:"dates"`
}
