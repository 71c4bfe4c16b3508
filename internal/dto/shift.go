package dto

// ── shift module DTOs ──

// CreateShiftRequest proposes a new shift. Dates are "2006-01-02", times are
// 24-hour "15:04" on that date.
type CreateShiftRequest struct {
	EmployeeID  string  `json:"employee_id" binding:"required,uuid"`
	ChildID     string  `json:"child_id"    binding:"required,uuid"`
	Date        string  `json:"date"        binding:"required"`
	StartTime   string  `json:"start_time"  binding:"required"`
	EndTime     string  `json:"end_time"    binding:"required"`
	ServiceCode *string `json:"service_code" binding:"omitempty,max=50"`
	Status      string  `json:"status"      binding:"omitempty,max=50"`
}

// UpdateShiftRequest partially updates a manual shift.
type UpdateShiftRequest struct {
	EmployeeID  *string `json:"employee_id" binding:"omitempty,uuid"`
	ChildID     *string `json:"child_id"    binding:"omitempty,uuid"`
	Date        *string `json:"date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	ServiceCode *string `json:"service_code" binding:"omitempty,max=50"`
	Status      *string `json:"status"       binding:"omitempty,max=50"`
}

// ShiftListRequest filters the shift listing.
type ShiftListRequest struct {
	StartDate  *string `form:"start_date"`
	EndDate    *string `form:"end_date"`
	EmployeeID *string `form:"employee_id" binding:"omitempty,uuid"`
	ChildID    *string `form:"child_id"    binding:"omitempty,uuid"`
}

// AutoGenerateShiftsRequest asks for the child's free time on a date to be
// filled with shifts for the employee.
type AutoGenerateShiftsRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	ChildID    string `json:"child_id"    binding:"required,uuid"`
	Date       string `json:"date"        binding:"required"`
}

// GeneratedShift is one shift written by auto-generation.
type GeneratedShift struct {
	ShiftID   string `json:"shift_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AutoGenerateShiftsResponse reports what auto-generation wrote. Message is
// set when nothing could be generated at all.
type AutoGenerateShiftsResponse struct {
	Created int              `json:"created"`
	Shifts  []GeneratedShift `json:"shifts,omitempty"`
	Message string           `json:"message,omitempty"`
}

// ValidateShiftRequest runs the validator without writing anything.
type ValidateShiftRequest struct {
	EmployeeID     string  `json:"employee_id" binding:"required,uuid"`
	ChildID        string  `json:"child_id"    binding:"required,uuid"`
	Date           string  `json:"date"        binding:"required"`
	StartTime      string  `json:"start_time"  binding:"required"`
	EndTime        string  `json:"end_time"    binding:"required"`
	ExcludeShiftID *string `json:"exclude_shift_id" binding:"omitempty,uuid"`
	AllowOverlaps  bool    `json:"allow_overlaps"`
}

// ShiftResponse is the shift wire shape, with display names joined in.
type ShiftResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	ChildID      string  `json:"child_id"`
	ChildName    string  `json:"child_name,omitempty"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	ServiceCode  *string `json:"service_code,omitempty"`
	Status       string  `json:"status"`
	IsImported   bool    `json:"is_imported"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// ── validation probe responses ──

// ConflictInfo is one fatal rejection found by a dry-run validation.
type ConflictInfo struct {
	Cause   string `json:"cause"` // overlap | exclusion | validation
	Message string `json:"message"`
}

// ValidateShiftResponse is the dry-run validator verdict.
type ValidateShiftResponse struct {
	Valid     bool           `json:"valid"`
	Warnings  []string       `json:"warnings,omitempty"`
	Conflicts []ConflictInfo `json:"conflicts,omitempty"`
}

// OverlapMatch describes one existing shift that collides with the proposal.
type OverlapMatch struct {
	ShiftID   string `json:"shift_id"`
	Scope     string `json:"scope"` // employee | child
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// OverlapCheckResponse is the standalone overlap probe result.
type OverlapCheckResponse struct {
	Employee *OverlapMatch `json:"employee,omitempty"`
	Child    *OverlapMatch `json:"child,omitempty"`
}

// ExclusionMatch describes one exclusion window active for the proposal.
type ExclusionMatch struct {
	ExclusionPeriodID string `json:"exclusion_period_id"`
	Name              string `json:"name"`
	Scope             string `json:"scope"` // employee | child | global
	Blocking          bool   `json:"blocking"`
}

// HourLimitCheckResponse is the standalone hour-limit probe result.
// Applicable is false when no limit or no payroll period covers the proposal.
type HourLimitCheckResponse struct {
	Applicable     bool     `json:"applicable"`
	Week           int      `json:"week,omitempty"`
	ExistingHours  float64  `json:"existing_hours,omitempty"`
	ProposedHours  float64  `json:"proposed_hours,omitempty"`
	TotalHours     float64  `json:"total_hours,omitempty"`
	MaxHours       float64  `json:"max_hours,omitempty"`
	AlertThreshold *float64 `json:"alert_threshold,omitempty"`
	Exceeded       bool     `json:"exceeded"`
	Warned         bool     `json:"warned"`
}
