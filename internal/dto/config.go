package dto

// ── configuration module DTOs ──

// CreateHourLimitRequest caps weekly hours for one (employee, child) pair.
type CreateHourLimitRequest struct {
	EmployeeID      string   `json:"employee_id"        binding:"required,uuid"`
	ChildID         string   `json:"child_id"           binding:"required,uuid"`
	MaxHoursPerWeek float64  `json:"max_hours_per_week" binding:"required,gt=0"`
	AlertThreshold  *float64 `json:"alert_threshold"    binding:"omitempty,gt=0"`
}

// UpdateHourLimitRequest partially updates a weekly cap.
type UpdateHourLimitRequest struct {
	MaxHoursPerWeek *float64 `json:"max_hours_per_week" binding:"omitempty,gt=0"`
	AlertThreshold  *float64 `json:"alert_threshold"    binding:"omitempty,gt=0"`
	Active          *bool    `json:"active"`
}

// HourLimitListRequest filters the hour-limit listing.
type HourLimitListRequest struct {
	ActiveOnly bool `form:"active_only"`
}

// HourLimitResponse is the hour-limit wire shape with display names.
type HourLimitResponse struct {
	ID              string   `json:"id"`
	EmployeeID      string   `json:"employee_id"`
	EmployeeName    string   `json:"employee_name,omitempty"`
	ChildID         string   `json:"child_id"`
	ChildName       string   `json:"child_name,omitempty"`
	MaxHoursPerWeek float64  `json:"max_hours_per_week"`
	AlertThreshold  *float64 `json:"alert_threshold,omitempty"`
	Active          bool     `json:"active"`
}

// AppSettingResponse is one versioned settings entry.
type AppSettingResponse struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Version   int    `json:"version"`
	UpdatedAt string `json:"updated_at"`
}

// UpdateSettingsRequest upserts key/value settings.
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required,min=1"`
}
