package dto

// ── employee module DTOs ──

// CreateEmployeeRequest creates a caregiver.
type CreateEmployeeRequest struct {
	FriendlyName string   `json:"friendly_name" binding:"required,min=1,max=200"`
	SystemName   string   `json:"system_name"   binding:"required,min=1,max=200"`
	HourlyRate   *float64 `json:"hourly_rate"   binding:"omitempty,gt=0"`
	Hidden       bool     `json:"hidden"`
}

// UpdateEmployeeRequest partially updates a caregiver.
type UpdateEmployeeRequest struct {
	FriendlyName *string  `json:"friendly_name" binding:"omitempty,min=1,max=200"`
	SystemName   *string  `json:"system_name"   binding:"omitempty,min=1,max=200"`
	HourlyRate   *float64 `json:"hourly_rate"   binding:"omitempty,gt=0"`
	Active       *bool    `json:"active"`
	Hidden       *bool    `json:"hidden"`
}

// EmployeeListRequest filters the caregiver listing.
type EmployeeListRequest struct {
	ActiveOnly bool `form:"active_only"`
}

// EmployeeResponse is the caregiver wire shape.
type EmployeeResponse struct {
	ID           string   `json:"id"`
	FriendlyName string   `json:"friendly_name"`
	SystemName   string   `json:"system_name"`
	HourlyRate   *float64 `json:"hourly_rate,omitempty"`
	Active       bool     `json:"active"`
	Hidden       bool     `json:"hidden"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}
