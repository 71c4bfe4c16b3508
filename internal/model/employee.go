package model

// Employee is a caregiver; maps to employees.
// Employees are never hard-deleted because shifts reference them; the active
// flag is the only lifecycle control.
type Employee struct {
	EmployeeID   string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	FriendlyName string   `gorm:"type:varchar(200);not null"                     json:"friendly_name"`
	SystemName   string   `gorm:"type:varchar(200);not null;uniqueIndex"         json:"system_name"`
	HourlyRate   *float64 `gorm:"type:numeric(8,2)"                              json:"hourly_rate,omitempty"`
	Active       bool     `gorm:"not null;default:true"                          json:"active"`
	Hidden       bool     `gorm:"not null;default:false"                         json:"hidden"`
	BaseModel
}

func (Employee) TableName() string { return "employees" }
