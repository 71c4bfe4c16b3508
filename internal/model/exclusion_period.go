package model

import "time"

// ExclusionPeriod is a window during which scheduling is blocked or flagged;
// maps to exclusion_periods.
// Scope is exactly one of: employee, child, or global (both refs nil). The
// store enforces this with a CHECK constraint; the services enforce it at
// construction.
type ExclusionPeriod struct {
	ExclusionPeriodID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"exclusion_period_id"`
	Name              string    `gorm:"type:varchar(200);not null"                     json:"name"`
	StartDate         time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate           time.Time `gorm:"type:date;not null"                             json:"end_date"`
	StartTime         *string   `gorm:"type:time"                                      json:"start_time,omitempty"`
	EndTime           *string   `gorm:"type:time"                                      json:"end_time,omitempty"`
	EmployeeID        *string   `gorm:"type:uuid"                                      json:"employee_id,omitempty"`
	ChildID           *string   `gorm:"type:uuid"                                      json:"child_id,omitempty"`
	Reason            string    `gorm:"type:varchar(500)"                              json:"reason,omitempty"`
	Active            bool      `gorm:"not null;default:true"                          json:"active"`
	BaseModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
	Child    *Child    `gorm:"foreignKey:ChildID;references:ChildID"       json:"child,omitempty"`
}

func (ExclusionPeriod) TableName() string { return "exclusion_periods" }

// IsGlobal reports whether the exclusion applies to everyone.
func (e *ExclusionPeriod) IsGlobal() bool {
	return e.EmployeeID == nil && e.ChildID == nil
}
