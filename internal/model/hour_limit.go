package model

// HourLimit caps weekly hours for one (employee, child) pair; maps to
// hour_limits. At most one limit may exist per pair; the alert threshold, when
// set, is strictly below the maximum.
type HourLimit struct {
	HourLimitID     string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"hour_limit_id"`
	EmployeeID      string   `gorm:"type:uuid;not null;uniqueIndex:idx_hour_limits_pair" json:"employee_id"`
	ChildID         string   `gorm:"type:uuid;not null;uniqueIndex:idx_hour_limits_pair" json:"child_id"`
	MaxHoursPerWeek float64  `gorm:"type:numeric(5,2);not null"                     json:"max_hours_per_week"`
	AlertThreshold  *float64 `gorm:"type:numeric(5,2)"                              json:"alert_threshold,omitempty"`
	Active          bool     `gorm:"not null;default:true"                          json:"active"`
	BaseModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
	Child    *Child    `gorm:"foreignKey:ChildID;references:ChildID"       json:"child,omitempty"`
}

func (HourLimit) TableName() string { return "hour_limits" }
