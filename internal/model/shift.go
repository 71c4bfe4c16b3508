package model

import "time"

// Shift is one worked interval on a single calendar date; maps to shifts.
// Times are naive "HH:MM" clock strings; a shift never crosses midnight.
// Imported shifts come from a trusted external source: they may coexist with
// overlaps and are immutable once created.
type Shift struct {
	ShiftID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	EmployeeID  string    `gorm:"type:uuid;not null;index:idx_shifts_employee_date" json:"employee_id"`
	ChildID     string    `gorm:"type:uuid;not null;index:idx_shifts_child_date" json:"child_id"`
	Date        time.Time `gorm:"type:date;not null;index:idx_shifts_employee_date;index:idx_shifts_child_date" json:"date"`
	StartTime   string    `gorm:"type:time;not null"                             json:"start_time"`
	EndTime     string    `gorm:"type:time;not null"                             json:"end_time"`
	ServiceCode *string   `gorm:"type:varchar(50)"                               json:"service_code,omitempty"`
	Status      string    `gorm:"type:varchar(50);not null;default:'new'"        json:"status"`
	IsImported  bool      `gorm:"not null;default:false"                         json:"is_imported"`
	BaseModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
	Child    *Child    `gorm:"foreignKey:ChildID;references:ChildID"       json:"child,omitempty"`
}

func (Shift) TableName() string { return "shifts" }
