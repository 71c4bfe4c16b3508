package model

import "time"

// DateFormat is the wire and storage format for naive calendar dates.
const DateFormat = "2006-01-02"

// ClockFormat is the wire and storage format for naive times of day.
const ClockFormat = "15:04"

// BaseModel holds the audit columns every business table carries.
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
