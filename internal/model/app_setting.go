package model

import "time"

// SettingPayrollAnchor is the key of the payroll-period anchor date.
const SettingPayrollAnchor = "payroll_anchor_date"

// AppSetting is one versioned configuration value; maps to app_settings.
// The version counter increments on every write, so callers can detect that a
// value (notably the payroll anchor) has been reconfigured underneath them.
type AppSetting struct {
	Key       string    `gorm:"type:varchar(100);primaryKey"       json:"key"`
	Value     string    `gorm:"type:text;not null"                 json:"value"`
	Version   int       `gorm:"not null;default:1"                 json:"version"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (AppSetting) TableName() string { return "app_settings" }
