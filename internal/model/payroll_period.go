package model

import "time"

// PayrollPeriodDays is the fixed span of a payroll period: two weeks.
const PayrollPeriodDays = 14

// PayrollPeriod is one fixed 14-day accounting window; maps to
// payroll_periods. The whole set is a regenerable cache derived from the
// anchor date held in app settings; end_date is always start_date + 13 days.
type PayrollPeriod struct {
	PayrollPeriodID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"payroll_period_id"`
	StartDate       time.Time `gorm:"type:date;not null;uniqueIndex"                 json:"start_date"`
	EndDate         time.Time `gorm:"type:date;not null;uniqueIndex"                 json:"end_date"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

func (PayrollPeriod) TableName() string { return "payroll_periods" }

// Contains reports whether d falls inside the period (inclusive bounds).
func (p *PayrollPeriod) Contains(d time.Time) bool {
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// WeekOf classifies d within the period: 1 for the first seven days, 2 for
// the last seven. Caller guarantees Contains(d).
func (p *PayrollPeriod) WeekOf(d time.Time) int {
	if int(d.Sub(p.StartDate).Hours()/24) < 7 {
		return 1
	}
	return 2
}
