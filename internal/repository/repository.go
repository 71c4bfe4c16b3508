package repository

import "gorm.io/gorm"

// Repository aggregates every data-access interface.
type Repository struct {
	User            UserRepository
	Employee        EmployeeRepository
	Child           ChildRepository
	Shift           ShiftRepository
	ExclusionPeriod ExclusionPeriodRepository
	HourLimit       HourLimitRepository
	PayrollPeriod   PayrollPeriodRepository
	AppSetting      AppSettingRepository
}

// NewRepository wires the GORM-backed implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:            NewUserRepo(db),
		Employee:        NewEmployeeRepo(db),
		Child:           NewChildRepo(db),
		Shift:           NewShiftRepo(db),
		ExclusionPeriod: NewExclusionPeriodRepo(db),
		HourLimit:       NewHourLimitRepo(db),
		PayrollPeriod:   NewPayrollPeriodRepo(db),
		AppSetting:      NewAppSettingRepo(db),
	}
}
