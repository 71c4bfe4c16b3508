package handler

import "github.com/solidus85/evvie-time-tracker/internal/service"

// Handler aggregates every module handler.
type Handler struct {
	Auth     *AuthHandler
	Employee *EmployeeHandler
	Child    *ChildHandler
	Shift    *ShiftHandler
	Payroll  *PayrollHandler
	Config   *ConfigHandler
	Import   *ImportHandler
	Export   *ExportHandler
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		Employee: NewEmployeeHandler(svc.Employee),
		Child:    NewChildHandler(svc.Child),
		Shift:    NewShiftHandler(svc.Shift),
		Payroll:  NewPayrollHandler(svc.Payroll),
		Config:   NewConfigHandler(svc.Config),
		Import:   NewImportHandler(svc.Import),
		Export:   NewExportHandler(svc.Export),
	}
}
