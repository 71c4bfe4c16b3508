package service

import (
	"go.uber.org/zap"

	"github.com/solidus85/evvie-time-tracker/config"
	"github.com/solidus85/evvie-time-tracker/internal/repository"
	"github.com/solidus85/evvie-time-tracker/pkg/jwt"
	"github.com/solidus85/evvie-time-tracker/pkg/redis"
)

// Service bundles every business service for the handler layer.
type Service struct {
	Auth     AuthService
	Employee EmployeeService
	Child    ChildService
	Shift    ShiftService
	Payroll  PayrollService
	Config   ConfigService
	Import   ImportService
	Export   ExportService
}

// NewService wires the services. rdb may be nil; token revocation is then
// disabled.
func NewService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *Service {
	shift := NewShiftService(repo, logger)
	payroll := NewPayrollService(repo, logger)
	return &Service{
		Auth:     NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Employee: NewEmployeeService(repo, logger),
		Child:    NewChildService(repo, logger),
		Shift:    shift,
		Payroll:  payroll,
		Config:   NewConfigService(repo, logger),
		Import:   NewImportService(repo, shift, logger),
		Export:   NewExportService(repo, payroll, logger),
	}
}
