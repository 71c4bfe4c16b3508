package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/solidus85/evvie-time-tracker/internal/dto"
	"github.com/solidus85/evvie-time-tracker/internal/model"
	"github.com/solidus85/evvie-time-tracker/internal/repository"
)

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmployeeNameTaken = errors.New("an employee with this system name already exists")
)

// EmployeeService owns caregiver accounts. Employees are only ever
// deactivated, never deleted, because shifts keep referencing them.
type EmployeeService interface {
	List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error)
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

func (s *employeeService) List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, error) {
	employees, err := s.repo.Employee.List(ctx, req.ActiveOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, *toEmployeeResponse(&employees[i]))
	}
	return out, nil
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if _, err := s.repo.Employee.GetBySystemName(ctx, req.SystemName); err == nil {
		return nil, ErrEmployeeNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	employee := &model.Employee{
		FriendlyName: req.FriendlyName,
		SystemName:   req.SystemName,
		HourlyRate:   req.HourlyRate,
		Active:       true,
		Hidden:       req.Hidden,
	}
	if err := s.repo.Employee.Create(ctx, employee); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmployeeNameTaken
		}
		return nil, err
	}
	s.logger.Info("employee created",
		zap.String("employee_id", employee.EmployeeID),
		zap.String("system_name", employee.SystemName))
	return toEmployeeResponse(employee), nil
}

func (s *employeeService) Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if req.FriendlyName != nil {
		employee.FriendlyName = *req.FriendlyName
	}
	if req.SystemName != nil {
		employee.SystemName = *req.SystemName
	}
	if req.HourlyRate != nil {
		employee.HourlyRate = req.HourlyRate
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}
	if req.Hidden != nil {
		employee.Hidden = *req.Hidden
	}
	if err := s.repo.Employee.Update(ctx, employee); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmployeeNameTaken
		}
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

func (s *employeeService) Deactivate(ctx context.Context, id string) error {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	employee.Active = false
	return s.repo.Employee.Update(ctx, employee)
}

func toEmployeeResponse(e *model.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:           e.EmployeeID,
		FriendlyName: e.FriendlyName,
		SystemName:   e.SystemName,
		HourlyRate:   e.HourlyRate,
		Active:       e.Active,
		Hidden:       e.Hidden,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    e.UpdatedAt.Format(time.RFC3339),
	}
}
