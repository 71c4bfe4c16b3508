package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/solidus85/evvie-time-tracker/internal/model"
)

// EmployeeRepository is the caregiver data-access interface.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	GetBySystemName(ctx context.Context, systemName string) (*model.Employee, error)
	List(ctx context.Context, activeOnly bool) ([]model.Employee, error)
	Update(ctx context.Context, employee *model.Employee) error
}

type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo creates an EmployeeRepository.
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *employeeRepo) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", id).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) GetBySystemName(ctx context.Context, systemName string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).
		Where("system_name = ?", systemName).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) List(ctx context.Context, activeOnly bool) ([]model.Employee, error) {
	var employees []model.Employee
	q := r.db.WithContext(ctx).Order("friendly_name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) Update(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}
