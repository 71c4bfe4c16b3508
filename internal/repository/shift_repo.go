package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/solidus85/evvie-time-tracker/internal/model"
)

// ShiftFilter narrows a shift listing. Nil fields are ignored.
type ShiftFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	EmployeeID *string
	ChildID    *string
}

// ShiftRepository is the shift data-access interface.
type ShiftRepository interface {
	Create(ctx context.Context, shift *model.Shift) error
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	List(ctx context.Context, filter ShiftFilter) ([]model.Shift, error)
	// ListForDate returns every shift on a date touching the employee or the
	// child, optionally excluding one shift id (for updates).
	ListForDate(ctx context.Context, employeeID, childID string, date time.Time, excludeID *string) ([]model.Shift, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]model.Shift, error)
	// FindExact locates a shift by its full (employee, child, date, start,
	// end) identity, the store-level uniqueness key.
	FindExact(ctx context.Context, employeeID, childID string, date time.Time, startTime, endTime string) (*model.Shift, error)
	// SumHours totals booked hours for the (employee, child) pair across an
	// inclusive date range, optionally excluding one shift id.
	SumHours(ctx context.Context, employeeID, childID string, start, end time.Time, excludeID *string) (float64, error)
	Update(ctx context.Context, shift *model.Shift) error
	Delete(ctx context.Context, id string) error
}

type shiftRepo struct {
	db *gorm.DB
}

// NewShiftRepo creates a ShiftRepository.
func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) Create(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Child").
		Where("shift_id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) List(ctx context.Context, filter ShiftFilter) ([]model.Shift, error) {
	var shifts []model.Shift
	q := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Child").
		Order("date DESC, start_time DESC")

	if filter.StartDate != nil {
		q = q.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("date <= ?", *filter.EndDate)
	}
	if filter.EmployeeID != nil {
		q = q.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.ChildID != nil {
		q = q.Where("child_id = ?", *filter.ChildID)
	}

	err := q.Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ListForDate(ctx context.Context, employeeID, childID string, date time.Time, excludeID *string) ([]model.Shift, error) {
	var shifts []model.Shift
	q := r.db.WithContext(ctx).
		Where("date = ?", date).
		Where("employee_id = ? OR child_id = ?", employeeID, childID).
		Order("start_time ASC")
	if excludeID != nil {
		q = q.Where("shift_id <> ?", *excludeID)
	}
	err := q.Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Child").
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC, start_time ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) FindExact(ctx context.Context, employeeID, childID string, date time.Time, startTime, endTime string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND child_id = ? AND date = ? AND start_time = ? AND end_time = ?",
			employeeID, childID, date, startTime, endTime).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) SumHours(ctx context.Context, employeeID, childID string, start, end time.Time, excludeID *string) (float64, error) {
	var total *float64
	q := r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Select("SUM(EXTRACT(EPOCH FROM (end_time - start_time)) / 3600.0)").
		Where("employee_id = ? AND child_id = ?", employeeID, childID).
		Where("date >= ? AND date <= ?", start, end)
	if excludeID != nil {
		q = q.Where("shift_id <> ?", *excludeID)
	}
	if err := q.Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *shiftRepo) Update(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Save(shift).Error
}

func (r *shiftRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("shift_id = ?", id).
		Delete(&model.Shift{}).Error
}
