package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/solidus85/evvie-time-tracker/internal/model"
)

// HourLimitRepository is the weekly hour-cap data-access interface.
type HourLimitRepository interface {
	Create(ctx context.Context, limit *model.HourLimit) error
	GetByID(ctx context.Context, id string) (*model.HourLimit, error)
	// GetActiveByPair returns the single active limit for an (employee,
	// child) pair, or gorm.ErrRecordNotFound.
	GetActiveByPair(ctx context.Context, employeeID, childID string) (*model.HourLimit, error)
	List(ctx context.Context, activeOnly bool) ([]model.HourLimit, error)
	Update(ctx context.Context, limit *model.HourLimit) error
}

type hourLimitRepo struct {
	db *gorm.DB
}

// NewHourLimitRepo creates an HourLimitRepository.
func NewHourLimitRepo(db *gorm.DB) HourLimitRepository {
	return &hourLimitRepo{db: db}
}

func (r *hourLimitRepo) Create(ctx context.Context, limit *model.HourLimit) error {
	return r.db.WithContext(ctx).Create(limit).Error
}

func (r *hourLimitRepo) GetByID(ctx context.Context, id string) (*model.HourLimit, error) {
	var limit model.HourLimit
	err := r.db.WithContext(ctx).
		Where("hour_limit_id = ?", id).
		First(&limit).Error
	if err != nil {
		return nil, err
	}
	return &limit, nil
}

func (r *hourLimitRepo) GetActiveByPair(ctx context.Context, employeeID, childID string) (*model.HourLimit, error) {
	var limit model.HourLimit
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND child_id = ? AND active = ?", employeeID, childID, true).
		First(&limit).Error
	if err != nil {
		return nil, err
	}
	return &limit, nil
}

func (r *hourLimitRepo) List(ctx context.Context, activeOnly bool) ([]model.HourLimit, error) {
	var limits []model.HourLimit
	q := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Child").
		Order("created_at ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&limits).Error
	return limits, err
}

func (r *hourLimitRepo) Update(ctx context.Context, limit *model.HourLimit) error {
	return r.db.WithContext(ctx).Save(limit).Error
}
