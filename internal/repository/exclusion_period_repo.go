package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/solidus85/evvie-time-tracker/internal/model"
)

// ExclusionPeriodRepository is the exclusion-window data-access interface.
type ExclusionPeriodRepository interface {
	Create(ctx context.Context, exclusion *model.ExclusionPeriod) error
	// CreateBatch inserts a set of exclusions in one transaction; used by
	// bulk recurring-exclusion creation.
	CreateBatch(ctx context.Context, exclusions []model.ExclusionPeriod) error
	GetByID(ctx context.Context, id string) (*model.ExclusionPeriod, error)
	List(ctx context.Context, activeOnly bool) ([]model.ExclusionPeriod, error)
	// ListActiveForShift returns active exclusions whose date range contains
	// the date and whose scope touches the employee, the child, or everyone.
	// Time-window filtering is the caller's job.
	ListActiveForShift(ctx context.Context, employeeID, childID string, date time.Time) ([]model.ExclusionPeriod, error)
	Deactivate(ctx context.Context, id string) error
}

type exclusionPeriodRepo struct {
	db *gorm.DB
}

// NewExclusionPeriodRepo creates an ExclusionPeriodRepository.
func NewExclusionPeriodRepo(db *gorm.DB) ExclusionPeriodRepository {
	return &exclusionPeriodRepo{db: db}
}

func (r *exclusionPeriodRepo) Create(ctx context.Context, exclusion *model.ExclusionPeriod) error {
	return r.db.WithContext(ctx).Create(exclusion).Error
}

func (r *exclusionPeriodRepo) CreateBatch(ctx context.Context, exclusions []model.ExclusionPeriod) error {
	if len(exclusions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&exclusions).Error
	})
}

func (r *exclusionPeriodRepo) GetByID(ctx context.Context, id string) (*model.ExclusionPeriod, error) {
	var exclusion model.ExclusionPeriod
	err := r.db.WithContext(ctx).
		Where("exclusion_period_id = ?", id).
		First(&exclusion).Error
	if err != nil {
		return nil, err
	}
	return &exclusion, nil
}

func (r *exclusionPeriodRepo) List(ctx context.Context, activeOnly bool) ([]model.ExclusionPeriod, error) {
	var exclusions []model.ExclusionPeriod
	q := r.db.WithContext(ctx).Order("start_date DESC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&exclusions).Error
	return exclusions, err
}

func (r *exclusionPeriodRepo) ListActiveForShift(ctx context.Context, employeeID, childID string, date time.Time) ([]model.ExclusionPeriod, error) {
	var exclusions []model.ExclusionPeriod
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("start_date <= ? AND end_date >= ?", date, date).
		Where("employee_id = ? OR child_id = ? OR (employee_id IS NULL AND child_id IS NULL)",
			employeeID, childID).
		Order("start_date ASC, created_at ASC").
		Find(&exclusions).Error
	return exclusions, err
}

func (r *exclusionPeriodRepo) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.ExclusionPeriod{}).
		Where("exclusion_period_id = ?", id).
		Update("active", false).Error
}
