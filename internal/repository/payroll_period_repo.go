package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/solidus85/evvie-time-tracker/internal/model"
)

// PayrollPeriodRepository is the payroll-period data-access interface.
type PayrollPeriodRepository interface {
	List(ctx context.Context) ([]model.PayrollPeriod, error)
	GetByID(ctx context.Context, id string) (*model.PayrollPeriod, error)
	// GetForDate returns the period whose [start_date, end_date] contains the
	// date; at most one exists by construction.
	GetForDate(ctx context.Context, date time.Time) (*model.PayrollPeriod, error)
	// Next returns the period with the smallest start_date strictly after the
	// given date, Prev the one with the largest end_date strictly before it.
	Next(ctx context.Context, after time.Time) (*model.PayrollPeriod, error)
	Prev(ctx context.Context, before time.Time) (*model.PayrollPeriod, error)
	// ReplaceAll destructively regenerates the period set and records the new
	// anchor date, all in one transaction.
	ReplaceAll(ctx context.Context, anchor time.Time, periods []model.PayrollPeriod) error
}

type payrollPeriodRepo struct {
	db *gorm.DB
}

// NewPayrollPeriodRepo creates a PayrollPeriodRepository.
func NewPayrollPeriodRepo(db *gorm.DB) PayrollPeriodRepository {
	return &payrollPeriodRepo{db: db}
}

func (r *payrollPeriodRepo) List(ctx context.Context) ([]model.PayrollPeriod, error) {
	var periods []model.PayrollPeriod
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&periods).Error
	return periods, err
}

func (r *payrollPeriodRepo) GetByID(ctx context.Context, id string) (*model.PayrollPeriod, error) {
	var period model.PayrollPeriod
	err := r.db.WithContext(ctx).
		Where("payroll_period_id = ?", id).
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *payrollPeriodRepo) GetForDate(ctx context.Context, date time.Time) (*model.PayrollPeriod, error) {
	var period model.PayrollPeriod
	err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", date, date).
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *payrollPeriodRepo) Next(ctx context.Context, after time.Time) (*model.PayrollPeriod, error) {
	var period model.PayrollPeriod
	err := r.db.WithContext(ctx).
		Where("start_date > ?", after).
		Order("start_date ASC").
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *payrollPeriodRepo) Prev(ctx context.Context, before time.Time) (*model.PayrollPeriod, error) {
	var period model.PayrollPeriod
	err := r.db.WithContext(ctx).
		Where("end_date < ?", before).
		Order("end_date DESC").
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *payrollPeriodRepo) ReplaceAll(ctx context.Context, anchor time.Time, periods []model.PayrollPeriod) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.PayrollPeriod{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&periods).Error; err != nil {
			return err
		}
		setting := model.AppSetting{
			Key:       model.SettingPayrollAnchor,
			Value:     anchor.Format(model.DateFormat),
			Version:   1,
			UpdatedAt: time.Now(),
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value":      setting.Value,
				"version":    gorm.Expr("app_settings.version + 1"),
				"updated_at": setting.UpdatedAt,
			}),
		}).Create(&setting).Error
	})
}
