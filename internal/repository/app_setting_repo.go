package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/solidus85/evvie-time-tracker/internal/model"
)

// AppSettingRepository is the versioned key/value settings interface.
type AppSettingRepository interface {
	Get(ctx context.Context, key string) (*model.AppSetting, error)
	List(ctx context.Context) ([]model.AppSetting, error)
	// Set upserts a value, bumping its version counter on update.
	Set(ctx context.Context, key, value string) error
}

type appSettingRepo struct {
	db *gorm.DB
}

// NewAppSettingRepo creates an AppSettingRepository.
func NewAppSettingRepo(db *gorm.DB) AppSettingRepository {
	return &appSettingRepo{db: db}
}

func (r *appSettingRepo) Get(ctx context.Context, key string) (*model.AppSetting, error) {
	var setting model.AppSetting
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *appSettingRepo) List(ctx context.Context) ([]model.AppSetting, error) {
	var settings []model.AppSetting
	err := r.db.WithContext(ctx).
		Order("key ASC").
		Find(&settings).Error
	return settings, err
}

func (r *appSettingRepo) Set(ctx context.Context, key, value string) error {
	setting := model.AppSetting{
		Key:       key,
		Value:     value,
		Version:   1,
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"version":    gorm.Expr("app_settings.version + 1"),
			"updated_at": setting.UpdatedAt,
		}),
	}).Create(&setting).Error
}
