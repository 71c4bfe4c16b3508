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
	ErrHourLimitNotFound = errors.New("hour limit not found")
	ErrHourLimitExists   = errors.New("an hour limit already exists for this employee/child pair")
	ErrThresholdTooHigh  = errors.New("alert threshold must be below the weekly maximum")
)

// ConfigService owns weekly hour limits and the versioned app settings.
type ConfigService interface {
	ListHourLimits(ctx context.Context, req *dto.HourLimitListRequest) ([]dto.HourLimitResponse, error)
	CreateHourLimit(ctx context.Context, req *dto.CreateHourLimitRequest) (*dto.HourLimitResponse, error)
	UpdateHourLimit(ctx context.Context, id string, req *dto.UpdateHourLimitRequest) (*dto.HourLimitResponse, error)
	DeactivateHourLimit(ctx context.Context, id string) error

	GetSettings(ctx context.Context) ([]dto.AppSettingResponse, error)
	UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) error
}

type configService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewConfigService(repo *repository.Repository, logger *zap.Logger) ConfigService {
	return &configService{repo: repo, logger: logger}
}

// ── hour limits ──

func (s *configService) ListHourLimits(ctx context.Context, req *dto.HourLimitListRequest) ([]dto.HourLimitResponse, error) {
	limits, err := s.repo.HourLimit.List(ctx, req.ActiveOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HourLimitResponse, 0, len(limits))
	for i := range limits {
		out = append(out, *toHourLimitResponse(&limits[i]))
	}
	return out, nil
}

func (s *configService) CreateHourLimit(ctx context.Context, req *dto.CreateHourLimitRequest) (*dto.HourLimitResponse, error) {
	if req.AlertThreshold != nil && *req.AlertThreshold >= req.MaxHoursPerWeek {
		return nil, ErrThresholdTooHigh
	}
	if _, err := s.repo.Employee.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Child.GetByID(ctx, req.ChildID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}
	if _, err := s.repo.HourLimit.GetActiveByPair(ctx, req.EmployeeID, req.ChildID); err == nil {
		return nil, ErrHourLimitExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	limit := &model.HourLimit{
		EmployeeID:      req.EmployeeID,
		ChildID:         req.ChildID,
		MaxHoursPerWeek: req.MaxHoursPerWeek,
		AlertThreshold:  req.AlertThreshold,
		Active:          true,
	}
	if err := s.repo.HourLimit.Create(ctx, limit); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrHourLimitExists
		}
		return nil, err
	}
	s.logger.Info("hour limit created",
		zap.String("hour_limit_id", limit.HourLimitID),
		zap.Float64("max_hours_per_week", limit.MaxHoursPerWeek))
	return toHourLimitResponse(limit), nil
}

func (s *configService) UpdateHourLimit(ctx context.Context, id string, req *dto.UpdateHourLimitRequest) (*dto.HourLimitResponse, error) {
	limit, err := s.repo.HourLimit.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHourLimitNotFound
		}
		return nil, err
	}
	if req.MaxHoursPerWeek != nil {
		limit.MaxHoursPerWeek = *req.MaxHoursPerWeek
	}
	if req.AlertThreshold != nil {
		limit.AlertThreshold = req.AlertThreshold
	}
	if req.Active != nil {
		limit.Active = *req.Active
	}
	if limit.AlertThreshold != nil && *limit.AlertThreshold >= limit.MaxHoursPerWeek {
		return nil, ErrThresholdTooHigh
	}
	if err := s.repo.HourLimit.Update(ctx, limit); err != nil {
		return nil, err
	}
	return toHourLimitResponse(limit), nil
}

func (s *configService) DeactivateHourLimit(ctx context.Context, id string) error {
	limit, err := s.repo.HourLimit.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHourLimitNotFound
		}
		return err
	}
	limit.Active = false
	return s.repo.HourLimit.Update(ctx, limit)
}

// ── app settings ──

func (s *configService) GetSettings(ctx context.Context) ([]dto.AppSettingResponse, error) {
	settings, err := s.repo.AppSetting.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AppSettingResponse, 0, len(settings))
	for _, setting := range settings {
		out = append(out, dto.AppSettingResponse{
			Key:       setting.Key,
			Value:     setting.Value,
			Version:   setting.Version,
			UpdatedAt: setting.UpdatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (s *configService) UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) error {
	for key, value := range req.Settings {
		if key == model.SettingPayrollAnchor {
			if _, err := parseDate(value); err != nil {
				return validationErrorf("%v", err)
			}
		}
		if err := s.repo.AppSetting.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

func toHourLimitResponse(l *model.HourLimit) *dto.HourLimitResponse {
	out := &dto.HourLimitResponse{
		ID:              l.HourLimitID,
		EmployeeID:      l.EmployeeID,
		ChildID:         l.ChildID,
		MaxHoursPerWeek: l.MaxHoursPerWeek,
		AlertThreshold:  l.AlertThreshold,
		Active:          l.Active,
	}
	if l.Employee != nil {
		out.EmployeeName = l.Employee.FriendlyName
	}
	if l.Child != nil {
		out.ChildName = l.Child.Name
	}
	return out
}
