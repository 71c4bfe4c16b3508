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
	ErrChildNotFound  = errors.New("child not found")
	ErrChildCodeTaken = errors.New("a child with this code already exists")
)

// ChildService owns client records. Same soft-deactivation lifecycle as
// employees.
type ChildService interface {
	List(ctx context.Context, req *dto.ChildListRequest) ([]dto.ChildResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ChildResponse, error)
	Create(ctx context.Context, req *dto.CreateChildRequest) (*dto.ChildResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateChildRequest) (*dto.ChildResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type childService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewChildService(repo *repository.Repository, logger *zap.Logger) ChildService {
	return &childService{repo: repo, logger: logger}
}

func (s *childService) List(ctx context.Context, req *dto.ChildListRequest) ([]dto.ChildResponse, error) {
	children, err := s.repo.Child.List(ctx, req.ActiveOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChildResponse, 0, len(children))
	for i := range children {
		out = append(out, *toChildResponse(&children[i]))
	}
	return out, nil
}

func (s *childService) GetByID(ctx context.Context, id string) (*dto.ChildResponse, error) {
	child, err := s.repo.Child.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}
	return toChildResponse(child), nil
}

func (s *childService) Create(ctx context.Context, req *dto.CreateChildRequest) (*dto.ChildResponse, error) {
	if _, err := s.repo.Child.GetByCode(ctx, req.Code); err == nil {
		return nil, ErrChildCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	child := &model.Child{Name: req.Name, Code: req.Code, Active: true}
	if err := s.repo.Child.Create(ctx, child); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrChildCodeTaken
		}
		return nil, err
	}
	s.logger.Info("child created",
		zap.String("child_id", child.ChildID),
		zap.String("code", child.Code))
	return toChildResponse(child), nil
}

func (s *childService) Update(ctx context.Context, id string, req *dto.UpdateChildRequest) (*dto.ChildResponse, error) {
	child, err := s.repo.Child.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}
	if req.Name != nil {
		child.Name = *req.Name
	}
	if req.Code != nil {
		child.Code = *req.Code
	}
	if req.Active != nil {
		child.Active = *req.Active
	}
	if err := s.repo.Child.Update(ctx, child); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrChildCodeTaken
		}
		return nil, err
	}
	return toChildResponse(child), nil
}

func (s *childService) Deactivate(ctx context.Context, id string) error {
	child, err := s.repo.Child.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChildNotFound
		}
		return err
	}
	child.Active = false
	return s.repo.Child.Update(ctx, child)
}

func toChildResponse(c *model.Child) *dto.ChildResponse {
	return &dto.ChildResponse{
		ID:        c.ChildID,
		Name:      c.Name,
		Code:      c.Code,
		Active:    c.Active,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}
