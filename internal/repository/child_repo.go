package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/solidus85/evvie-time-tracker/internal/model"
)

// ChildRepository is the client data-access interface.
type ChildRepository interface {
	Create(ctx context.Context, child *model.Child) error
	GetByID(ctx context.Context, id string) (*model.Child, error)
	GetByCode(ctx context.Context, code string) (*model.Child, error)
	List(ctx context.Context, activeOnly bool) ([]model.Child, error)
	Update(ctx context.Context, child *model.Child) error
}

type childRepo struct {
	db *gorm.DB
}

// NewChildRepo creates a ChildRepository.
func NewChildRepo(db *gorm.DB) ChildRepository {
	return &childRepo{db: db}
}

func (r *childRepo) Create(ctx context.Context, child *model.Child) error {
	return r.db.WithContext(ctx).Create(child).Error
}

func (r *childRepo) GetByID(ctx context.Context, id string) (*model.Child, error) {
	var child model.Child
	err := r.db.WithContext(ctx).
		Where("child_id = ?", id).
		First(&child).Error
	if err != nil {
		return nil, err
	}
	return &child, nil
}

func (r *childRepo) GetByCode(ctx context.Context, code string) (*model.Child, error) {
	var child model.Child
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&child).Error
	if err != nil {
		return nil, err
	}
	return &child, nil
}

func (r *childRepo) List(ctx context.Context, activeOnly bool) ([]model.Child, error) {
	var children []model.Child
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&children).Error
	return children, err
}

func (r *childRepo) Update(ctx context.Context, child *model.Child) error {
	return r.db.WithContext(ctx).Save(child).Error
}
