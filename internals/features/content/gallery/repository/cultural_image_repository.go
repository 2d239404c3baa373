package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"basamu_backend/internals/features/content/gallery/model"
)

var ErrNotFound = errors.New("cultural image not found")

type Repository interface {
	Create(ctx context.Context, m *model.CulturalImageModel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CulturalImageModel, error)
	// List returns images newest first.
	List(ctx context.Context) ([]model.CulturalImageModel, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, m *model.CulturalImageModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CulturalImageModel, error) {
	var m model.CulturalImageModel
	err := r.db.WithContext(ctx).Where("cultural_image_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) List(ctx context.Context) ([]model.CulturalImageModel, error) {
	var rows []model.CulturalImageModel
	err := r.db.WithContext(ctx).Order("cultural_image_created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("cultural_image_id = ?", id).Delete(&model.CulturalImageModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
