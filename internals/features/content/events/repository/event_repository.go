package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"basamu_backend/internals/features/content/events/model"
)

var ErrNotFound = errors.New("event not found")

type Repository interface {
	Create(ctx context.Context, m *model.EventModel) error
	Update(ctx context.Context, id uuid.UUID, d model.EventDetails) (*model.EventModel, error)
	// List returns every event, newest date first; undated events last.
	List(ctx context.Context) ([]model.EventModel, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, m *model.EventModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormRepository) Update(ctx context.Context, id uuid.UUID, d model.EventDetails) (*model.EventModel, error) {
	res := r.db.WithContext(ctx).
		Model(&model.EventModel{}).
		Where("event_id = ?", id).
		Updates(map[string]any{
			"event_title":       d.Title,
			"event_description": d.Description,
			"event_date":        d.Date,
			"event_media_link":  d.MediaLink,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	var m model.EventModel
	if err := r.db.WithContext(ctx).Where("event_id = ?", id).Take(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) List(ctx context.Context) ([]model.EventModel, error) {
	var rows []model.EventModel
	err := r.db.WithContext(ctx).
		Order("event_date DESC NULLS LAST").
		Order("event_created_at DESC").
		Find(&rows).Error
	return rows, err
}
