package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"basamu_backend/internals/features/content/home/model"
)

var ErrContentNotFound = errors.New("content not found")

// Repository never inserts: the home row is provisioned outside this service.
type Repository interface {
	Get(ctx context.Context) (*model.HomeContentModel, error)
	Update(ctx context.Context, id uuid.UUID, d model.HomeContentDetails) (*model.HomeContentModel, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Get(ctx context.Context) (*model.HomeContentModel, error) {
	var m model.HomeContentModel
	err := r.db.WithContext(ctx).Order("home_updated_at DESC").Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) Update(ctx context.Context, id uuid.UUID, d model.HomeContentDetails) (*model.HomeContentModel, error) {
	res := r.db.WithContext(ctx).
		Model(&model.HomeContentModel{}).
		Where("home_content_id = ?", id).
		Updates(map[string]any{
			"home_hero_title":        d.HeroTitle,
			"home_hero_subtitle":     d.HeroSubtitle,
			"home_mission_text":      d.MissionText,
			"home_vision_text":       d.VisionText,
			"home_slogan":            d.Slogan,
			"home_hero_image_url":    d.HeroImageURL,
			"home_chairperson_email": d.ChairpersonEmail,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrContentNotFound
	}
	var m model.HomeContentModel
	if err := r.db.WithContext(ctx).Where("home_content_id = ?", id).Take(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
