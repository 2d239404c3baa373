package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"basamu_backend/internals/features/content/executives/model"
)

var ErrNotFound = errors.New("executive not found")

type Repository interface {
	Create(ctx context.Context, m *model.ExecutiveModel) error
	UpdateDetails(ctx context.Context, id uuid.UUID, d model.ExecutiveDetails) (*model.ExecutiveModel, error)
	UpdatePhoto(ctx context.Context, id uuid.UUID, photoURL string) (*model.ExecutiveModel, error)
	// List orders by rank ascending, then year descending. Empty year means all years.
	List(ctx context.Context, year string) ([]model.ExecutiveModel, error)
	Years(ctx context.Context) ([]string, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, m *model.ExecutiveModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormRepository) update(ctx context.Context, id uuid.UUID, patch map[string]any) (*model.ExecutiveModel, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ExecutiveModel{}).
		Where("executive_id = ?", id).
		Updates(patch)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	var m model.ExecutiveModel
	if err := r.db.WithContext(ctx).Where("executive_id = ?", id).Take(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) UpdateDetails(ctx context.Context, id uuid.UUID, d model.ExecutiveDetails) (*model.ExecutiveModel, error) {
	return r.update(ctx, id, map[string]any{
		"executive_name":     d.Name,
		"executive_position": d.Position,
		"executive_role":     d.Role,
		"executive_year":     d.Year,
		"executive_rank":     d.Rank,
		"executive_email":    d.Email,
	})
}

func (r *gormRepository) UpdatePhoto(ctx context.Context, id uuid.UUID, photoURL string) (*model.ExecutiveModel, error) {
	return r.update(ctx, id, map[string]any{"executive_photo_url": photoURL})
}

func (r *gormRepository) List(ctx context.Context, year string) ([]model.ExecutiveModel, error) {
	q := r.db.WithContext(ctx).Model(&model.ExecutiveModel{})
	if year != "" {
		q = q.Where("executive_year = ?", year)
	}
	var rows []model.ExecutiveModel
	err := q.Order("executive_rank ASC").
		Order("executive_year DESC").
		Order("executive_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *gormRepository) Years(ctx context.Context) ([]string, error) {
	var years pq.StringArray
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(array_agg(DISTINCT executive_year ORDER BY executive_year DESC), '{}') FROM executives`).
		Row().
		Scan(&years)
	if err != nil {
		return nil, err
	}
	return []string(years), nil
}
