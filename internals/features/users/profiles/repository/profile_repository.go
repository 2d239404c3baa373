package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"basamu_backend/internals/features/users/profiles/model"
)

var ErrNotFound = errors.New("profile not found")

// Repository only ever touches the caller's own row, keyed by user id.
type Repository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.ProfileModel, error)
	UpsertNames(ctx context.Context, userID uuid.UUID, first, last string) (*model.ProfileModel, error)
	SetAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) (*model.ProfileModel, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.ProfileModel, error) {
	var m model.ProfileModel
	err := r.db.WithContext(ctx).Where("profile_user_id = ?", userID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *gormRepository) upsert(ctx context.Context, row *model.ProfileModel, columns ...string) (*model.ProfileModel, error) {
	row.ProfileUpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_user_id"}},
		DoUpdates: clause.AssignmentColumns(append(columns, "profile_updated_at")),
	}).Create(row).Error
	if err != nil {
		return nil, err
	}
	return r.FindByUserID(ctx, row.ProfileUserID)
}

func (r *gormRepository) UpsertNames(ctx context.Context, userID uuid.UUID, first, last string) (*model.ProfileModel, error) {
	return r.upsert(ctx, &model.ProfileModel{
		ProfileUserID:    userID,
		ProfileFirstName: first,
		ProfileLastName:  last,
	}, "profile_first_name", "profile_last_name")
}

func (r *gormRepository) SetAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) (*model.ProfileModel, error) {
	return r.upsert(ctx, &model.ProfileModel{
		ProfileUserID:    userID,
		ProfileAvatarURL: &avatarURL,
	}, "profile_avatar_url")
}
