// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	authModel "basamu_backend/internals/features/users/auth/model"
	userModel "basamu_backend/internals/features/users/user/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrTokenNotActive = errors.New("refresh token not active")
)

type Repository interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
	FindUserByEmail(ctx context.Context, email string) (*userModel.UserModel, error)
	FindUserByGoogleID(ctx context.Context, googleID string) (*userModel.UserModel, error)
	CreateUser(ctx context.Context, u *userModel.UserModel) error
	LinkGoogleID(ctx context.Context, userID uuid.UUID, googleID string) error
	UpdateUserPassword(ctx context.Context, userID uuid.UUID, hash string) error
	UpdateUserMetadata(ctx context.Context, userID uuid.UUID, meta datatypes.JSON) error

	CreateRefreshToken(ctx context.Context, rt *authModel.RefreshTokenModel) error
	FindActiveRefreshToken(ctx context.Context, hash string, now time.Time) (*authModel.RefreshTokenModel, error)
	RevokeRefreshToken(ctx context.Context, id uuid.UUID, at time.Time) error
	RevokeUserRefreshTokens(ctx context.Context, userID uuid.UUID, at time.Time) error

	BlacklistToken(ctx context.Context, token string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
	CleanupExpiredBlacklist(ctx context.Context, before time.Time, limit int) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

/* ====================== USER ====================== */

func (r *gormRepository) findUser(ctx context.Context, query string, args ...any) (*userModel.UserModel, error) {
	var user userModel.UserModel
	err := r.db.WithContext(ctx).Where(query, args...).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	return r.findUser(ctx, "id = ?", id)
}

func (r *gormRepository) FindUserByEmail(ctx context.Context, email string) (*userModel.UserModel, error) {
	return r.findUser(ctx, "email = ?", userModel.NormalizeEmail(email))
}

func (r *gormRepository) FindUserByGoogleID(ctx context.Context, googleID string) (*userModel.UserModel, error) {
	return r.findUser(ctx, "google_id = ?", googleID)
}

func (r *gormRepository) CreateUser(ctx context.Context, u *userModel.UserModel) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}

func (r *gormRepository) updateUser(ctx context.Context, userID uuid.UUID, column string, value any) error {
	res := r.db.WithContext(ctx).Model(&userModel.UserModel{}).Where("id = ?", userID).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *gormRepository) LinkGoogleID(ctx context.Context, userID uuid.UUID, googleID string) error {
	return r.updateUser(ctx, userID, "google_id", googleID)
}

func (r *gormRepository) UpdateUserPassword(ctx context.Context, userID uuid.UUID, hash string) error {
	return r.updateUser(ctx, userID, "password", hash)
}

func (r *gormRepository) UpdateUserMetadata(ctx context.Context, userID uuid.UUID, meta datatypes.JSON) error {
	return r.updateUser(ctx, userID, "metadata", meta)
}

/* ====================== REFRESH TOKEN ====================== */

func (r *gormRepository) CreateRefreshToken(ctx context.Context, rt *authModel.RefreshTokenModel) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *gormRepository) FindActiveRefreshToken(ctx context.Context, hash string, now time.Time) (*authModel.RefreshTokenModel, error) {
	var rt authModel.RefreshTokenModel
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", hash, now).
		Take(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTokenNotActive
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *gormRepository) RevokeRefreshToken(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&authModel.RefreshTokenModel{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at).Error
}

func (r *gormRepository) RevokeUserRefreshTokens(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&authModel.RefreshTokenModel{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", at).Error
}

/* ====================== BLACKLIST ====================== */

func (r *gormRepository) BlacklistToken(ctx context.Context, token string, expiresAt time.Time) error {
	entry := authModel.TokenBlacklist{Token: token, ExpiredAt: expiresAt}
	return r.db.WithContext(ctx).Where(authModel.TokenBlacklist{Token: token}).FirstOrCreate(&entry).Error
}

func (r *gormRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&authModel.TokenBlacklist{}).Where("token = ?", token).Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *gormRepository) CleanupExpiredBlacklist(ctx context.Context, before time.Time, limit int) (int64, error) {
	sub := r.db.Model(&authModel.TokenBlacklist{}).Select("id").Where("expired_at < ?", before).Limit(limit)
	res := r.db.WithContext(ctx).Where("id IN (?)", sub).Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
