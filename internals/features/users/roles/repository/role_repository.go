package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	roleModel "basamu_backend/internals/features/users/roles/model"
)

type Repository interface {
	// HasRole reports whether a row with exactly this role exists; zero rows is (false, nil).
	HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error)
	Grant(ctx context.Context, userID uuid.UUID, role string) error
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&roleModel.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Limit(1).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *gormRepository) Grant(ctx context.Context, userID uuid.UUID, role string) error {
	row := roleModel.UserRole{UserID: userID, Role: role}
	return r.db.WithContext(ctx).
		Where(roleModel.UserRole{UserID: userID, Role: role}).
		FirstOrCreate(&row).Error
}

// Memory keeps roles in a map. Err, when set, fails every lookup.
type Memory struct {
	mu    sync.Mutex
	roles map[uuid.UUID]map[string]bool
	Err   error
	calls int
}

func NewMemory() *Memory {
	return &Memory{roles: map[uuid.UUID]map[string]bool{}}
}

func (m *Memory) HasRole(_ context.Context, userID uuid.UUID, role string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return false, m.Err
	}
	return m.roles[userID][role], nil
}

func (m *Memory) Grant(_ context.Context, userID uuid.UUID, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.roles[userID] == nil {
		m.roles[userID] = map[string]bool{}
	}
	m.roles[userID][role] = true
	return nil
}

// Lookups counts HasRole calls.
func (m *Memory) Lookups() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *Memory) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}
