package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	authModel "basamu_backend/internals/features/users/auth/model"
	userModel "basamu_backend/internals/features/users/user/model"
)

// Memory is an in-process Repository for tests and the memory storage profile.
type Memory struct {
	mu        sync.Mutex
	users     map[uuid.UUID]userModel.UserModel
	refresh   map[uuid.UUID]authModel.RefreshTokenModel
	blacklist map[string]time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users:     map[uuid.UUID]userModel.UserModel{},
		refresh:   map[uuid.UUID]authModel.RefreshTokenModel{},
		blacklist: map[string]time.Time{},
	}
}

func (m *Memory) FindUserByID(_ context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (m *Memory) FindUserByEmail(_ context.Context, email string) (*userModel.UserModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = userModel.NormalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *Memory) FindUserByGoogleID(_ context.Context, googleID string) (*userModel.UserModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *Memory) CreateUser(_ context.Context, u *userModel.UserModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	if len(u.Metadata) == 0 {
		u.Metadata = datatypes.JSON(`{}`)
	}
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) mutateUser(id uuid.UUID, fn func(*userModel.UserModel)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return ErrUserNotFound
	}
	fn(&u)
	u.UpdatedAt = time.Now()
	m.users[id] = u
	return nil
}

func (m *Memory) LinkGoogleID(_ context.Context, userID uuid.UUID, googleID string) error {
	return m.mutateUser(userID, func(u *userModel.UserModel) { u.GoogleID = &googleID })
}

func (m *Memory) UpdateUserPassword(_ context.Context, userID uuid.UUID, hash string) error {
	return m.mutateUser(userID, func(u *userModel.UserModel) { u.Password = &hash })
}

func (m *Memory) UpdateUserMetadata(_ context.Context, userID uuid.UUID, meta datatypes.JSON) error {
	return m.mutateUser(userID, func(u *userModel.UserModel) { u.Metadata = meta })
}

// SetActive toggles an account; used to exercise deactivated users.
func (m *Memory) SetActive(userID uuid.UUID, active bool) error {
	return m.mutateUser(userID, func(u *userModel.UserModel) { u.IsActive = active })
}

func (m *Memory) CreateRefreshToken(_ context.Context, rt *authModel.RefreshTokenModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	rt.CreatedAt = time.Now()
	m.refresh[rt.ID] = *rt
	return nil
}

func (m *Memory) FindActiveRefreshToken(_ context.Context, hash string, now time.Time) (*authModel.RefreshTokenModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rt := range m.refresh {
		if rt.TokenHash == hash && rt.RevokedAt == nil && rt.ExpiresAt.After(now) {
			return &rt, nil
		}
	}
	return nil, ErrTokenNotActive
}

func (m *Memory) RevokeRefreshToken(_ context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rt, ok := m.refresh[id]; ok && rt.RevokedAt == nil {
		rt.RevokedAt = &at
		m.refresh[id] = rt
	}
	return nil
}

func (m *Memory) RevokeUserRefreshTokens(_ context.Context, userID uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, rt := range m.refresh {
		if rt.UserID == userID && rt.RevokedAt == nil {
			rt.RevokedAt = &at
			m.refresh[id] = rt
		}
	}
	return nil
}

// ActiveRefreshTokens counts unrevoked tokens for a user.
func (m *Memory) ActiveRefreshTokens(userID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, rt := range m.refresh {
		if rt.UserID == userID && rt.RevokedAt == nil {
			n++
		}
	}
	return n
}

func (m *Memory) BlacklistToken(_ context.Context, token string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blacklist[token]; !ok {
		m.blacklist[token] = expiresAt
	}
	return nil
}

func (m *Memory) IsBlacklisted(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blacklist[token]
	return ok, nil
}

func (m *Memory) CleanupExpiredBlacklist(_ context.Context, before time.Time, limit int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expired := make([]string, 0)
	for tok, exp := range m.blacklist {
		if exp.Before(before) {
			expired = append(expired, tok)
		}
	}
	sort.Strings(expired)
	if limit > 0 && len(expired) > limit {
		expired = expired[:limit]
	}
	for _, tok := range expired {
		delete(m.blacklist, tok)
	}
	return int64(len(expired)), nil
}
