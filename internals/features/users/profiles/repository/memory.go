package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"basamu_backend/internals/features/users/profiles/model"
)

type Memory struct {
	mu   sync.Mutex
	rows map[uuid.UUID]model.ProfileModel
	Err  error
}

func NewMemory() *Memory {
	return &Memory{rows: map[uuid.UUID]model.ProfileModel{}}
}

func (m *Memory) FindByUserID(_ context.Context, userID uuid.UUID) (*model.ProfileModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	row, ok := m.rows[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (m *Memory) upsert(userID uuid.UUID, fn func(*model.ProfileModel)) (*model.ProfileModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	now := time.Now()
	row, ok := m.rows[userID]
	if !ok {
		row = model.ProfileModel{ProfileID: uuid.New(), ProfileUserID: userID, ProfileCreatedAt: now}
	}
	fn(&row)
	row.ProfileUpdatedAt = now
	m.rows[userID] = row
	return &row, nil
}

func (m *Memory) UpsertNames(_ context.Context, userID uuid.UUID, first, last string) (*model.ProfileModel, error) {
	return m.upsert(userID, func(p *model.ProfileModel) {
		p.ProfileFirstName, p.ProfileLastName = first, last
	})
}

func (m *Memory) SetAvatar(_ context.Context, userID uuid.UUID, avatarURL string) (*model.ProfileModel, error) {
	return m.upsert(userID, func(p *model.ProfileModel) {
		p.ProfileAvatarURL = &avatarURL
	})
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
