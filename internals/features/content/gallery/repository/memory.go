package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"basamu_backend/internals/features/content/gallery/model"
)

// Memory is an in-process Repository. CreateErr and DeleteErr fail those calls only.
type Memory struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]model.CulturalImageModel
	CreateErr error
	DeleteErr error
	creates   int
	now       func() time.Time
}

func NewMemory() *Memory {
	// strictly increasing timestamps keep newest-first ordering deterministic
	var tick int64
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &Memory{
		rows: map[uuid.UUID]model.CulturalImageModel{},
		now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		},
	}
}

func (m *Memory) Create(_ context.Context, img *model.CulturalImageModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if img.CulturalImageID == uuid.Nil {
		img.CulturalImageID = uuid.New()
	}
	if img.CulturalImageCreatedAt.IsZero() {
		img.CulturalImageCreatedAt = m.now()
	}
	m.rows[img.CulturalImageID] = *img
	return nil
}

func (m *Memory) FindByID(_ context.Context, id uuid.UUID) (*model.CulturalImageModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (m *Memory) List(_ context.Context) ([]model.CulturalImageModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.CulturalImageModel, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CulturalImageCreatedAt.After(out[j].CulturalImageCreatedAt)
	})
	return out, nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *Memory) Creates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creates
}
