package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"basamu_backend/internals/features/content/home/model"
)

type Memory struct {
	mu      sync.Mutex
	row     *model.HomeContentModel
	Err     error
	updates int
}

func NewMemory() *Memory {
	return &Memory{}
}

// Seed provisions the singleton row the way an operator would.
func (m *Memory) Seed(row model.HomeContentModel) model.HomeContentModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row.HomeContentID == uuid.Nil {
		row.HomeContentID = uuid.New()
	}
	m.row = &row
	return row
}

func (m *Memory) Get(_ context.Context) (*model.HomeContentModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.row == nil {
		return nil, ErrContentNotFound
	}
	row := *m.row
	return &row, nil
}

func (m *Memory) Update(_ context.Context, id uuid.UUID, d model.HomeContentDetails) (*model.HomeContentModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.row == nil || m.row.HomeContentID != id {
		return nil, ErrContentNotFound
	}
	m.row.HomeHeroTitle = d.HeroTitle
	m.row.HomeHeroSubtitle = d.HeroSubtitle
	m.row.HomeMissionText = d.MissionText
	m.row.HomeVisionText = d.VisionText
	m.row.HomeSlogan = d.Slogan
	m.row.HomeHeroImageURL = d.HeroImageURL
	m.row.HomeChairpersonEmail = d.ChairpersonEmail
	m.row.HomeUpdatedAt = time.Now()
	row := *m.row
	return &row, nil
}

// Updates counts Update calls that reached the repository.
func (m *Memory) Updates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updates
}

// Rows is 0 or 1.
func (m *Memory) Rows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.row == nil {
		return 0
	}
	return 1
}
