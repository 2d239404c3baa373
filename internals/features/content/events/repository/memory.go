package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"basamu_backend/internals/features/content/events/model"
)

type Memory struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]model.EventModel
	Err     error
	creates int
}

func NewMemory() *Memory {
	return &Memory{rows: map[uuid.UUID]model.EventModel{}}
}

func (m *Memory) Create(_ context.Context, e *model.EventModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.Err != nil {
		return m.Err
	}
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	now := time.Now()
	e.EventCreatedAt, e.EventUpdatedAt = now, now
	m.rows[e.EventID] = *e
	return nil
}

func (m *Memory) Update(_ context.Context, id uuid.UUID, d model.EventDetails) (*model.EventModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	row, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	row.EventTitle = d.Title
	row.EventDescription = d.Description
	row.EventDate = d.Date
	row.EventMediaLink = d.MediaLink
	row.EventUpdatedAt = time.Now()
	m.rows[id] = row
	return &row, nil
}

func (m *Memory) List(_ context.Context) ([]model.EventModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]model.EventModel, 0, len(m.rows))
	for _, e := range m.rows {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].EventDate, out[j].EventDate
		switch {
		case a == nil && b == nil:
			return out[i].EventCreatedAt.After(out[j].EventCreatedAt)
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.After(*b)
		default:
			return out[i].EventCreatedAt.After(out[j].EventCreatedAt)
		}
	})
	return out, nil
}

func (m *Memory) Creates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creates
}
