package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"basamu_backend/internals/features/content/executives/model"
)

// Memory is an in-process Repository. Err, when set, fails every call.
type Memory struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]model.ExecutiveModel
	Err     error
	creates int
}

func NewMemory() *Memory {
	return &Memory{rows: map[uuid.UUID]model.ExecutiveModel{}}
}

func (m *Memory) Create(_ context.Context, e *model.ExecutiveModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.Err != nil {
		return m.Err
	}
	if e.ExecutiveID == uuid.Nil {
		e.ExecutiveID = uuid.New()
	}
	now := time.Now()
	e.ExecutiveCreatedAt, e.ExecutiveUpdatedAt = now, now
	m.rows[e.ExecutiveID] = *e
	return nil
}

func (m *Memory) mutate(id uuid.UUID, fn func(*model.ExecutiveModel)) (*model.ExecutiveModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	row, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	fn(&row)
	row.ExecutiveUpdatedAt = time.Now()
	m.rows[id] = row
	return &row, nil
}

func (m *Memory) UpdateDetails(_ context.Context, id uuid.UUID, d model.ExecutiveDetails) (*model.ExecutiveModel, error) {
	return m.mutate(id, func(e *model.ExecutiveModel) {
		e.ExecutiveName = d.Name
		e.ExecutivePosition = d.Position
		e.ExecutiveRole = d.Role
		e.ExecutiveYear = d.Year
		e.ExecutiveRank = d.Rank
		e.ExecutiveEmail = d.Email
	})
}

func (m *Memory) UpdatePhoto(_ context.Context, id uuid.UUID, photoURL string) (*model.ExecutiveModel, error) {
	return m.mutate(id, func(e *model.ExecutiveModel) {
		e.ExecutivePhotoURL = &photoURL
	})
}

func (m *Memory) List(_ context.Context, year string) ([]model.ExecutiveModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]model.ExecutiveModel, 0, len(m.rows))
	for _, e := range m.rows {
		if year == "" || e.ExecutiveYear == year {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ExecutiveRank != b.ExecutiveRank {
			return a.ExecutiveRank < b.ExecutiveRank
		}
		if a.ExecutiveYear != b.ExecutiveYear {
			return a.ExecutiveYear > b.ExecutiveYear
		}
		return a.ExecutiveName < b.ExecutiveName
	})
	return out, nil
}

func (m *Memory) Years(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	seen := map[string]bool{}
	years := []string{}
	for _, e := range m.rows {
		if !seen[e.ExecutiveYear] {
			seen[e.ExecutiveYear] = true
			years = append(years, e.ExecutiveYear)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years, nil
}

// Creates counts Create calls, including failed ones.
func (m *Memory) Creates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creates
}
