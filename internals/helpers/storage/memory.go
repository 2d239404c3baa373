package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryStore is an in-process Store for tests and local runs. Public URLs use the
// same "/object/public/" layout as Supabase.
type MemoryStore struct {
	mu      sync.Mutex
	base    string
	objects map[string]Object

	UploadErr error
	DeleteErr error

	uploads int
	deletes int
}

type Object struct {
	Body        []byte
	ContentType string
}

func NewMemoryStore(base string) *MemoryStore {
	if base == "" {
		base = "http://localhost/storage/v1"
	}
	return &MemoryStore{
		base:    strings.TrimRight(base, "/"),
		objects: map[string]Object{},
	}
}

func (m *MemoryStore) Upload(ctx context.Context, bucket, path string, body []byte, contentType string, upsert bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads++
	if m.UploadErr != nil {
		return m.UploadErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	key := objectKey(bucket, path)
	if _, exists := m.objects[key]; exists && !upsert {
		return fmt.Errorf("memory upload: %s already exists", key)
	}
	m.objects[key] = Object{Body: append([]byte(nil), body...), ContentType: contentType}
	return nil
}

func (m *MemoryStore) PublicURL(bucket, path string) string {
	return m.base + "/object/public/" + bucket + "/" + escapePath(path)
}

func (m *MemoryStore) Delete(ctx context.Context, bucket, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	key := objectKey(bucket, path)
	if _, ok := m.objects[key]; !ok {
		return ErrNotFound
	}
	delete(m.objects, key)
	return nil
}

func (m *MemoryStore) PathFromURL(bucket, publicURL string) (string, error) {
	return publicPathFromURL(bucket, publicURL)
}

func (m *MemoryStore) Get(bucket, path string) (Object, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.objects[objectKey(bucket, path)]
	return o, ok
}

// Uploads reports how many upload calls reached the store, failed ones included.
func (m *MemoryStore) Uploads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploads
}

func (m *MemoryStore) Deletes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deletes
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
