// Package inflight rejects a second submission of the same form while the first
// one is still being processed.
package inflight

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Guard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func New() *Guard {
	return &Guard{active: map[string]struct{}{}}
}

// Acquire claims key. ok is false when key is already held; release is idempotent.
func (g *Guard) Acquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[key]; busy {
		return func() {}, false
	}
	g.active[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, key)
			g.mu.Unlock()
		})
	}, true
}

func (g *Guard) Held(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.active[key]
	return busy
}

func Key(userID uuid.UUID, form string) string {
	return userID.String() + ":" + form
}

// Middleware holds the (user, form) key for the duration of the handler and
// answers 409 while it is taken.
func (g *Guard) Middleware(form string, userOf func(*fiber.Ctx) uuid.UUID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		release, ok := g.Acquire(Key(userOf(c), form))
		if !ok {
			return fiber.NewError(fiber.StatusConflict, "submission already in progress")
		}
		defer release()
		return c.Next()
	}
}
