package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	userModel "basamu_backend/internals/features/users/user/model"
)

// Session is the signed-in user as every view sees it.
type Session struct {
	UserID    uuid.UUID              `json:"user_id"`
	Email     string                 `json:"email"`
	Metadata  userModel.UserMetadata `json:"metadata"`
	ExpiresAt time.Time              `json:"expires_at"`
}

type EventType string

const (
	EventSignedIn       EventType = "signed_in"
	EventSignedOut      EventType = "signed_out"
	EventTokenRefreshed EventType = "token_refreshed"
)

type Event struct {
	Type   EventType
	UserID uuid.UUID
	Email  string
	At     time.Time
}

// Hub fans session changes out to subscribers. Delivery is synchronous and in
// subscription order; a panicking subscriber is logged and skipped.
type Hub struct {
	mu   sync.RWMutex
	next uint64
	subs map[uint64]func(Event)
	ids  []uint64
}

func NewHub() *Hub {
	return &Hub{subs: map[uint64]func(Event){}}
}

// Subscribe registers fn and returns its unsubscribe func, which is safe to call twice.
func (h *Hub) Subscribe(fn func(Event)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = fn
	h.ids = append(h.ids, id)
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			for i, v := range h.ids {
				if v == id {
					h.ids = append(h.ids[:i], h.ids[i+1:]...)
					break
				}
			}
		})
	}
}

func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	fns := make([]func(Event), 0, len(h.ids))
	for _, id := range h.ids {
		fns = append(fns, h.subs[id])
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		deliver(fn, e)
	}
}

func deliver(fn func(Event), e Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("event", string(e.Type)).Msg("session subscriber panicked")
		}
	}()
	fn(e)
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// AuditSubscriber writes one log line per session change.
func AuditSubscriber(e Event) {
	log.Info().
		Str("event", string(e.Type)).
		Str("user_id", e.UserID.String()).
		Str("email", e.Email).
		Time("at", e.At).
		Msg("session change")
}
