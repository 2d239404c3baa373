package inflight

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	g := New()
	user := uuid.New()

	release, ok := g.Acquire(Key(user, "executive"))
	require.True(t, ok)
	assert.True(t, g.Held(Key(user, "executive")))

	_, ok = g.Acquire(Key(user, "executive"))
	assert.False(t, ok, "second submission of the same form is rejected")

	other, ok := g.Acquire(Key(user, "event"))
	assert.True(t, ok, "different forms are independent")
	other()

	release()
	release()
	assert.False(t, g.Held(Key(user, "executive")))

	again, ok := g.Acquire(Key(user, "executive"))
	assert.True(t, ok)
	again()
}

func TestMiddlewareRejectsConcurrentSubmission(t *testing.T) {
	g := New()
	user := uuid.New()
	entered := make(chan struct{})
	unblock := make(chan struct{})

	app := fiber.New()
	app.Post("/submit", g.Middleware("gallery", func(*fiber.Ctx) uuid.UUID { return user }), func(c *fiber.Ctx) error {
		close(entered)
		<-unblock
		return c.SendStatus(fiber.StatusCreated)
	})

	var wg sync.WaitGroup
	var first *http.Response
	wg.Add(1)
	go func() {
		defer wg.Done()
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/submit", nil), -1)
		if err == nil {
			first = resp
		}
	}()

	<-entered
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/submit", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	close(unblock)
	wg.Wait()
	require.NotNil(t, first)
	assert.Equal(t, fiber.StatusCreated, first.StatusCode)
	assert.False(t, g.Held(Key(user, "gallery")))
}
