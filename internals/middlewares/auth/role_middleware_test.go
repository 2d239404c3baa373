package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "basamu_backend/internals/helpers"
)

type stubGate struct {
	admins map[uuid.UUID]bool
	err    error
	calls  int
}

func (g *stubGate) IsAdmin(_ context.Context, userID uuid.UUID) (bool, error) {
	g.calls++
	if g.err != nil {
		return false, g.err
	}
	return g.admins[userID], nil
}

func appWith(userID uuid.UUID, gate AdminChecker) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		if userID != uuid.Nil {
			c.Locals(helper.LocalUserID, userID.String())
		}
		return c.Next()
	})
	app.Get("/admin", RequireAdmin(gate), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/public", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"can_edit": CanEdit(c, gate)})
	})
	return app
}

func TestRequireAdmin(t *testing.T) {
	admin, member := uuid.New(), uuid.New()

	tests := []struct {
		name   string
		user   uuid.UUID
		gate   *stubGate
		status int
	}{
		{"admin passes", admin, &stubGate{admins: map[uuid.UUID]bool{admin: true}}, http.StatusOK},
		{"no role row", member, &stubGate{admins: map[uuid.UUID]bool{admin: true}}, http.StatusForbidden},
		{"lookup failure fails closed", admin, &stubGate{err: errors.New("network down")}, http.StatusForbidden},
		{"anonymous", uuid.Nil, &stubGate{}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := appWith(tt.user, tt.gate).Test(httptest.NewRequest(http.MethodGet, "/admin", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRequireAdminChecksEveryRequest(t *testing.T) {
	admin := uuid.New()
	gate := &stubGate{admins: map[uuid.UUID]bool{admin: true}}
	app := appWith(admin, gate)

	for i := 0; i < 3; i++ {
		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil), -1)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, gate.calls)

	delete(gate.admins, admin)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "revocation applies on the next request")
}

func canEdit(t *testing.T, user uuid.UUID, gate AdminChecker) bool {
	t.Helper()
	resp, err := appWith(user, gate).Test(httptest.NewRequest(http.MethodGet, "/public", nil), -1)
	require.NoError(t, err)
	var body struct {
		CanEdit bool `json:"can_edit"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.CanEdit
}

func TestCanEdit(t *testing.T) {
	admin := uuid.New()
	ok := &stubGate{admins: map[uuid.UUID]bool{admin: true}}

	assert.True(t, canEdit(t, admin, ok))
	assert.False(t, canEdit(t, uuid.New(), ok))
	assert.False(t, canEdit(t, admin, &stubGate{err: errors.New("boom")}))

	anon := &stubGate{}
	assert.False(t, canEdit(t, uuid.Nil, anon))
	assert.Zero(t, anon.calls, "anonymous callers never hit the gate")
}
