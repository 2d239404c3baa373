package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basamu_backend/internals/constants"
	"basamu_backend/internals/features/users/auth/controller"
	authRepo "basamu_backend/internals/features/users/auth/repository"
	authRoute "basamu_backend/internals/features/users/auth/route"
	"basamu_backend/internals/features/users/auth/service"
	roleRepo "basamu_backend/internals/features/users/roles/repository"
	roleService "basamu_backend/internals/features/users/roles/service"
	helper "basamu_backend/internals/helpers"
	authMw "basamu_backend/internals/middlewares/auth"
)

type envelope struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code"`
	Errors    map[string][]string `json:"errors"`
	Data      json.RawMessage     `json:"data"`
}

type harness struct {
	app   *fiber.App
	roles *roleRepo.Memory
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	provider := service.NewProvider(authRepo.NewMemory(),
		service.NewTokens("access-secret", "refresh-secret", 15*time.Minute, time.Hour), nil)
	roles := roleRepo.NewMemory()
	ctrl := controller.NewAuthController(provider, roleService.NewGate(roles, nil), false)

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	authRoute.AuthRoutes(app, ctrl, provider)
	authRoute.UserAuthRoutes(app.Group("/api/u", authMw.AuthMiddleware(provider)), ctrl)
	return &harness{app: app, roles: roles}
}

func (h *harness) do(t *testing.T, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp, env
}

func (h *harness) register(t *testing.T, email string) (token string, userID uuid.UUID) {
	t.Helper()
	resp, env := h.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": "password123", "first_name": "Amani", "last_name": "Tumusiime",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var data struct {
		AccessToken string `json:"access_token"`
		Session     struct {
			UserID uuid.UUID `json:"user_id"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken, data.Session.UserID
}

func TestRegisterSetsCookies(t *testing.T) {
	h := newHarness(t)
	resp, _ := h.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "amani@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	names := map[string]bool{}
	for _, ck := range resp.Cookies() {
		names[ck.Name] = ck.HttpOnly
	}
	assert.True(t, names["access_token"])
	assert.True(t, names["refresh_token"])
}

func TestRegisterValidation(t *testing.T) {
	h := newHarness(t)
	resp, env := h.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "not-an-email", "password": "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "password")

	h.register(t, "dup@example.com")
	resp, _ = h.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "dup@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	h := newHarness(t)
	h.register(t, "amani@example.com")

	resp, env := h.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "amani@example.com", "password": "nope-nope",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", env.ErrorCode)

	resp, _ = h.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "amani@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSessionLifecycle(t *testing.T) {
	h := newHarness(t)

	resp, env := h.do(t, http.MethodGet, "/api/auth/session", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "null", string(env.Data))

	token, userID := h.register(t, "amani@example.com")

	_, env = h.do(t, http.MethodGet, "/api/auth/session", token, nil)
	var sess service.Session
	require.NoError(t, json.Unmarshal(env.Data, &sess))
	assert.Equal(t, userID, sess.UserID)
	assert.Equal(t, "Amani", sess.Metadata.FirstName)

	resp, _ = h.do(t, http.MethodGet, "/api/u/session", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, env = h.do(t, http.MethodGet, "/api/auth/session", token, nil)
	assert.Equal(t, "null", string(env.Data))
	resp, _ = h.do(t, http.MethodGet, "/api/u/session", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminStatus(t *testing.T) {
	h := newHarness(t)
	token, userID := h.register(t, "amani@example.com")

	isAdmin := func() (int, bool) {
		resp, env := h.do(t, http.MethodGet, "/api/u/me/admin", token, nil)
		var data struct {
			IsAdmin bool `json:"is_admin"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		return resp.StatusCode, data.IsAdmin
	}

	code, ok := isAdmin()
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, ok)

	require.NoError(t, h.roles.Grant(context.Background(), userID, constants.RoleAdmin))
	code, ok = isAdmin()
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, ok)

	h.roles.SetErr(errors.New("connection reset"))
	code, ok = isAdmin()
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, ok, "lookup failure must never report admin")

	resp, _ := h.do(t, http.MethodGet, "/api/u/me/admin", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
