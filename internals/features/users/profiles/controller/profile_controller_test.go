package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basamu_backend/internals/constants"
	authRepo "basamu_backend/internals/features/users/auth/repository"
	authService "basamu_backend/internals/features/users/auth/service"
	"basamu_backend/internals/features/users/profiles/controller"
	"basamu_backend/internals/features/users/profiles/dto"
	"basamu_backend/internals/features/users/profiles/repository"
	"basamu_backend/internals/features/users/profiles/route"
	helper "basamu_backend/internals/helpers"
	"basamu_backend/internals/helpers/inflight"
	"basamu_backend/internals/helpers/storage"
	"basamu_backend/internals/helpers/upload"
	authMw "basamu_backend/internals/middlewares/auth"
)

type envelope struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
	Data    dto.ProfileResponse `json:"data"`
}

type harness struct {
	app      *fiber.App
	accounts *authRepo.Memory
	profiles *repository.Memory
	store    *storage.MemoryStore
	token    string
	userID   uuid.UUID
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		accounts: authRepo.NewMemory(),
		profiles: repository.NewMemory(),
		store:    storage.NewMemoryStore("https://files.test"),
	}
	provider := authService.NewProvider(h.accounts,
		authService.NewTokens("access-secret", "refresh-secret", 15*time.Minute, time.Hour), nil)
	sess, pair, err := provider.Register(context.Background(), authService.RegisterInput{
		Email: "amina@example.com", Password: "password1", FirstName: "Amina", LastName: "Nakato",
	}, authService.Client{})
	require.NoError(t, err)
	h.token, h.userID = pair.AccessToken, sess.UserID

	ctrl := controller.NewProfileController(h.profiles, h.accounts, upload.New(h.store))
	h.app = fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler, BodyLimit: 64 * 1024 * 1024})
	route.ProfileRoutes(h.app.Group("/api/u", authMw.AuthMiddleware(provider)), ctrl, inflight.New())
	return h
}

func (h *harness) send(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()
	req.Header.Set("Authorization", "Bearer "+h.token)
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func (h *harness) putJSON(t *testing.T, body any) (int, envelope) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/u/profile", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return h.send(t, req)
}

func (h *harness) postAvatar(t *testing.T, name, contentType string, data []byte) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/u/profile/avatar", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return h.send(t, req)
}

func TestGetFallsBackToAccountNames(t *testing.T) {
	h := newHarness(t)

	status, env := h.send(t, httptest.NewRequest(http.MethodGet, "/api/u/profile", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Amina", env.Data.FirstName)
	assert.Equal(t, "Nakato", env.Data.LastName)
	assert.Equal(t, "amina@example.com", env.Data.Email)
	assert.False(t, env.Data.Saved)
	assert.Nil(t, env.Data.AvatarURL)
	assert.Zero(t, h.profiles.Len(), "reading never creates the row")
}

func TestGetRequiresSession(t *testing.T) {
	h := newHarness(t)
	resp, err := h.app.Test(httptest.NewRequest(http.MethodGet, "/api/u/profile", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateTrimsAndMirrorsNames(t *testing.T) {
	h := newHarness(t)

	status, env := h.putJSON(t, map[string]string{"profile_first_name": "  Ami ", "profile_last_name": " N. "})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ami", env.Data.FirstName)
	assert.Equal(t, "N.", env.Data.LastName)
	assert.True(t, env.Data.Saved)
	assert.Equal(t, 1, h.profiles.Len())

	u, err := h.accounts.FindUserByID(context.Background(), h.userID)
	require.NoError(t, err)
	assert.Equal(t, "Ami", u.Meta().FirstName)
	assert.Equal(t, "N.", u.Meta().LastName)

	// second save updates the same row
	_, _ = h.putJSON(t, map[string]string{"profile_first_name": "Amina", "profile_last_name": "Nakato"})
	assert.Equal(t, 1, h.profiles.Len())
	status, env = h.send(t, httptest.NewRequest(http.MethodGet, "/api/u/profile", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Amina", env.Data.FirstName)
	assert.True(t, env.Data.Saved)
}

func TestUpdateValidation(t *testing.T) {
	h := newHarness(t)
	status, env := h.putJSON(t, map[string]string{"profile_first_name": strings.Repeat("a", 101)})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "profile_first_name")
	assert.Zero(t, h.profiles.Len())
}

func TestUpdateStoreFailure(t *testing.T) {
	h := newHarness(t)
	h.profiles.Err = errors.New("db down")

	status, env := h.putJSON(t, map[string]string{"profile_first_name": "Ami"})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to update profile", env.Message)

	u, err := h.accounts.FindUserByID(context.Background(), h.userID)
	require.NoError(t, err)
	assert.Equal(t, "Amina", u.Meta().FirstName, "account untouched when the profile save fails")
}

func TestUploadAvatarOverwritesFixedPath(t *testing.T) {
	h := newHarness(t)

	status, env := h.postAvatar(t, "me.png", "image/png", []byte("first"))
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Data.AvatarURL)
	first := *env.Data.AvatarURL
	assert.Contains(t, first, "/"+constants.BucketAvatars+"/"+h.userID.String()+"/avatar.png?t=")

	_, env = h.postAvatar(t, "me2.png", "image/png", []byte("second"))
	require.NotNil(t, env.Data.AvatarURL)

	obj, ok := h.store.Get(constants.BucketAvatars, h.userID.String()+"/avatar.png")
	require.True(t, ok)
	assert.Equal(t, []byte("second"), obj.Body)
	assert.Equal(t, 1, h.store.Len())
	assert.Equal(t, 1, h.profiles.Len())
}

func TestUploadAvatarRejections(t *testing.T) {
	h := newHarness(t)

	status, _ := h.postAvatar(t, "notes.txt", "text/plain", []byte("hello"))
	assert.Equal(t, http.StatusUnsupportedMediaType, status)

	status, _ = h.postAvatar(t, "empty.png", "image/png", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = h.postAvatar(t, "huge.png", "image/png", make([]byte, 6*constants.MB))
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)

	assert.Zero(t, h.store.Len())
	assert.Zero(t, h.profiles.Len())
}
