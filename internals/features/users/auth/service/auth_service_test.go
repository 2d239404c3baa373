package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authRepo "basamu_backend/internals/features/users/auth/repository"
)

type recorder struct {
	mu     sync.Mutex
	events []EventType
}

func (r *recorder) record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e.Type)
}

func (r *recorder) all() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]EventType(nil), r.events...)
}

type fixture struct {
	repo     *authRepo.Memory
	provider *Provider
	events   *recorder
	now      time.Time
}

func newFixture(t *testing.T, opts ...ProviderOption) *fixture {
	t.Helper()
	f := &fixture{repo: authRepo.NewMemory(), events: &recorder{}, now: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	hub := NewHub()
	hub.Subscribe(f.events.record)
	opts = append([]ProviderOption{WithNow(func() time.Time { return f.now })}, opts...)
	f.provider = NewProvider(f.repo, NewTokens("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour), hub, opts...)
	return f
}

var client = Client{UserAgent: "test", IP: "127.0.0.1"}

func TestRegisterThenLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess, pair, err := f.provider.Register(ctx, RegisterInput{
		Email: " Jane@Example.com ", Password: "s3cretpass", FirstName: " Jane ", LastName: "Doe",
	}, client)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", sess.Email)
	assert.Equal(t, "Jane", sess.Metadata.FirstName)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	_, _, err = f.provider.Register(ctx, RegisterInput{Email: "jane@example.com", Password: "anotherpass"}, client)
	assert.ErrorIs(t, err, authRepo.ErrEmailTaken)

	_, _, err = f.provider.Login(ctx, "jane@example.com", "wrong-pass", client)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = f.provider.Login(ctx, "nobody@example.com", "s3cretpass", client)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	again, _, err := f.provider.Login(ctx, "JANE@example.com", "s3cretpass", client)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, again.UserID)

	assert.Equal(t, []EventType{EventSignedIn, EventSignedIn}, f.events.all())
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.provider.Register(context.Background(), RegisterInput{Email: "a@b.co", Password: "short"}, client)
	assert.ErrorIs(t, err, ErrWeakPassword)
	assert.Empty(t, f.events.all())
}

func TestCurrentSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, pair, err := f.provider.Register(ctx, RegisterInput{Email: "a@b.co", Password: "password1"}, client)
	require.NoError(t, err)

	got, err := f.provider.CurrentSession(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)

	_, err = f.provider.CurrentSession(ctx, "")
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = f.provider.CurrentSession(ctx, "garbage")
	assert.ErrorIs(t, err, ErrNoSession)

	// refresh tokens are not access tokens
	_, err = f.provider.CurrentSession(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrNoSession)

	f.now = f.now.Add(16 * time.Minute)
	_, err = f.provider.CurrentSession(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestCurrentSessionDisabledAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, pair, err := f.provider.Register(ctx, RegisterInput{Email: "a@b.co", Password: "password1"}, client)
	require.NoError(t, err)
	require.NoError(t, f.repo.SetActive(sess.UserID, false))

	_, err = f.provider.CurrentSession(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrAccountDisabled)
	_, _, err = f.provider.Login(ctx, "a@b.co", "password1", client)
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRefreshRotates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, pair, err := f.provider.Register(ctx, RegisterInput{Email: "a@b.co", Password: "password1"}, client)
	require.NoError(t, err)

	f.now = f.now.Add(time.Minute)
	_, next, err := f.provider.Refresh(ctx, pair.RefreshToken, client)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)
	assert.Equal(t, 1, f.repo.ActiveRefreshTokens(sess.UserID))

	_, _, err = f.provider.Refresh(ctx, pair.RefreshToken, client)
	assert.ErrorIs(t, err, ErrNoSession, "old refresh token is revoked")

	_, _, err = f.provider.Refresh(ctx, next.AccessToken, client)
	assert.ErrorIs(t, err, ErrNoSession, "access token cannot refresh")

	assert.Equal(t, []EventType{EventSignedIn, EventTokenRefreshed}, f.events.all())
}

func TestSignOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, pair, err := f.provider.Register(ctx, RegisterInput{Email: "a@b.co", Password: "password1"}, client)
	require.NoError(t, err)

	require.NoError(t, f.provider.SignOut(ctx, pair.AccessToken, pair.RefreshToken))

	_, err = f.provider.CurrentSession(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrNoSession)
	_, _, err = f.provider.Refresh(ctx, pair.RefreshToken, client)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Equal(t, 0, f.repo.ActiveRefreshTokens(sess.UserID))

	assert.ErrorIs(t, f.provider.SignOut(ctx, "not-a-token", ""), ErrNoSession)
	assert.Equal(t, []EventType{EventSignedIn, EventSignedOut}, f.events.all())
}

func TestLoginGoogle(t *testing.T) {
	verifier := func(idToken string) (GoogleIdentity, error) {
		switch idToken {
		case "good":
			return GoogleIdentity{Sub: "g-1", Email: "Kato@Example.com", Name: "Kato Mugisha"}, nil
		default:
			return GoogleIdentity{}, errors.New("bad signature")
		}
	}
	f := newFixture(t, WithGoogle(verifier))
	ctx := context.Background()

	sess, _, err := f.provider.LoginGoogle(ctx, "good", client)
	require.NoError(t, err)
	assert.Equal(t, "kato@example.com", sess.Email)
	assert.Equal(t, "Kato", sess.Metadata.FirstName)
	assert.Equal(t, "Mugisha", sess.Metadata.LastName)

	again, _, err := f.provider.LoginGoogle(ctx, "good", client)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, again.UserID)

	_, _, err = f.provider.LoginGoogle(ctx, "forged", client)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginGoogleLinksExistingEmail(t *testing.T) {
	f := newFixture(t, WithGoogle(func(string) (GoogleIdentity, error) {
		return GoogleIdentity{Sub: "g-2", Email: "a@b.co"}, nil
	}))
	ctx := context.Background()
	sess, _, err := f.provider.Register(ctx, RegisterInput{Email: "a@b.co", Password: "password1"}, client)
	require.NoError(t, err)

	linked, _, err := f.provider.LoginGoogle(ctx, "token", client)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, linked.UserID)

	u, err := f.repo.FindUserByGoogleID(ctx, "g-2")
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, u.ID)
}

func TestLoginGoogleDisabled(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.provider.LoginGoogle(context.Background(), "x", client)
	assert.ErrorIs(t, err, ErrGoogleDisabled)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, _, err := f.provider.Register(ctx, RegisterInput{Email: "a@b.co", Password: "password1"}, client)
	require.NoError(t, err)

	assert.ErrorIs(t, f.provider.ChangePassword(ctx, sess.UserID, "wrong", "password2"), ErrInvalidCredentials)
	require.NoError(t, f.provider.ChangePassword(ctx, sess.UserID, "password1", "password2"))
	assert.Equal(t, 0, f.repo.ActiveRefreshTokens(sess.UserID))

	_, _, err = f.provider.Login(ctx, "a@b.co", "password2", client)
	assert.NoError(t, err)
}

func TestHubSubscribeUnsubscribe(t *testing.T) {
	hub := NewHub()
	var got []string
	unsubA := hub.Subscribe(func(e Event) { got = append(got, "a:"+string(e.Type)) })
	hub.Subscribe(func(Event) { panic("boom") })
	hub.Subscribe(func(e Event) { got = append(got, "c:"+string(e.Type)) })

	hub.Publish(Event{Type: EventSignedIn})
	unsubA()
	unsubA()
	hub.Publish(Event{Type: EventSignedOut})

	assert.Equal(t, []string{"a:signed_in", "c:signed_in", "c:signed_out"}, got)
	assert.Equal(t, 2, hub.Len())
}

func TestTokensRejectForeignSignature(t *testing.T) {
	a := NewTokens("secret-a", "", time.Minute, time.Hour)
	b := NewTokens("secret-b", "", time.Minute, time.Hour)
	now := time.Now()

	f := newFixture(t)
	sess, _, err := f.provider.Register(context.Background(), RegisterInput{Email: "a@b.co", Password: "password1"}, client)
	require.NoError(t, err)
	u, err := f.repo.FindUserByID(context.Background(), sess.UserID)
	require.NoError(t, err)

	pair, err := a.Issue(*u, now)
	require.NoError(t, err)
	_, err = b.ParseAccess(pair.AccessToken, now)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := a.ParseAccess(pair.AccessToken, now)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, a.HashRefresh("x"), a.HashRefresh("x"))
	assert.NotEqual(t, a.HashRefresh("x"), b.HashRefresh("x"))
}
