package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	authModel "basamu_backend/internals/features/users/auth/model"
	authRepo "basamu_backend/internals/features/users/auth/repository"
	userModel "basamu_backend/internals/features/users/user/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrGoogleDisabled     = errors.New("google sign-in is not configured")
	ErrNoSession          = errors.New("no active session")
)

type GoogleIdentity struct {
	Sub   string
	Email string
	Name  string
}

type GoogleVerifier func(idToken string) (GoogleIdentity, error)

// NewGoogleVerifier checks ID tokens against clientID; nil when clientID is empty.
func NewGoogleVerifier(clientID string) GoogleVerifier {
	if strings.TrimSpace(clientID) == "" {
		return nil
	}
	return func(idToken string) (GoogleIdentity, error) {
		v := googleAuthIDTokenVerifier.Verifier{}
		if err := v.VerifyIDToken(idToken, []string{clientID}); err != nil {
			return GoogleIdentity{}, fmt.Errorf("verify google id token: %w", err)
		}
		claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
		if err != nil {
			return GoogleIdentity{}, fmt.Errorf("decode google id token: %w", err)
		}
		return GoogleIdentity{Sub: claimSet.Sub, Email: claimSet.Email, Name: claimSet.Name}, nil
	}
}

// Client identifies where a session was opened from.
type Client struct {
	UserAgent string
	IP        string
}

type Provider struct {
	repo   authRepo.Repository
	tokens *Tokens
	hub    *Hub
	google GoogleVerifier
	now    func() time.Time
}

type ProviderOption func(*Provider)

func WithGoogle(v GoogleVerifier) ProviderOption { return func(p *Provider) { p.google = v } }
func WithNow(now func() time.Time) ProviderOption { return func(p *Provider) { p.now = now } }

func NewProvider(repo authRepo.Repository, tokens *Tokens, hub *Hub, opts ...ProviderOption) *Provider {
	if hub == nil {
		hub = NewHub()
	}
	p := &Provider{repo: repo, tokens: tokens, hub: hub, now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Hub() *Hub { return p.hub }

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func (p *Provider) Register(ctx context.Context, in RegisterInput, client Client) (Session, Pair, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return Session{}, Pair{}, err
	}
	user := &userModel.UserModel{
		Email:    userModel.NormalizeEmail(in.Email),
		Password: &hash,
		Metadata: userModel.NewMetadata(in.FirstName, in.LastName),
		IsActive: true,
	}
	if err := p.repo.CreateUser(ctx, user); err != nil {
		return Session{}, Pair{}, err
	}
	return p.signIn(ctx, *user, client)
}

func (p *Provider) Login(ctx context.Context, email, password string, client Client) (Session, Pair, error) {
	user, err := p.repo.FindUserByEmail(ctx, email)
	if errors.Is(err, authRepo.ErrUserNotFound) {
		return Session{}, Pair{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, Pair{}, err
	}
	if !CheckPasswordHash(user.Password, password) {
		return Session{}, Pair{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return Session{}, Pair{}, ErrAccountDisabled
	}
	return p.signIn(ctx, *user, client)
}

func (p *Provider) LoginGoogle(ctx context.Context, idToken string, client Client) (Session, Pair, error) {
	if p.google == nil {
		return Session{}, Pair{}, ErrGoogleDisabled
	}
	id, err := p.google(idToken)
	if err != nil {
		log.Warn().Err(err).Msg("google sign-in rejected")
		return Session{}, Pair{}, ErrInvalidCredentials
	}
	if id.Sub == "" || id.Email == "" {
		return Session{}, Pair{}, ErrInvalidCredentials
	}

	user, err := p.findOrCreateGoogleUser(ctx, id)
	if err != nil {
		return Session{}, Pair{}, err
	}
	if !user.IsActive {
		return Session{}, Pair{}, ErrAccountDisabled
	}
	return p.signIn(ctx, *user, client)
}

func (p *Provider) findOrCreateGoogleUser(ctx context.Context, id GoogleIdentity) (*userModel.UserModel, error) {
	user, err := p.repo.FindUserByGoogleID(ctx, id.Sub)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, authRepo.ErrUserNotFound) {
		return nil, err
	}

	user, err = p.repo.FindUserByEmail(ctx, id.Email)
	switch {
	case err == nil:
		if err := p.repo.LinkGoogleID(ctx, user.ID, id.Sub); err != nil {
			return nil, err
		}
		user.GoogleID = &id.Sub
		return user, nil
	case !errors.Is(err, authRepo.ErrUserNotFound):
		return nil, err
	}

	first, last, _ := strings.Cut(strings.TrimSpace(id.Name), " ")
	sub := id.Sub
	user = &userModel.UserModel{
		Email:    userModel.NormalizeEmail(id.Email),
		GoogleID: &sub,
		Metadata: userModel.NewMetadata(first, last),
		IsActive: true,
	}
	if err := p.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Refresh rotates the refresh token: the presented one is revoked, a new pair issued.
func (p *Provider) Refresh(ctx context.Context, refreshToken string, client Client) (Session, Pair, error) {
	now := p.now()
	claims, err := p.tokens.ParseRefresh(refreshToken, now)
	if err != nil {
		return Session{}, Pair{}, ErrNoSession
	}
	rt, err := p.repo.FindActiveRefreshToken(ctx, p.tokens.HashRefresh(refreshToken), now)
	if errors.Is(err, authRepo.ErrTokenNotActive) {
		return Session{}, Pair{}, ErrNoSession
	}
	if err != nil {
		return Session{}, Pair{}, err
	}
	if rt.UserID != claims.UserID {
		return Session{}, Pair{}, ErrNoSession
	}

	user, err := p.activeUser(ctx, claims.UserID)
	if err != nil {
		return Session{}, Pair{}, err
	}
	if err := p.repo.RevokeRefreshToken(ctx, rt.ID, now); err != nil {
		return Session{}, Pair{}, err
	}

	sess, pair, err := p.issue(ctx, *user, client)
	if err != nil {
		return Session{}, Pair{}, err
	}
	p.publish(EventTokenRefreshed, sess)
	return sess, pair, nil
}

// SignOut blacklists the access token and revokes the refresh token, or every refresh
// token of the user when none is presented.
func (p *Provider) SignOut(ctx context.Context, accessToken, refreshToken string) error {
	now := p.now()
	claims, err := p.tokens.ParseAccess(accessToken, now)
	if err != nil {
		return ErrNoSession
	}
	if err := p.repo.BlacklistToken(ctx, accessToken, claims.ExpiresAt); err != nil {
		return err
	}

	revoked := false
	if refreshToken != "" {
		rt, err := p.repo.FindActiveRefreshToken(ctx, p.tokens.HashRefresh(refreshToken), now)
		if err == nil && rt.UserID == claims.UserID {
			if err := p.repo.RevokeRefreshToken(ctx, rt.ID, now); err != nil {
				return err
			}
			revoked = true
		}
	}
	if !revoked {
		if err := p.repo.RevokeUserRefreshTokens(ctx, claims.UserID, now); err != nil {
			return err
		}
	}

	p.hub.Publish(Event{Type: EventSignedOut, UserID: claims.UserID, Email: claims.Email, At: now})
	return nil
}

// CurrentSession resolves an access token. Missing, invalid, expired or signed-out
// tokens give ErrNoSession; storage failures are returned as they are.
func (p *Provider) CurrentSession(ctx context.Context, accessToken string) (Session, error) {
	if strings.TrimSpace(accessToken) == "" {
		return Session{}, ErrNoSession
	}
	claims, err := p.tokens.ParseAccess(accessToken, p.now())
	if err != nil {
		return Session{}, ErrNoSession
	}
	blacklisted, err := p.repo.IsBlacklisted(ctx, accessToken)
	if err != nil {
		return Session{}, fmt.Errorf("check blacklist: %w", err)
	}
	if blacklisted {
		return Session{}, ErrNoSession
	}
	user, err := p.activeUser(ctx, claims.UserID)
	if err != nil {
		return Session{}, err
	}
	return Session{
		UserID:    user.ID,
		Email:     user.Email,
		Metadata:  user.Meta(),
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

func (p *Provider) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := p.activeUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.Password != nil && !CheckPasswordHash(user.Password, current) {
		return ErrInvalidCredentials
	}
	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	if err := p.repo.UpdateUserPassword(ctx, userID, hash); err != nil {
		return err
	}
	return p.repo.RevokeUserRefreshTokens(ctx, userID, p.now())
}

func (p *Provider) activeUser(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	user, err := p.repo.FindUserByID(ctx, id)
	if errors.Is(err, authRepo.ErrUserNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	return user, nil
}

func (p *Provider) signIn(ctx context.Context, user userModel.UserModel, client Client) (Session, Pair, error) {
	sess, pair, err := p.issue(ctx, user, client)
	if err != nil {
		return Session{}, Pair{}, err
	}
	p.publish(EventSignedIn, sess)
	return sess, pair, nil
}

func (p *Provider) issue(ctx context.Context, user userModel.UserModel, client Client) (Session, Pair, error) {
	now := p.now()
	pair, err := p.tokens.Issue(user, now)
	if err != nil {
		return Session{}, Pair{}, err
	}
	if err := p.repo.CreateRefreshToken(ctx, &authModel.RefreshTokenModel{
		UserID:    user.ID,
		TokenHash: p.tokens.HashRefresh(pair.RefreshToken),
		ExpiresAt: pair.RefreshExpiresAt,
		UserAgent: strptr(client.UserAgent),
		IP:        strptr(client.IP),
	}); err != nil {
		return Session{}, Pair{}, fmt.Errorf("store refresh token: %w", err)
	}
	return Session{
		UserID:    user.ID,
		Email:     user.Email,
		Metadata:  user.Meta(),
		ExpiresAt: pair.AccessExpiresAt,
	}, pair, nil
}

func (p *Provider) publish(t EventType, s Session) {
	p.hub.Publish(Event{Type: t, UserID: s.UserID, Email: s.Email, At: p.now()})
}

func strptr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
