package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	userModel "basamu_backend/internals/features/users/user/model"
)

var ErrInvalidToken = errors.New("invalid token")

const (
	typAccess  = "access"
	typRefresh = "refresh"

	// clock skew tolerated on exp
	expLeeway = 30 * time.Second
)

type Tokens struct {
	secret        []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokens(secret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Tokens {
	if refreshSecret == "" {
		refreshSecret = secret
	}
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Tokens{
		secret:        []byte(secret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

type Pair struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"expires_at"`
	RefreshToken     string    `json:"-"`
	RefreshExpiresAt time.Time `json:"-"`
}

func (t *Tokens) Issue(user userModel.UserModel, now time.Time) (Pair, error) {
	accessExp := now.Add(t.accessTTL)
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"typ":   typAccess,
		"sub":   user.ID.String(),
		"id":    user.ID.String(),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   accessExp.Unix(),
	}).SignedString(t.secret)
	if err != nil {
		return Pair{}, fmt.Errorf("sign access token: %w", err)
	}

	refreshExp := now.Add(t.refreshTTL)
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"typ": typRefresh,
		"sub": user.ID.String(),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": refreshExp.Unix(),
	}).SignedString(t.refreshSecret)
	if err != nil {
		return Pair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	return Pair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

type Claims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

func (t *Tokens) ParseAccess(token string, now time.Time) (Claims, error) {
	return parse(token, t.secret, typAccess, now)
}

func (t *Tokens) ParseRefresh(token string, now time.Time) (Claims, error) {
	return parse(token, t.refreshSecret, typRefresh, now)
}

func parse(token string, secret []byte, typ string, now time.Time) (Claims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	_, err := parser.ParseWithClaims(token, claims, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tk.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if got, _ := claims["typ"].(string); got != typ {
		return Claims{}, fmt.Errorf("%w: wrong token type", ErrInvalidToken)
	}
	expF, ok := claims["exp"].(float64)
	if !ok {
		return Claims{}, fmt.Errorf("%w: missing exp", ErrInvalidToken)
	}
	exp := time.Unix(int64(expF), 0)
	if now.After(exp.Add(expLeeway)) {
		return Claims{}, fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil || id == uuid.Nil {
		return Claims{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	email, _ := claims["email"].(string)
	return Claims{UserID: id, Email: email, ExpiresAt: exp}, nil
}

// HashRefresh is the value stored in refresh_tokens.token_hash.
func (t *Tokens) HashRefresh(token string) string {
	mac := hmac.New(sha256.New, t.refreshSecret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
