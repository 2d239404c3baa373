package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"basamu_backend/internals/features/users/auth/dto"
	authRepo "basamu_backend/internals/features/users/auth/repository"
	"basamu_backend/internals/features/users/auth/service"
	helper "basamu_backend/internals/helpers"
	authMw "basamu_backend/internals/middlewares/auth"
)

const (
	cookieAccess  = "access_token"
	cookieRefresh = "refresh_token"
)

type AuthController struct {
	Provider      *service.Provider
	Gate          authMw.AdminChecker
	SecureCookies bool
}

func NewAuthController(provider *service.Provider, gate authMw.AdminChecker, secureCookies bool) *AuthController {
	return &AuthController{Provider: provider, Gate: gate, SecureCookies: secureCookies}
}

func clientOf(c *fiber.Ctx) service.Client {
	return service.Client{UserAgent: c.Get(fiber.HeaderUserAgent), IP: c.IP()}
}

/* ============ sign in ============ */

func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	sess, pair, err := ac.Provider.Register(c.UserContext(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, clientOf(c))
	switch {
	case err == nil:
	case errors.Is(err, authRepo.ErrEmailTaken):
		return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
	case errors.Is(err, service.ErrWeakPassword):
		return helper.JsonValidationError(c, map[string][]string{"password": {err.Error()}})
	default:
		log.Error().Err(err).Msg("register failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register")
	}

	ac.setTokenCookies(c, pair)
	return helper.JsonCreated(c, "Registration successful", dto.NewAuthResponse(sess, pair))
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	sess, pair, err := ac.Provider.Login(c.UserContext(), req.Email, req.Password, clientOf(c))
	if err != nil {
		return ac.signInError(c, err)
	}
	ac.setTokenCookies(c, pair)
	return helper.JsonOK(c, "Login successful", dto.NewAuthResponse(sess, pair))
}

func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	sess, pair, err := ac.Provider.LoginGoogle(c.UserContext(), req.IDToken, clientOf(c))
	if err != nil {
		return ac.signInError(c, err)
	}
	ac.setTokenCookies(c, pair)
	return helper.JsonOK(c, "Login successful", dto.NewAuthResponse(sess, pair))
}

func (ac *AuthController) signInError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrAccountDisabled):
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been disabled")
	case errors.Is(err, service.ErrGoogleDisabled):
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Google sign-in is not available")
	default:
		log.Error().Err(err).Msg("sign-in failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign in")
	}
}

/* ============ refresh / sign out ============ */

func refreshTokenOf(c *fiber.Ctx) string {
	if t := strings.TrimSpace(c.Cookies(cookieRefresh)); t != "" {
		return t
	}
	var req dto.RefreshRequest
	if len(c.Body()) > 0 && c.BodyParser(&req) == nil {
		return strings.TrimSpace(req.RefreshToken)
	}
	return ""
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	token := refreshTokenOf(c)
	if token == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "No refresh token")
	}
	sess, pair, err := ac.Provider.Refresh(c.UserContext(), token, clientOf(c))
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNoSession):
		ac.clearTokenCookies(c)
		return helper.JsonError(c, fiber.StatusUnauthorized, "Session expired, please sign in again")
	case errors.Is(err, service.ErrAccountDisabled):
		ac.clearTokenCookies(c)
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been disabled")
	default:
		log.Error().Err(err).Msg("refresh failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to refresh session")
	}
	ac.setTokenCookies(c, pair)
	return helper.JsonOK(c, "Session refreshed", dto.NewAuthResponse(sess, pair))
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	access := authMw.ExtractBearerToken(c)
	err := ac.Provider.SignOut(c.UserContext(), access, refreshTokenOf(c))
	ac.clearTokenCookies(c)
	if err != nil && !errors.Is(err, service.ErrNoSession) {
		log.Error().Err(err).Msg("sign-out failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign out")
	}
	return helper.JsonOK(c, "Logout successful", nil)
}

/* ============ session ============ */

// Session answers with data:null when the caller has no valid session.
func (ac *AuthController) Session(c *fiber.Ctx) error {
	sess, ok := authMw.SessionFrom(c)
	if !ok {
		return helper.JsonOK(c, "No active session", nil)
	}
	return helper.JsonOK(c, "ok", sess)
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	sess, ok := authMw.SessionFrom(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return helper.JsonOK(c, "ok", sess)
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	err = ac.Provider.ChangePassword(c.UserContext(), userID, req.CurrentPassword, req.NewPassword)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidCredentials):
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password is incorrect")
	case errors.Is(err, service.ErrWeakPassword):
		return helper.JsonValidationError(c, map[string][]string{"new_password": {err.Error()}})
	case errors.Is(err, service.ErrNoSession):
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	default:
		log.Error().Err(err).Str("user_id", userID.String()).Msg("change password failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to change password")
	}
	ac.clearTokenCookies(c)
	return helper.JsonOK(c, "Password changed, please sign in again", nil)
}

// AdminStatus runs the gate for views that show admin-only controls. A failed
// lookup is reported as not-admin with 503 so the client can notify.
func (ac *AuthController) AdminStatus(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	isAdmin, err := ac.Gate.IsAdmin(c.UserContext(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("admin check failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success":    false,
			"message":    "Error verifying admin access",
			"error_code": "UPSTREAM_ERROR",
			"data":       dto.AdminStatusResponse{IsAdmin: false},
		})
	}
	return helper.JsonOK(c, "ok", dto.AdminStatusResponse{IsAdmin: isAdmin})
}

/* ============ cookies ============ */

func (ac *AuthController) setTokenCookies(c *fiber.Ctx, pair service.Pair) {
	ac.cookie(c, cookieAccess, pair.AccessToken, pair.AccessExpiresAt)
	ac.cookie(c, cookieRefresh, pair.RefreshToken, pair.RefreshExpiresAt)
}

func (ac *AuthController) clearTokenCookies(c *fiber.Ctx) {
	expired := time.Unix(0, 0)
	for _, name := range []string{cookieAccess, cookieRefresh} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   ac.SecureCookies,
			SameSite: ac.sameSite(),
			Path:     "/",
			Expires:  expired,
			MaxAge:   -1,
		})
	}
}

func (ac *AuthController) cookie(c *fiber.Ctx, name, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   ac.SecureCookies,
		SameSite: ac.sameSite(),
		Path:     "/",
		Expires:  expires,
	})
}

// SameSite=None is only accepted by browsers on secure cookies.
func (ac *AuthController) sameSite() string {
	if ac.SecureCookies {
		return "None"
	}
	return "Lax"
}
