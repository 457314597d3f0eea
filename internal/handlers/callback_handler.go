package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/medatlas/medatlas-backend/internal/config"
	"github.com/medatlas/medatlas-backend/internal/models"
	"github.com/medatlas/medatlas-backend/internal/services"
)

// CallbackHandler finishes a sign-in started elsewhere: it exchanges the
// one-time code in the redirect for a session and sends the browser to the
// landing page for the principal's role.
type CallbackHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewCallbackHandler(authService *services.AuthService, cfg *config.Config) *CallbackHandler {
	return &CallbackHandler{authService: authService, cfg: cfg}
}

// LandingPath maps a declared role to its area of the application.
func LandingPath(userType string) string {
	switch userType {
	case models.UserTypeDoctor:
		return "/doctor/dashboard"
	case models.UserTypeAdmin:
		return "/admin/dashboard"
	case models.UserTypePatient:
		return "/profile"
	default:
		return "/"
	}
}

// GoogleRedirect starts the Google sign-in flow.
func (h *CallbackHandler) GoogleRedirect(c *fiber.Ctx) error {
	if !h.authService.GoogleConfigured() {
		return h.redirect(c, "/auth/login?error=oauth_not_configured")
	}
	url, err := h.authService.GoogleAuthURL(c.Context(), c.Query("type"))
	if err != nil {
		slog.Error("oauth initiation failed", "action", "oauth_redirect", "error", err.Error())
		return h.redirect(c, "/auth/login?error=oauth_error")
	}
	return c.Redirect(url, fiber.StatusFound)
}

// Callback handles GET /auth/callback?code&state&type&next.
func (h *CallbackHandler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return h.redirect(c, "/auth/login?error=missing_code")
	}

	var principal *models.Principal
	var err error
	if state := c.Query("state"); state != "" && h.authService.GoogleConfigured() {
		principal, err = h.authService.ExchangeGoogle(c.Context(), code, state)
	} else {
		principal, err = h.authService.ExchangeLoginTicket(code)
	}
	if err != nil {
		slog.Error("callback exchange failed", "action", "auth_callback", "error", err.Error())
		return h.redirect(c, "/auth/login?error=callback_error")
	}

	session, err := h.authService.SessionFor(principal)
	if err != nil {
		slog.Error("session issue failed", "action", "auth_callback",
			"user_id", principal.ID.String(), "error", err.Error())
		return h.redirect(c, "/auth/login?error=callback_error")
	}

	h.setSessionCookies(c, session.AccessToken, session.RefreshToken)

	userType := principal.UserType
	if userType == "" {
		userType = c.Query("type")
	}

	target := c.Query("next")
	if !localPath(target) {
		target = LandingPath(userType)
	}
	return h.redirect(c, target)
}

// localPath reports whether target is an absolute path on this site. Targets
// starting with "//" or "/\" are scheme-relative URLs that browsers resolve
// off-site, so they fall back to the role landing page instead.
func localPath(target string) bool {
	if len(target) == 0 || target[0] != '/' {
		return false
	}
	if len(target) > 1 && (target[1] == '/' || target[1] == '\\') {
		return false
	}
	return true
}

func (h *CallbackHandler) setSessionCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Expires:  time.Now().Add(h.cfg.JWTAccessExpiry),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  time.Now().Add(h.cfg.JWTRefreshExpiry),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

func (h *CallbackHandler) redirect(c *fiber.Ctx, path string) error {
	return c.Redirect(h.cfg.AppBaseURL+path, fiber.StatusFound)
}
