// Package handlers implements the HTTP request handlers for the OnboardBox
// application: authentication, admin (task builder, user and assignment
// management), and staff (dashboard, task viewer) endpoints. Handlers are a
// thin JSON layer over the store's mutation API and never touch state
// directly.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"

	"github.com/avissapr/onboardbox/internal/security"
	"github.com/avissapr/onboardbox/internal/store"
)

// AuthHandler handles login, logout, and current-user lookups.
type AuthHandler struct {
	sessions *session.Store
	store    *store.Store
	limiter  *security.RateLimiter
	log      zerolog.Logger
}

// NewAuthHandler creates an AuthHandler with its dependencies.
func NewAuthHandler(sessions *session.Store, st *store.Store, limiter *security.RateLimiter, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		store:    st,
		limiter:  limiter,
		log:      log,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates credentials and establishes both the domain session
// (the state's currentUserId) and the HTTP session cookie. Login attempts
// are rate limited per client IP.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if !h.limiter.Allow(c.IP()) {
		c.Set("Retry-After", "60")
		return fiber.NewError(fiber.StatusTooManyRequests, "too many login attempts, please try again later")
	}

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if !h.store.Login(req.Email, req.Password) {
		h.log.Warn().Str("ip", c.IP()).Msg("failed login attempt")
		return fiber.NewError(fiber.StatusUnauthorized, "invalid email or password")
	}

	user, ok := h.store.CurrentUser()
	if !ok {
		return fiber.NewError(fiber.StatusInternalServerError, "session user missing after login")
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		return err
	}
	sess.Set("user_id", user.ID)
	sess.Set("user_role", string(user.Role))
	if err := sess.Save(); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"user":      user.Sanitized(),
		"adminMode": h.store.AdminMode(),
	})
}

// Logout clears the domain session pointer and destroys the HTTP session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.store.Logout()

	sess, err := h.sessions.Get(c)
	if err == nil {
		_ = sess.Destroy()
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Me returns the currently logged-in user.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := h.store.CurrentUser()
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "not logged in")
	}

	return c.JSON(fiber.Map{
		"user":      user.Sanitized(),
		"adminMode": h.store.AdminMode(),
	})
}
