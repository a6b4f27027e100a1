// Package middleware provides HTTP middleware functions for authentication and authorization.
// These middleware functions protect route groups and enforce role-based access control.
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/avissapr/onboardbox/internal/models"
)

// AuthRequired ensures the request carries an authenticated session.
// It responds 401 when no session user exists, and otherwise places the
// user's id and role in the context for downstream handlers.
//
// Context Locals Set:
//   - user_id: the authenticated user's id (string)
//   - user_role: the user's role ("ADMIN" or "USER")
//
// Example:
//
//	admin := app.Group("/admin", middleware.AuthRequired(store))
func AuthRequired(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "session unavailable")
		}

		userID, _ := sess.Get("user_id").(string)
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "login required")
		}

		c.Locals("user_id", userID)
		c.Locals("user_role", sess.Get("user_role"))

		return c.Next()
	}
}

// AdminOnly ensures the user has the ADMIN role. Must be chained after
// AuthRequired, which sets user_role in the context.
//
// Example:
//
//	admin := app.Group("/admin",
//	    middleware.AuthRequired(store),
//	    middleware.AdminOnly())
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		if role != string(models.RoleAdmin) {
			return fiber.NewError(fiber.StatusForbidden, "admin only")
		}

		return c.Next()
	}
}
