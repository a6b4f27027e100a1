// Security and observability middleware shared by all routes.
package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/avissapr/onboardbox/internal/security"
)

// RequestLogger logs every HTTP request with method, path, status, and
// latency. Authenticated requests include the acting user's id.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		event := log.Info()
		if c.Response().StatusCode() >= fiber.StatusInternalServerError {
			event = log.Error()
		}
		if userID, ok := c.Locals("user_id").(string); ok {
			event = event.Str("user_id", userID)
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")

		return err
	}
}

// RateLimit guards an endpoint with the given token-bucket limiter, keyed by
// authenticated user when available and client IP otherwise.
func RateLimit(limiter *security.RateLimiter, log zerolog.Logger, endpointName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := c.IP()
		if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
			identifier = fmt.Sprintf("user_%s", userID)
		}

		if !limiter.Allow(identifier) {
			log.Warn().
				Str("endpoint", endpointName).
				Str("identifier", identifier).
				Msg("rate limit exceeded")

			c.Set("Retry-After", "60")
			return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded, please try again later")
		}

		return c.Next()
	}
}

// SecureHeaders adds baseline security headers to every response.
func SecureHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Prevent MIME type sniffing
		c.Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		c.Set("X-Frame-Options", "DENY")

		// Referrer policy
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		return c.Next()
	}
}
