// Package security provides centralized security configuration and utilities
// for the OnboardBox application: input validation and login rate limiting.
package security

import (
	"time"
)

// SecurityConfig holds all security-related tunables in one place.
type SecurityConfig struct {
	// Session management
	SessionTimeout  time.Duration // Session inactivity timeout
	SessionHTTPOnly bool          // Prevent JavaScript access to session cookies

	// Brute force protection
	LoginRateLimit int // Max login attempts per minute per IP

	// Input validation limits
	MaxNameLength      int // Maximum characters in a user or task name
	MaxGroupNameLength int // Maximum characters in a task-group name
	MaxAnswerSize      int // Maximum bytes in a single answer value
}

// DefaultSecurityConfig returns the configuration used in production.
func DefaultSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		SessionTimeout:  24 * time.Hour,
		SessionHTTPOnly: true,

		LoginRateLimit: 5,

		MaxNameLength:      200,
		MaxGroupNameLength: 100,
		MaxAnswerSize:      64 * 1024,
	}
}
