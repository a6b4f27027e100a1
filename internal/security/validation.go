// Package security provides input validation functionality.
package security

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// ValidationService provides centralized input validation functions.
// All validation methods return descriptive errors that are safe to show to users.
type ValidationService struct {
	config *SecurityConfig
}

// NewValidationService creates a new validation service with security configuration.
func NewValidationService(config *SecurityConfig) *ValidationService {
	return &ValidationService{
		config: config,
	}
}

// ValidateEmail validates email address format according to RFC 5322.
// Returns error if email is invalid or too long.
func (v *ValidationService) ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	if len(email) > 255 {
		return fmt.Errorf("email must be less than 255 characters")
	}

	// Use Go's standard mail.ParseAddress for RFC 5322 compliance
	_, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

// ValidateRequired checks if a required field is present and non-empty.
func (v *ValidationService) ValidateRequired(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	return nil
}

// ValidateName validates a display name (user or task title).
func (v *ValidationService) ValidateName(fieldName, name string) error {
	if err := v.ValidateRequired(fieldName, name); err != nil {
		return err
	}

	if utf8.RuneCountInString(name) > v.config.MaxNameLength {
		return fmt.Errorf("%s must be %d characters or less", fieldName, v.config.MaxNameLength)
	}

	return nil
}

// ValidateGroupName validates task-group name length and format.
func (v *ValidationService) ValidateGroupName(name string) error {
	if err := v.ValidateRequired("group name", name); err != nil {
		return err
	}

	if utf8.RuneCountInString(name) > v.config.MaxGroupNameLength {
		return fmt.Errorf("group name must be %d characters or less", v.config.MaxGroupNameLength)
	}

	return nil
}

// ValidateDate validates date string format (ISO 8601).
// Expected format: "2025-01-15", "2025-12-31"
func (v *ValidationService) ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is required")
	}

	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format (expected: YYYY-MM-DD)")
	}

	return nil
}

// ValidateUnlockAfterDays validates the auto-unlock window of a task group.
// Nil is valid and means manual-only unlock.
func (v *ValidationService) ValidateUnlockAfterDays(days *int) error {
	if days == nil {
		return nil
	}

	if *days < 0 {
		return fmt.Errorf("unlock window cannot be negative")
	}

	if *days > 365 {
		return fmt.Errorf("unlock window must be 365 days or less")
	}

	return nil
}

// ValidateAnswerSize rejects answer payloads over the configured byte limit.
// Essays and upload metadata are the only large values; anything bigger is a
// client bug or abuse.
func (v *ValidationService) ValidateAnswerSize(size int) error {
	if size > v.config.MaxAnswerSize {
		return fmt.Errorf("answer must be %d bytes or less", v.config.MaxAnswerSize)
	}

	return nil
}

// SanitizeString removes potentially dangerous characters from string input.
// Removes control characters and normalizes whitespace.
func (v *ValidationService) SanitizeString(input string) string {
	// Remove control characters (except newline and tab)
	input = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`).ReplaceAllString(input, "")

	// Normalize whitespace
	input = strings.TrimSpace(input)

	return input
}
