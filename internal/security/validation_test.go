package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestValidator() *ValidationService {
	return NewValidationService(DefaultSecurityConfig())
}

func TestValidateEmail(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid email", "user@onboardbox.io", false},
		{"valid with plus tag", "user+tag@onboardbox.io", false},
		{"empty", "", true},
		{"missing domain", "user@", true},
		{"missing local part", "@onboardbox.io", true},
		{"plain text", "not an email", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateEmail(tt.email)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	v := newTestValidator()

	longName := make([]byte, 0, 201)
	for i := 0; i < 201; i++ {
		longName = append(longName, 'a')
	}

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid name", "Maya Tan", false},
		{"unicode name", "Žofia Černá", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"over the length cap", string(longName), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateName("name", tt.value)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateGroupName(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateGroupName("Your First Week"))
	assert.Error(t, v.ValidateGroupName(""))
	assert.Error(t, v.ValidateGroupName("  "))
}

func TestValidateDate(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{"valid ISO date", "2025-01-15", false},
		{"empty", "", true},
		{"US ordering", "01/15/2025", true},
		{"month out of range", "2025-13-01", true},
		{"timestamp not accepted here", "2025-01-15T09:00:00Z", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDate(tt.date)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUnlockAfterDays(t *testing.T) {
	v := newTestValidator()

	valid := 7
	zero := 0
	negative := -1
	tooLong := 366

	assert.NoError(t, v.ValidateUnlockAfterDays(nil), "nil means manual-only unlock")
	assert.NoError(t, v.ValidateUnlockAfterDays(&valid))
	assert.NoError(t, v.ValidateUnlockAfterDays(&zero))
	assert.Error(t, v.ValidateUnlockAfterDays(&negative))
	assert.Error(t, v.ValidateUnlockAfterDays(&tooLong))
}

func TestSanitizeString(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"strips control characters", "he\x00llo\x1F", "hello"},
		{"keeps newlines and tabs", "line one\n\tline two", "line one\n\tline two"},
		{"plain text untouched", "Maya Tan", "Maya Tan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.SanitizeString(tt.input))
		})
	}
}
