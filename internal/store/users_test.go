package store_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avissapr/onboardbox/internal/models"
	"github.com/avissapr/onboardbox/internal/store"
)

func TestStore_AddUser(t *testing.T) {
	tests := []struct {
		name    string
		input   models.NewUserInput
		wantErr string
	}{
		{
			name:  "valid user",
			input: models.NewUserInput{Name: "Sam Reyes", Email: "sam@onboardbox.io", Password: "pw"},
		},
		{
			name:  "whitespace is trimmed before validation",
			input: models.NewUserInput{Name: "  Sam  ", Email: "  SAM2@onboardbox.io  ", Password: " pw "},
		},
		{
			name:    "missing name",
			input:   models.NewUserInput{Name: "   ", Email: "x@onboardbox.io", Password: "pw"},
			wantErr: "name is required",
		},
		{
			name:    "missing email",
			input:   models.NewUserInput{Name: "Sam", Email: "", Password: "pw"},
			wantErr: "email is required",
		},
		{
			name:    "missing password",
			input:   models.NewUserInput{Name: "Sam", Email: "x@onboardbox.io", Password: "  "},
			wantErr: "password is required",
		},
		{
			name:    "duplicate email differing only in case",
			input:   models.NewUserInput{Name: "Imposter", Email: "ADMIN@onboardbox.io", Password: "pw"},
			wantErr: "email is already used",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestStore(t)
			before := len(s.Users())

			user, err := s.AddUser(tt.input)

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				assert.Len(t, s.Users(), before, "failed adds must not touch state")
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, user.ID)
			assert.Equal(t, models.RoleUser, user.Role, "role defaults to USER")
			assert.Equal(t, strings.ToLower(user.Email), user.Email, "emails are stored lowercased")
			assert.Len(t, s.Users(), before+1)
		})
	}
}

func TestStore_AddUser_AdminRoleHonored(t *testing.T) {
	s, _, _ := newTestStore(t)

	user, err := s.AddUser(models.NewUserInput{
		Name:     "Second Admin",
		Email:    "admin2@onboardbox.io",
		Password: "pw",
		Role:     models.RoleAdmin,
	})

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestStore_UpdateUser_MergesOnlyProvidedFields(t *testing.T) {
	// Arrange
	s, _, _ := newTestStore(t)
	user, err := s.AddUser(models.NewUserInput{
		Name:       "Sam Reyes",
		Email:      "sam@onboardbox.io",
		Password:   "pw",
		Department: "Engineering",
	})
	require.NoError(t, err)

	// Act - change only the phone number
	phone := "+1 555 0199"
	require.True(t, s.UpdateUser(user.ID, models.UserUpdate{Phone: &phone}))

	// Assert - everything else is untouched
	got, ok := s.UserByID(user.ID)
	require.True(t, ok)
	assert.Equal(t, phone, got.Phone)
	assert.Equal(t, "Sam Reyes", got.Name)
	assert.Equal(t, "Engineering", got.Department)
	assert.Equal(t, "pw", got.Password)
}

func TestStore_UpdateUser_UnknownID(t *testing.T) {
	s, _, _ := newTestStore(t)
	name := "Ghost"

	assert.False(t, s.UpdateUser("missing", models.UserUpdate{Name: &name}))
}

func TestStore_EmailInUse(t *testing.T) {
	s, _, _ := newTestStore(t)
	admin := s.Users()[0]

	assert.True(t, s.EmailInUse("ADMIN@ONBOARDBOX.IO", ""), "match is case-insensitive")
	assert.False(t, s.EmailInUse(store.SeedAdminEmail, admin.ID), "a user's own email is not a conflict")
	assert.False(t, s.EmailInUse("free@onboardbox.io", ""))
}
