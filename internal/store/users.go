// User account mutations.
package store

import (
	"fmt"
	"strings"

	"github.com/avissapr/onboardbox/internal/models"
)

// AddUser creates a user account. Name, email, and password are required
// after trimming; the email is stored lowercased and must be unique among
// existing users case-insensitively. Role defaults to USER.
//
// Validation failures return an error with a user-presentable message and
// leave state untouched.
func (s *Store) AddUser(input models.NewUserInput) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	password := strings.TrimSpace(input.Password)

	if name == "" {
		return models.User{}, fmt.Errorf("name is required")
	}
	if email == "" {
		return models.User{}, fmt.Errorf("email is required")
	}
	if password == "" {
		return models.User{}, fmt.Errorf("password is required")
	}

	for _, u := range s.state.Users {
		if strings.EqualFold(u.Email, email) {
			return models.User{}, fmt.Errorf("email is already used")
		}
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		ID:         s.newID(),
		Name:       name,
		Email:      email,
		Role:       role,
		Password:   password,
		Image:      strings.TrimSpace(input.Image),
		JoinDate:   strings.TrimSpace(input.JoinDate),
		Department: strings.TrimSpace(input.Department),
		Position:   strings.TrimSpace(input.Position),
		Phone:      strings.TrimSpace(input.Phone),
	}

	s.state.Users = append(s.state.Users, user)
	s.persist()

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user added")
	return user, nil
}

// UpdateUser merges the non-nil fields of the update into the user. Email
// uniqueness is NOT re-validated here; the admin-edit flow checks before
// calling (behavioral parity with the source system). Returns false when no
// user has the given id.
func (s *Store) UpdateUser(userID string, update models.UserUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Users {
		u := &s.state.Users[i]
		if u.ID != userID {
			continue
		}
		if update.Name != nil {
			u.Name = *update.Name
		}
		if update.Email != nil {
			u.Email = *update.Email
		}
		if update.Role != nil {
			u.Role = *update.Role
		}
		if update.Password != nil {
			u.Password = *update.Password
		}
		if update.Image != nil {
			u.Image = *update.Image
		}
		if update.JoinDate != nil {
			u.JoinDate = *update.JoinDate
		}
		if update.Department != nil {
			u.Department = *update.Department
		}
		if update.Position != nil {
			u.Position = *update.Position
		}
		if update.Phone != nil {
			u.Phone = *update.Phone
		}
		s.persist()
		return true
	}
	return false
}
