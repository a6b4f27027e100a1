// Package models defines the domain entities and data transfer objects for OnboardBox.
// It includes the persisted AppState aggregate, its member entities, and the
// partial-update structs consumed by the store's mutation API.
package models

import "time"

// ============================================================================
// Enumerations
// ============================================================================

// UserRole identifies the access level of a user account.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN" // Full access: task builder, user management, assignments
	RoleUser  UserRole = "USER"  // Staff access: assigned tasks, dashboard, profile
)

// AssignmentStatus tracks the completion lifecycle of an assignment.
// Status advances NOT_STARTED -> IN_PROGRESS automatically on first answer,
// and reaches COMPLETED only through an explicit completion action.
type AssignmentStatus string

const (
	StatusNotStarted AssignmentStatus = "NOT_STARTED"
	StatusInProgress AssignmentStatus = "IN_PROGRESS"
	StatusCompleted  AssignmentStatus = "COMPLETED"
)

// ColorTheme selects the visual treatment of a section.
// The store only carries the value; rendering is a presentation concern.
type ColorTheme string

const (
	ThemeDefault     ColorTheme = "DEFAULT"
	ThemePrimaryTint ColorTheme = "PRIMARY_TINT"
	ThemeAccentTint  ColorTheme = "ACCENT_TINT"
)

// ============================================================================
// Domain Entities
// ============================================================================

// User represents a system user account with role-based access control.
//
// Security Note: Password is stored and compared in plain text. This is a
// documented behavioral-parity decision, not an oversight; see DESIGN.md.
// Any production deployment must replace this with salted hashing.
type User struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"` // Unique case-insensitively, used for login
	Role       UserRole `json:"role"`
	Password   string   `json:"password,omitempty"`
	Image      string   `json:"image,omitempty"`
	JoinDate   string   `json:"joinDate,omitempty"` // ISO date, e.g. "2025-12-01"
	Department string   `json:"department,omitempty"`
	Position   string   `json:"position,omitempty"`
	Phone      string   `json:"phone,omitempty"`
}

// Task is an onboarding module composed of ordered Pages.
// A task is created empty with one default page; deleting it cascades to its
// pages, their sections, answers for those sections, assignments referencing
// it, and its id inside every user's task groups.
type Task struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	CreatedByID        string    `json:"createdById"`
	IncludeOpeningPage bool      `json:"includeOpeningPage"`
	OpeningCoverURL    string    `json:"openingCoverUrl,omitempty"`
	OpeningCaption     string    `json:"openingCaption,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Page is an ordered container of Sections within a Task.
// Index values are unique per task and assigned as max(existing)+1, so they
// stay monotonic and may become non-contiguous after deletions.
type Page struct {
	ID     string `json:"id"`
	TaskID string `json:"taskId"`
	Index  int    `json:"index"`
	Title  string `json:"title,omitempty"`
}

// Section is a single content or question block of a fixed type.
// Data carries the type-specific payload; see section_data.go for the
// tagged union and the default-payload table.
type Section struct {
	ID         string      `json:"id"`
	PageID     string      `json:"pageId"`
	Index      int         `json:"index"`
	Type       SectionType `json:"type"`
	ColorTheme ColorTheme  `json:"colorTheme"`
	Data       SectionData `json:"data"`
	Required   bool        `json:"required"`
}

// Assignment records a Task being given to a User.
// At most one assignment exists per (userId, taskId) pair.
type Assignment struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	TaskID      string           `json:"taskId"`
	Status      AssignmentStatus `json:"status"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Answer is a user's response to one Section within one Assignment.
// At most one answer exists per (assignmentId, sectionId) pair; repeated
// saves update the same record in place.
//
// Value is deliberately untyped: its shape depends on the owning section's
// type (option id for choices, bool for yes/no, text for essays, ...).
type Answer struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignmentId"`
	SectionID    string    `json:"sectionId"`
	Value        any       `json:"value"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TaskGroup is a named, optionally time-locked bundle of tasks assigned to a
// specific user (e.g. "Your First Day").
//
// Locking semantics (evaluated in services.IsGroupLocked):
//   - Locked == false: never locked.
//   - Locked == true with UnlockAfterDays set: auto-unlocks once the user's
//     join date is at least that many days in the past.
//   - Locked == true with UnlockAfterDays nil: stays locked until an admin
//     flips Locked off manually.
type TaskGroup struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	TaskIDs         []string `json:"taskIds"`
	Locked          bool     `json:"locked"`
	UnlockAfterDays *int     `json:"unlockAfterDays"`
}

// UserTaskGroups holds the ordered task groups for one user.
// One record exists per user who has been given organized assignments.
type UserTaskGroups struct {
	UserID string      `json:"userId"`
	Groups []TaskGroup `json:"groups"`
}

// AppState is the single root aggregate. The whole application state is one
// value of this type, serialized as one JSON document on every mutation.
// Collections keep insertion order; positions inside a task or page are
// defined by the explicit Index fields instead.
type AppState struct {
	Users          []User           `json:"users"`
	Tasks          []Task           `json:"tasks"`
	Pages          []Page           `json:"pages"`
	Sections       []Section        `json:"sections"`
	Assignments    []Assignment     `json:"assignments"`
	Answers        []Answer         `json:"answers"`
	UserTaskGroups []UserTaskGroups `json:"userTaskGroups"`
	CurrentUserID  string           `json:"currentUserId,omitempty"`
	AdminMode      bool             `json:"adminMode"`
}

// ============================================================================
// Partial-Update Structs
// ============================================================================
// Nil pointer fields mean "leave unchanged". These are the Go rendering of
// the mutation API's partial-merge semantics.

// TaskUpdate carries the fields updateTask may change.
type TaskUpdate struct {
	Title              *string `json:"title"`
	IncludeOpeningPage *bool   `json:"includeOpeningPage"`
	OpeningCoverURL    *string `json:"openingCoverUrl"`
	OpeningCaption     *string `json:"openingCaption"`
}

// SectionUpdate carries the fields updateSection may change.
// Data, when non-nil, replaces the section payload as a whole object; callers
// that want to change a single nested key must pre-merge before calling.
type SectionUpdate struct {
	ColorTheme *ColorTheme `json:"colorTheme"`
	Required   *bool       `json:"required"`
	Data       SectionData `json:"-"`
}

// UserUpdate carries the fields updateUser may change.
// Email uniqueness is NOT re-validated at the store layer; the admin-edit
// handler checks before calling (behavioral parity with the source).
type UserUpdate struct {
	Name       *string   `json:"name"`
	Email      *string   `json:"email"`
	Role       *UserRole `json:"role"`
	Password   *string   `json:"password"`
	Image      *string   `json:"image"`
	JoinDate   *string   `json:"joinDate"`
	Department *string   `json:"department"`
	Position   *string   `json:"position"`
	Phone      *string   `json:"phone"`
}

// NewUserInput is the payload for addUser.
type NewUserInput struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Role       UserRole `json:"role,omitempty"` // defaults to USER when empty
	JoinDate   string   `json:"joinDate,omitempty"`
	Department string   `json:"department,omitempty"`
	Position   string   `json:"position,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Image      string   `json:"image,omitempty"`
}

// Sanitized returns a copy of the user with the password cleared.
// Handlers use this for every response body so credentials never leave the
// process over HTTP.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
