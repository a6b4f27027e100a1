// Package store_test provides unit tests for the domain mutation API.
// Tests run against an in-memory DocumentStore standing in for bbolt, a
// pinned clock, and a deterministic id generator, so every assertion about
// ids and timestamps is exact.
package store_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avissapr/onboardbox/internal/database"
	"github.com/avissapr/onboardbox/internal/models"
	"github.com/avissapr/onboardbox/internal/store"
)

// testClock is a controllable wall clock.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// newTestStore builds a store over a fresh in-memory document (seeded on
// first load), with deterministic ids ("id-1", "id-2", ...) and a clock
// pinned at a fixed instant.
func newTestStore(t *testing.T) (*store.Store, *database.MemoryStore, *testClock) {
	t.Helper()

	mem := database.NewMemoryStore()
	clock := &testClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}

	counter := 0
	nextID := func() string {
		counter++
		return fmt.Sprintf("id-%d", counter)
	}

	s, err := store.New(mem, zerolog.Nop(),
		store.WithClock(clock.Now),
		store.WithIDGenerator(nextID),
	)
	require.NoError(t, err)
	return s, mem, clock
}

func TestStore_SeedsWhenDocumentAbsent(t *testing.T) {
	// Arrange / Act - a store over an empty document store seeds itself
	s, mem, _ := newTestStore(t)

	// Assert - seed users exist and the seed was persisted immediately
	users := s.Users()
	require.Len(t, users, 2)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
	assert.Equal(t, models.RoleUser, users[1].Role)
	assert.NotZero(t, mem.Saves, "seed state should be persisted at startup")
}

func TestStore_SeedsWhenDocumentCorrupt(t *testing.T) {
	// Arrange - a document that is not valid JSON
	mem := database.NewMemoryStore()
	mem.Doc = []byte("{not json")

	// Act
	s, err := store.New(mem, zerolog.Nop())
	require.NoError(t, err)

	// Assert - the unparseable document was replaced by seed data
	assert.Len(t, s.Users(), 2)
}

func TestStore_BackfillsUserTaskGroups(t *testing.T) {
	// Arrange - a valid pre-task-groups document with no userTaskGroups key
	doc := []byte(`{
		"users": [{"id":"u1","name":"Old User","email":"old@x.com","role":"USER","password":"pw"}],
		"tasks": [], "pages": [], "sections": [], "assignments": [], "answers": [],
		"adminMode": false
	}`)
	mem := database.NewMemoryStore()
	mem.Doc = doc

	// Act
	s, err := store.New(mem, zerolog.Nop())
	require.NoError(t, err)

	// Assert - the re-persisted document carries an empty sequence, not
	// null, and the old data survived untouched
	var persisted map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(mem.Doc, &persisted))
	assert.JSONEq(t, `[]`, string(persisted["userTaskGroups"]))
	assert.Empty(t, s.State().UserTaskGroups)
	assert.Len(t, s.Users(), 1)
}

func TestStore_Login(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantOK   bool
	}{
		{"valid admin credentials", store.SeedAdminEmail, store.SeedAdminPassword, true},
		{"case-insensitive email", "ADMIN@ONBOARDBOX.IO", store.SeedAdminPassword, true},
		{"wrong password", store.SeedAdminEmail, "nope", false},
		{"password comparison is exact", store.SeedAdminEmail, "ADMIN123", false},
		{"unknown email", "ghost@onboardbox.io", store.SeedAdminPassword, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestStore(t)

			ok := s.Login(tt.email, tt.password)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				user, found := s.CurrentUser()
				require.True(t, found)
				assert.Equal(t, store.SeedAdminEmail, user.Email)
				assert.True(t, s.AdminMode(), "admin login should enable admin mode")
			} else {
				_, found := s.CurrentUser()
				assert.False(t, found, "failed login must not set a session user")
			}
		})
	}
}

func TestStore_LoginReadsPersistedStateFresh(t *testing.T) {
	// Arrange - two stores sharing one document: the first writes a new
	// user, the second logs in without having seen that write in memory
	mem := database.NewMemoryStore()
	writer, err := store.New(mem, zerolog.Nop())
	require.NoError(t, err)

	reader, err := store.New(mem, zerolog.Nop())
	require.NoError(t, err)

	_, err = writer.AddUser(models.NewUserInput{
		Name:     "Late Addition",
		Email:    "late@onboardbox.io",
		Password: "secret",
	})
	require.NoError(t, err)

	// Act / Assert - the reader picks the just-saved user up from storage
	assert.True(t, reader.Login("late@onboardbox.io", "secret"))
}

func TestStore_UserLoginDoesNotEnableAdminMode(t *testing.T) {
	s, _, _ := newTestStore(t)

	require.True(t, s.Login(store.SeedUserEmail, store.SeedUserPassword))

	assert.False(t, s.AdminMode())
}

func TestStore_Logout(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.True(t, s.Login(store.SeedAdminEmail, store.SeedAdminPassword))

	s.Logout()

	_, found := s.CurrentUser()
	assert.False(t, found)
	assert.False(t, s.AdminMode())
}

func TestStore_SetAdminMode(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.True(t, s.Login(store.SeedAdminEmail, store.SeedAdminPassword))
	require.True(t, s.AdminMode())

	s.SetAdminMode(false)
	assert.False(t, s.AdminMode(), "admin can preview the staff view")

	s.SetAdminMode(true)
	assert.True(t, s.AdminMode())
}

func TestStore_ResetToSeed(t *testing.T) {
	// Arrange - mutate away from the seed
	s, _, _ := newTestStore(t)
	task := s.CreateTask()
	_, err := s.AddUser(models.NewUserInput{Name: "X", Email: "x@x.com", Password: "pw"})
	require.NoError(t, err)

	// Act
	s.ResetToSeed()

	// Assert - only seed data remains
	assert.Len(t, s.Users(), 2)
	_, found := s.TaskByID(task.ID)
	assert.False(t, found, "created task should be gone after reset")
}

func TestStore_EveryMutationPersists(t *testing.T) {
	s, mem, _ := newTestStore(t)

	before := mem.Saves
	task := s.CreateTask()
	s.UpdateTask(task.ID, models.TaskUpdate{})
	s.AssignTask("u", task.ID)
	s.DeleteTask(task.ID)

	assert.Equal(t, before+4, mem.Saves, "each mutation should overwrite the document once")
}

func TestStore_PersistedDocumentRoundTrips(t *testing.T) {
	// Arrange - build up some state
	s, mem, _ := newTestStore(t)
	task := s.CreateTask()
	pages := s.PagesForTask(task.ID)
	require.Len(t, pages, 1)
	section, ok := s.CreateSection(pages[0].ID, models.SectionMultipleChoice)
	require.True(t, ok)

	// Act - load the persisted bytes into a second store
	var onDisk models.AppState
	require.NoError(t, json.Unmarshal(mem.Doc, &onDisk))
	reloaded, err := store.New(mem, zerolog.Nop())
	require.NoError(t, err)

	// Assert - the section came back with its concrete payload type
	got, found := reloaded.SectionByID(section.ID)
	require.True(t, found)
	data, isChoice := got.Data.(models.MultipleChoiceData)
	require.True(t, isChoice, "payload should decode to MultipleChoiceData, got %T", got.Data)
	assert.Len(t, data.Options, 2)
}
