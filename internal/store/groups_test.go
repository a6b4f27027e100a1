package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avissapr/onboardbox/internal/models"
)

func TestStore_SetUserTaskGroups_CreatesMissingAssignments(t *testing.T) {
	// Arrange
	s, _, _ := newTestStore(t)
	user, taskA := fixtureUserAndTask(t, s)
	taskB := s.CreateTask()

	// Act - both tasks appear across two groups, taskA twice
	s.SetUserTaskGroups(user.ID, []models.TaskGroup{
		{ID: "g1", Name: "Week One", TaskIDs: []string{taskA.ID, taskB.ID}},
		{ID: "g2", Name: "Week Two", TaskIDs: []string{taskA.ID}},
	})

	// Assert - one assignment per distinct task, duplicates collapsed
	assignments := s.AssignmentsForUser(user.ID)
	require.Len(t, assignments, 2)
	_, found := s.AssignmentFor(user.ID, taskA.ID)
	assert.True(t, found)
	_, found = s.AssignmentFor(user.ID, taskB.ID)
	assert.True(t, found)
}

func TestStore_SetUserTaskGroups_SyncIsCreateOnly(t *testing.T) {
	// Arrange - an in-progress assignment created through a group
	s, _, _ := newTestStore(t)
	user, task := fixtureUserAndTask(t, s)
	s.SetUserTaskGroups(user.ID, []models.TaskGroup{
		{ID: "g1", Name: "Week One", TaskIDs: []string{task.ID}},
	})
	assignment, ok := s.AssignmentFor(user.ID, task.ID)
	require.True(t, ok)
	require.True(t, s.UpdateAssignmentStatus(assignment.ID, models.StatusInProgress))

	// Act - the task is dropped from every group
	s.SetUserTaskGroups(user.ID, []models.TaskGroup{
		{ID: "g1", Name: "Week One", TaskIDs: []string{}},
	})

	// Assert - the groups shrank but the assignment survives untouched.
	// This is the deliberate asymmetry with SetUserAssignments, which would
	// have dropped it.
	groups := s.GetUserTaskGroups(user.ID)
	require.Len(t, groups, 1)
	assert.Empty(t, groups[0].TaskIDs)

	kept, found := s.AssignmentFor(user.ID, task.ID)
	require.True(t, found, "group sync never removes assignments")
	assert.Equal(t, assignment.ID, kept.ID)
	assert.Equal(t, models.StatusInProgress, kept.Status)
}

func TestStore_SetUserTaskGroups_ExistingAssignmentsKeepIdentity(t *testing.T) {
	s, _, _ := newTestStore(t)
	user, task := fixtureUserAndTask(t, s)
	s.AssignTask(user.ID, task.ID)
	direct, _ := s.AssignmentFor(user.ID, task.ID)

	s.SetUserTaskGroups(user.ID, []models.TaskGroup{
		{ID: "g1", Name: "Week One", TaskIDs: []string{task.ID}},
	})

	assignments := s.AssignmentsForUser(user.ID)
	require.Len(t, assignments, 1, "sync must not duplicate a direct assignment")
	assert.Equal(t, direct.ID, assignments[0].ID)
}

func TestStore_SetUserTaskGroups_ReplacesGroupsWholesale(t *testing.T) {
	// Arrange
	s, _, _ := newTestStore(t)
	user, task := fixtureUserAndTask(t, s)
	unlock := 7
	s.SetUserTaskGroups(user.ID, []models.TaskGroup{
		{ID: "g1", Name: "Week One", TaskIDs: []string{task.ID}},
		{ID: "g2", Name: "Week Two", TaskIDs: []string{}, Locked: true, UnlockAfterDays: &unlock},
	})

	// Act - the second call fully replaces the stored sequence
	s.SetUserTaskGroups(user.ID, []models.TaskGroup{
		{ID: "g3", Name: "Month One", TaskIDs: []string{}},
	})

	// Assert
	groups := s.GetUserTaskGroups(user.ID)
	require.Len(t, groups, 1)
	assert.Equal(t, "g3", groups[0].ID)
}

func TestStore_GetUserTaskGroups_EmptyForUnknownUser(t *testing.T) {
	s, _, _ := newTestStore(t)

	groups := s.GetUserTaskGroups("nobody")

	assert.NotNil(t, groups, "callers range over the result without a nil check")
	assert.Empty(t, groups)
}
