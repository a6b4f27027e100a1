// Task-group mutations and the group/assignment sync step.
package store

import (
	"github.com/avissapr/onboardbox/internal/models"
)

// SetUserTaskGroups replaces the user's task groups wholesale, then syncs
// assignments: every task id appearing in any group gets an assignment for
// the user, created if missing.
//
// The sync is deliberately create-only. Dropping a task from every group
// does NOT remove its assignment. That asymmetry with SetUserAssignments is
// preserved from the source system until product confirms the intended
// behavior (see DESIGN.md).
func (s *Store) SetUserTaskGroups(userID string, groups []models.TaskGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Upsert the UserTaskGroups record.
	replaced := false
	for i := range s.state.UserTaskGroups {
		if s.state.UserTaskGroups[i].UserID == userID {
			s.state.UserTaskGroups[i].Groups = groups
			replaced = true
			break
		}
	}
	if !replaced {
		s.state.UserTaskGroups = append(s.state.UserTaskGroups, models.UserTaskGroups{
			UserID: userID,
			Groups: groups,
		})
	}

	// Union of task ids across all groups, de-duplicated, first-seen order.
	seen := make(map[string]bool)
	var allTaskIDs []string
	for _, g := range groups {
		for _, id := range g.TaskIDs {
			if !seen[id] {
				seen[id] = true
				allTaskIDs = append(allTaskIDs, id)
			}
		}
	}

	assigned := make(map[string]bool)
	for _, a := range s.state.Assignments {
		if a.UserID == userID {
			assigned[a.TaskID] = true
		}
	}

	now := s.now()
	for _, taskID := range allTaskIDs {
		if assigned[taskID] {
			continue
		}
		s.state.Assignments = append(s.state.Assignments, models.Assignment{
			ID:        s.newID(),
			UserID:    userID,
			TaskID:    taskID,
			Status:    models.StatusNotStarted,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	s.persist()
	s.log.Debug().Str("user_id", userID).Int("groups", len(groups)).Msg("task groups set")
}

// GetUserTaskGroups returns the user's task groups, or an empty slice when
// the user has none. Pure read.
func (s *Store) GetUserTaskGroups(userID string) []models.TaskGroup {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, utg := range s.state.UserTaskGroups {
		if utg.UserID == userID {
			return append([]models.TaskGroup(nil), utg.Groups...)
		}
	}
	return []models.TaskGroup{}
}
