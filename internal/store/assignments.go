// Assignment and answer mutations: the progress-ledger half of the API.
package store

import (
	"github.com/avissapr/onboardbox/internal/models"
)

// AssignTask gives a task to a user. Idempotent: when an assignment already
// exists for the (user, task) pair it is left untouched (same id, same
// createdAt) and no second record is ever created.
func (s *Store) AssignTask(userID, taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.state.Assignments {
		if a.UserID == userID && a.TaskID == taskID {
			return
		}
	}

	now := s.now()
	s.state.Assignments = append(s.state.Assignments, models.Assignment{
		ID:        s.newID(),
		UserID:    userID,
		TaskID:    taskID,
		Status:    models.StatusNotStarted,
		CreatedAt: now,
		UpdatedAt: now,
	})
	s.persist()
	s.log.Debug().Str("user_id", userID).Str("task_id", taskID).Msg("task assigned")
}

// RemoveAssignment deletes the assignment for the (user, task) pair if one
// exists. Answers recorded under the assignment are intentionally left in
// place, parity with the system this replaces; see DESIGN.md.
func (s *Store) RemoveAssignment(userID, taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	assignments := s.state.Assignments[:0]
	for _, a := range s.state.Assignments {
		if a.UserID == userID && a.TaskID == taskID {
			found = true
			continue
		}
		assignments = append(assignments, a)
	}
	s.state.Assignments = assignments
	if found {
		s.persist()
	}
	return found
}

// SetUserAssignments replaces the user's entire assignment set. Assignments
// for ids already held keep their record (id, status, createdAt); ids not in
// taskIDs are dropped. This is the full-replace counterpart of the
// create-only union performed by SetUserTaskGroups.
func (s *Store) SetUserAssignments(userID string, taskIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]models.Assignment)
	others := make([]models.Assignment, 0, len(s.state.Assignments))
	for _, a := range s.state.Assignments {
		if a.UserID == userID {
			existing[a.TaskID] = a
		} else {
			others = append(others, a)
		}
	}

	now := s.now()
	kept := make([]models.Assignment, 0, len(taskIDs))
	for _, taskID := range taskIDs {
		if a, ok := existing[taskID]; ok {
			kept = append(kept, a)
			continue
		}
		kept = append(kept, models.Assignment{
			ID:        s.newID(),
			UserID:    userID,
			TaskID:    taskID,
			Status:    models.StatusNotStarted,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	s.state.Assignments = append(others, kept...)
	s.persist()
}

// SaveAnswer upserts the user's answer for one section of one assignment.
// The first answer against a NOT_STARTED assignment advances it to
// IN_PROGRESS; later saves never move the status again. Returns false when
// the assignment does not exist.
func (s *Store) SaveAnswer(assignmentID, sectionID string, value any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var assignment *models.Assignment
	for i := range s.state.Assignments {
		if s.state.Assignments[i].ID == assignmentID {
			assignment = &s.state.Assignments[i]
			break
		}
	}
	if assignment == nil {
		return false
	}

	now := s.now()
	updated := false
	for i := range s.state.Answers {
		a := &s.state.Answers[i]
		if a.AssignmentID == assignmentID && a.SectionID == sectionID {
			a.Value = value
			a.UpdatedAt = now
			updated = true
			break
		}
	}
	if !updated {
		s.state.Answers = append(s.state.Answers, models.Answer{
			ID:           s.newID(),
			AssignmentID: assignmentID,
			SectionID:    sectionID,
			Value:        value,
			UpdatedAt:    now,
		})
	}

	if assignment.Status == models.StatusNotStarted {
		assignment.Status = models.StatusInProgress
		assignment.UpdatedAt = now
	}

	s.persist()
	return true
}

// CompleteTask marks an assignment COMPLETED and stamps completedAt. The
// store does not re-check that required sections were answered; that gate
// belongs to the caller driving the flow. Returns false when absent.
func (s *Store) CompleteTask(assignmentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Assignments {
		a := &s.state.Assignments[i]
		if a.ID != assignmentID {
			continue
		}
		now := s.now()
		a.Status = models.StatusCompleted
		a.CompletedAt = &now
		a.UpdatedAt = now
		s.persist()
		s.log.Debug().Str("assignment_id", assignmentID).Msg("assignment completed")
		return true
	}
	return false
}

// UpdateAssignmentStatus sets an assignment's status directly and bumps its
// updatedAt. Escape hatch for admin corrections; normal flows go through
// SaveAnswer and CompleteTask. Returns false when absent.
func (s *Store) UpdateAssignmentStatus(assignmentID string, status models.AssignmentStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Assignments {
		a := &s.state.Assignments[i]
		if a.ID != assignmentID {
			continue
		}
		a.Status = status
		a.UpdatedAt = s.now()
		s.persist()
		return true
	}
	return false
}
