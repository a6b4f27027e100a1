// Read helpers. All reads observe the writer's latest in-memory state
// directly and return copies, so callers can hold results across mutations.
package store

import (
	"sort"
	"strings"

	"github.com/avissapr/onboardbox/internal/models"
)

// State returns a shallow snapshot of the whole aggregate. Intended for
// diagnostics and tests; handlers use the narrower reads below.
func (s *Store) State() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	snap.Users = append([]models.User(nil), s.state.Users...)
	snap.Tasks = append([]models.Task(nil), s.state.Tasks...)
	snap.Pages = append([]models.Page(nil), s.state.Pages...)
	snap.Sections = append([]models.Section(nil), s.state.Sections...)
	snap.Assignments = append([]models.Assignment(nil), s.state.Assignments...)
	snap.Answers = append([]models.Answer(nil), s.state.Answers...)
	snap.UserTaskGroups = append([]models.UserTaskGroups(nil), s.state.UserTaskGroups...)
	return snap
}

// CurrentUser returns the user the session points at, if any.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentUserID == "" {
		return models.User{}, false
	}
	for _, u := range s.state.Users {
		if u.ID == s.state.CurrentUserID {
			return u, true
		}
	}
	return models.User{}, false
}

// AdminMode reports the current view-mode toggle.
func (s *Store) AdminMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AdminMode
}

// Users returns all user accounts in insertion order.
func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.User(nil), s.state.Users...)
}

// UserByID looks a user up by id.
func (s *Store) UserByID(userID string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.state.Users {
		if u.ID == userID {
			return u, true
		}
	}
	return models.User{}, false
}

// EmailInUse reports whether any user other than exceptUserID already uses
// the email, case-insensitively. The admin-edit flow calls this before
// UpdateUser, which itself does not re-validate.
func (s *Store) EmailInUse(email string, exceptUserID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.state.Users {
		if u.ID != exceptUserID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// Tasks returns all tasks in insertion order.
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Task(nil), s.state.Tasks...)
}

// TaskByID looks a task up by id.
func (s *Store) TaskByID(taskID string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.state.Tasks {
		if t.ID == taskID {
			return t, true
		}
	}
	return models.Task{}, false
}

// PagesForTask returns the task's pages ordered by index.
func (s *Store) PagesForTask(taskID string) []models.Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pages []models.Page
	for _, p := range s.state.Pages {
		if p.TaskID == taskID {
			pages = append(pages, p)
		}
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Index < pages[j].Index })
	return pages
}

// PageByID looks a page up by id.
func (s *Store) PageByID(pageID string) (models.Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.state.Pages {
		if p.ID == pageID {
			return p, true
		}
	}
	return models.Page{}, false
}

// SectionsForPage returns the page's sections ordered by index.
func (s *Store) SectionsForPage(pageID string) []models.Section {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sections []models.Section
	for _, sec := range s.state.Sections {
		if sec.PageID == pageID {
			sections = append(sections, sec)
		}
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].Index < sections[j].Index })
	return sections
}

// SectionByID looks a section up by id.
func (s *Store) SectionByID(sectionID string) (models.Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sec := range s.state.Sections {
		if sec.ID == sectionID {
			return sec, true
		}
	}
	return models.Section{}, false
}

// SectionsForTask returns all sections of a task across its pages, ordered
// page index first, then section index. Used by the completion gate.
func (s *Store) SectionsForTask(taskID string) []models.Section {
	s.mu.Lock()
	defer s.mu.Unlock()

	pageIndex := make(map[string]int)
	for _, p := range s.state.Pages {
		if p.TaskID == taskID {
			pageIndex[p.ID] = p.Index
		}
	}

	var sections []models.Section
	for _, sec := range s.state.Sections {
		if _, ok := pageIndex[sec.PageID]; ok {
			sections = append(sections, sec)
		}
	}
	sort.Slice(sections, func(i, j int) bool {
		pi, pj := pageIndex[sections[i].PageID], pageIndex[sections[j].PageID]
		if pi != pj {
			return pi < pj
		}
		return sections[i].Index < sections[j].Index
	})
	return sections
}

// AssignmentsForUser returns the user's assignments in insertion order.
func (s *Store) AssignmentsForUser(userID string) []models.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()

	var assignments []models.Assignment
	for _, a := range s.state.Assignments {
		if a.UserID == userID {
			assignments = append(assignments, a)
		}
	}
	return assignments
}

// AssignmentByID looks an assignment up by id.
func (s *Store) AssignmentByID(assignmentID string) (models.Assignment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.state.Assignments {
		if a.ID == assignmentID {
			return a, true
		}
	}
	return models.Assignment{}, false
}

// AssignmentFor returns the assignment for a (user, task) pair, if any.
func (s *Store) AssignmentFor(userID, taskID string) (models.Assignment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.state.Assignments {
		if a.UserID == userID && a.TaskID == taskID {
			return a, true
		}
	}
	return models.Assignment{}, false
}

// AnswersForAssignment returns the answers recorded under an assignment.
func (s *Store) AnswersForAssignment(assignmentID string) []models.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()

	var answers []models.Answer
	for _, a := range s.state.Answers {
		if a.AssignmentID == assignmentID {
			answers = append(answers, a)
		}
	}
	return answers
}
