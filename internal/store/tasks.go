// Task, page, and section mutations: the task-builder half of the API.
package store

import (
	"fmt"

	"github.com/avissapr/onboardbox/internal/models"
)

// pageTitle names the nth page of a task ("Page 1", "Page 2", ...).
func pageTitle(n int) string {
	return fmt.Sprintf("Page %d", n)
}

// CreateTask appends a new untitled task owned by the current session user,
// together with its first page. Tasks are never created empty of pages.
func (s *Store) CreateTask() models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	task := models.Task{
		ID:          s.newID(),
		Title:       "Untitled Task",
		CreatedByID: s.state.CurrentUserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	firstPage := models.Page{
		ID:     s.newID(),
		TaskID: task.ID,
		Index:  0,
		Title:  "Page 1",
	}

	s.state.Tasks = append(s.state.Tasks, task)
	s.state.Pages = append(s.state.Pages, firstPage)
	s.persist()

	s.log.Debug().Str("task_id", task.ID).Msg("task created")
	return task
}

// UpdateTask merges the non-nil fields of the update into the task and bumps
// its updatedAt. Returns false when no task has the given id.
func (s *Store) UpdateTask(taskID string, update models.TaskUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Tasks {
		t := &s.state.Tasks[i]
		if t.ID != taskID {
			continue
		}
		if update.Title != nil {
			t.Title = *update.Title
		}
		if update.IncludeOpeningPage != nil {
			t.IncludeOpeningPage = *update.IncludeOpeningPage
		}
		if update.OpeningCoverURL != nil {
			t.OpeningCoverURL = *update.OpeningCoverURL
		}
		if update.OpeningCaption != nil {
			t.OpeningCaption = *update.OpeningCaption
		}
		t.UpdatedAt = s.now()
		s.persist()
		return true
	}
	return false
}

// DeleteTask removes a task and everything hanging off it: its pages, their
// sections, answers for those sections, assignments referencing the task,
// and the task's id inside every user's task groups. Returns false when the
// task does not exist (nothing else is touched in that case).
func (s *Store) DeleteTask(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for _, t := range s.state.Tasks {
		if t.ID == taskID {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	pageIDs := make(map[string]bool)
	for _, p := range s.state.Pages {
		if p.TaskID == taskID {
			pageIDs[p.ID] = true
		}
	}
	sectionIDs := make(map[string]bool)
	for _, sec := range s.state.Sections {
		if pageIDs[sec.PageID] {
			sectionIDs[sec.ID] = true
		}
	}

	tasks := s.state.Tasks[:0]
	for _, t := range s.state.Tasks {
		if t.ID != taskID {
			tasks = append(tasks, t)
		}
	}
	s.state.Tasks = tasks

	pages := s.state.Pages[:0]
	for _, p := range s.state.Pages {
		if p.TaskID != taskID {
			pages = append(pages, p)
		}
	}
	s.state.Pages = pages

	sections := s.state.Sections[:0]
	for _, sec := range s.state.Sections {
		if !pageIDs[sec.PageID] {
			sections = append(sections, sec)
		}
	}
	s.state.Sections = sections

	answers := s.state.Answers[:0]
	for _, a := range s.state.Answers {
		if !sectionIDs[a.SectionID] {
			answers = append(answers, a)
		}
	}
	s.state.Answers = answers

	assignments := s.state.Assignments[:0]
	for _, a := range s.state.Assignments {
		if a.TaskID != taskID {
			assignments = append(assignments, a)
		}
	}
	s.state.Assignments = assignments

	// Strip the task out of every user's task groups.
	for ui := range s.state.UserTaskGroups {
		groups := s.state.UserTaskGroups[ui].Groups
		for gi := range groups {
			ids := groups[gi].TaskIDs[:0]
			for _, id := range groups[gi].TaskIDs {
				if id != taskID {
					ids = append(ids, id)
				}
			}
			groups[gi].TaskIDs = ids
		}
	}

	s.persist()
	s.log.Debug().Str("task_id", taskID).Msg("task deleted with cascade")
	return true
}

// CreatePage appends a page to the task with index max(existing)+1 and a
// matching default title. Indices are monotonic within a task for the life of
// the document and are never reused after a deletion.
// Returns the zero Page and false when the task does not exist.
func (s *Store) CreatePage(taskID string) (models.Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	taskExists := false
	for _, t := range s.state.Tasks {
		if t.ID == taskID {
			taskExists = true
			break
		}
	}
	if !taskExists {
		return models.Page{}, false
	}

	maxIndex := -1
	for _, p := range s.state.Pages {
		if p.TaskID == taskID && p.Index > maxIndex {
			maxIndex = p.Index
		}
	}

	page := models.Page{
		ID:     s.newID(),
		TaskID: taskID,
		Index:  maxIndex + 1,
		Title:  pageTitle(maxIndex + 2),
	}
	s.state.Pages = append(s.state.Pages, page)
	s.persist()
	return page, true
}

// DeletePage removes a page, its sections, and answers to those sections.
// The "a task keeps at least one page" rule is a presentation policy and is
// enforced by the admin handler, not here. Returns false when absent.
func (s *Store) DeletePage(pageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	pages := s.state.Pages[:0]
	for _, p := range s.state.Pages {
		if p.ID == pageID {
			found = true
			continue
		}
		pages = append(pages, p)
	}
	if !found {
		return false
	}
	s.state.Pages = pages

	sectionIDs := make(map[string]bool)
	sections := s.state.Sections[:0]
	for _, sec := range s.state.Sections {
		if sec.PageID == pageID {
			sectionIDs[sec.ID] = true
			continue
		}
		sections = append(sections, sec)
	}
	s.state.Sections = sections

	answers := s.state.Answers[:0]
	for _, a := range s.state.Answers {
		if !sectionIDs[a.SectionID] {
			answers = append(answers, a)
		}
	}
	s.state.Answers = answers

	s.persist()
	return true
}

// CreateSection appends a section of the given type to a page, with index
// max(existing)+1, the default color theme, and the type's default payload.
// Returns the zero Section and false when the page does not exist or the
// type is unknown.
func (s *Store) CreateSection(pageID string, sectionType models.SectionType) (models.Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pageExists := false
	for _, p := range s.state.Pages {
		if p.ID == pageID {
			pageExists = true
			break
		}
	}
	if !pageExists {
		return models.Section{}, false
	}

	data, err := models.DefaultSectionData(sectionType, s.newID)
	if err != nil {
		s.log.Warn().Str("type", string(sectionType)).Msg("rejected section with unknown type")
		return models.Section{}, false
	}

	maxIndex := -1
	for _, sec := range s.state.Sections {
		if sec.PageID == pageID && sec.Index > maxIndex {
			maxIndex = sec.Index
		}
	}

	section := models.Section{
		ID:         s.newID(),
		PageID:     pageID,
		Index:      maxIndex + 1,
		Type:       sectionType,
		ColorTheme: models.ThemeDefault,
		Data:       data,
	}
	s.state.Sections = append(s.state.Sections, section)
	s.persist()
	return section, true
}

// UpdateSection shallow-merges the non-nil fields of the update. A non-nil
// Data replaces the payload as a whole object; callers changing one nested
// key must send the pre-merged payload. Returns false when absent.
func (s *Store) UpdateSection(sectionID string, update models.SectionUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Sections {
		sec := &s.state.Sections[i]
		if sec.ID != sectionID {
			continue
		}
		if update.ColorTheme != nil {
			sec.ColorTheme = *update.ColorTheme
		}
		if update.Required != nil {
			sec.Required = *update.Required
		}
		if update.Data != nil {
			sec.Data = update.Data
		}
		s.persist()
		return true
	}
	return false
}

// DeleteSection removes a section and any answers to it. Returns false when
// no section has the given id.
func (s *Store) DeleteSection(sectionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	sections := s.state.Sections[:0]
	for _, sec := range s.state.Sections {
		if sec.ID == sectionID {
			found = true
			continue
		}
		sections = append(sections, sec)
	}
	if !found {
		return false
	}
	s.state.Sections = sections

	answers := s.state.Answers[:0]
	for _, a := range s.state.Answers {
		if a.SectionID != sectionID {
			answers = append(answers, a)
		}
	}
	s.state.Answers = answers

	s.persist()
	return true
}
