// Staff handlers: dashboard, task list with group lock state, task viewer,
// answers, and completion.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"

	"github.com/avissapr/onboardbox/internal/models"
	"github.com/avissapr/onboardbox/internal/security"
	"github.com/avissapr/onboardbox/internal/services"
	"github.com/avissapr/onboardbox/internal/store"
)

// StaffHandler handles employee-facing requests. Every endpoint operates on
// the authenticated user's own assignments; there is no cross-user access.
type StaffHandler struct {
	sessions  *session.Store
	store     *store.Store
	validator *security.ValidationService
	log       zerolog.Logger
}

// NewStaffHandler creates a StaffHandler with its dependencies.
func NewStaffHandler(sessions *session.Store, st *store.Store, validator *security.ValidationService, log zerolog.Logger) *StaffHandler {
	return &StaffHandler{
		sessions:  sessions,
		store:     st,
		validator: validator,
		log:       log,
	}
}

func (h *StaffHandler) sessionUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// Dashboard returns the numbers behind the progress ring: completion
// percentage, completed count, and remaining count.
func (h *StaffHandler) Dashboard(c *fiber.Ctx) error {
	userID := h.sessionUserID(c)
	assignments := h.store.AssignmentsForUser(userID)

	completed := 0
	for _, a := range assignments {
		if a.Status == models.StatusCompleted {
			completed++
		}
	}

	return c.JSON(fiber.Map{
		"progress":  services.Progress(assignments),
		"completed": completed,
		"remaining": len(assignments) - completed,
		"total":     len(assignments),
	})
}

// taskSummary is one entry in the staff task list.
type taskSummary struct {
	Task       models.Task             `json:"task"`
	Assignment models.Assignment       `json:"assignment"`
	Status     models.AssignmentStatus `json:"status"`
}

// groupView is a task group with its lock state evaluated for the user.
type groupView struct {
	models.TaskGroup
	EffectivelyLocked bool          `json:"effectivelyLocked"`
	Tasks             []taskSummary `json:"tasks"`
}

// ListTasks returns the user's onboarding view: their task groups with lock
// state evaluated against their join date, plus any directly assigned tasks
// that no group contains.
func (h *StaffHandler) ListTasks(c *fiber.Ctx) error {
	userID := h.sessionUserID(c)
	user, ok := h.store.UserByID(userID)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unknown user")
	}

	assignments := h.store.AssignmentsForUser(userID)
	byTask := make(map[string]models.Assignment, len(assignments))
	for _, a := range assignments {
		byTask[a.TaskID] = a
	}

	summary := func(taskID string) (taskSummary, bool) {
		assignment, ok := byTask[taskID]
		if !ok {
			return taskSummary{}, false
		}
		task, ok := h.store.TaskByID(taskID)
		if !ok {
			return taskSummary{}, false
		}
		return taskSummary{Task: task, Assignment: assignment, Status: assignment.Status}, true
	}

	grouped := make(map[string]bool)
	groups := h.store.GetUserTaskGroups(userID)
	groupViews := make([]groupView, 0, len(groups))
	for _, g := range groups {
		view := groupView{
			TaskGroup:         g,
			EffectivelyLocked: services.IsGroupLocked(g, user),
			Tasks:             []taskSummary{},
		}
		for _, taskID := range g.TaskIDs {
			grouped[taskID] = true
			if ts, ok := summary(taskID); ok {
				view.Tasks = append(view.Tasks, ts)
			}
		}
		groupViews = append(groupViews, view)
	}

	ungrouped := []taskSummary{}
	for _, a := range assignments {
		if grouped[a.TaskID] {
			continue
		}
		if ts, ok := summary(a.TaskID); ok {
			ungrouped = append(ungrouped, ts)
		}
	}

	return c.JSON(fiber.Map{
		"groups":    groupViews,
		"ungrouped": ungrouped,
	})
}

// GetTask returns a task the user is assigned to, with its pages, sections,
// and the user's recorded answers. Tasks reachable only through locked
// groups are refused until they unlock.
func (h *StaffHandler) GetTask(c *fiber.Ctx) error {
	userID := h.sessionUserID(c)
	taskID := c.Params("id")

	assignment, ok := h.store.AssignmentFor(userID, taskID)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "task not assigned to you")
	}
	task, ok := h.store.TaskByID(taskID)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "task not found")
	}

	if h.taskLockedForUser(userID, taskID) {
		return fiber.NewError(fiber.StatusForbidden, "this task group is still locked")
	}

	type pageView struct {
		models.Page
		Sections []models.Section `json:"sections"`
	}
	pages := h.store.PagesForTask(taskID)
	views := make([]pageView, 0, len(pages))
	for _, p := range pages {
		views = append(views, pageView{Page: p, Sections: h.store.SectionsForPage(p.ID)})
	}

	return c.JSON(fiber.Map{
		"task":       task,
		"pages":      views,
		"assignment": assignment,
		"answers":    h.store.AnswersForAssignment(assignment.ID),
	})
}

// taskLockedForUser reports whether every group containing the task is
// locked for the user. A task in no group, or in at least one unlocked
// group, is accessible.
func (h *StaffHandler) taskLockedForUser(userID, taskID string) bool {
	user, ok := h.store.UserByID(userID)
	if !ok {
		return false
	}

	inAnyGroup := false
	for _, g := range h.store.GetUserTaskGroups(userID) {
		for _, id := range g.TaskIDs {
			if id != taskID {
				continue
			}
			inAnyGroup = true
			if !services.IsGroupLocked(g, user) {
				return false
			}
		}
	}
	return inAnyGroup
}

type saveAnswerRequest struct {
	Value any `json:"value"`
}

// SaveAnswer upserts the user's answer for one section of their assignment.
// The store advances a NOT_STARTED assignment to IN_PROGRESS on the first
// answer.
func (h *StaffHandler) SaveAnswer(c *fiber.Ctx) error {
	userID := h.sessionUserID(c)
	assignment, ok := h.store.AssignmentByID(c.Params("id"))
	if !ok || assignment.UserID != userID {
		return fiber.NewError(fiber.StatusNotFound, "assignment not found")
	}

	if err := h.validator.ValidateAnswerSize(len(c.Body())); err != nil {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, err.Error())
	}

	var req saveAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if !h.store.SaveAnswer(assignment.ID, c.Params("sectionId"), req.Value) {
		return fiber.NewError(fiber.StatusNotFound, "assignment not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CompleteTask marks the user's assignment COMPLETED, after checking that
// every required question section has an answer. The gate lives here: the
// store's CompleteTask applies unconditionally by contract.
func (h *StaffHandler) CompleteTask(c *fiber.Ctx) error {
	userID := h.sessionUserID(c)
	assignment, ok := h.store.AssignmentByID(c.Params("id"))
	if !ok || assignment.UserID != userID {
		return fiber.NewError(fiber.StatusNotFound, "assignment not found")
	}

	answered := make(map[string]bool)
	for _, a := range h.store.AnswersForAssignment(assignment.ID) {
		answered[a.SectionID] = true
	}
	for _, sec := range h.store.SectionsForTask(assignment.TaskID) {
		if sec.Required && sec.Type.IsQuestion() && !answered[sec.ID] {
			return fiber.NewError(fiber.StatusConflict, "all required sections must be answered first")
		}
	}

	h.store.CompleteTask(assignment.ID)
	h.log.Info().Str("assignment_id", assignment.ID).Str("user_id", userID).Msg("task completed")
	return c.SendStatus(fiber.StatusNoContent)
}

// Profile returns the user's own account record.
func (h *StaffHandler) Profile(c *fiber.Ctx) error {
	user, ok := h.store.UserByID(h.sessionUserID(c))
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unknown user")
	}
	return c.JSON(user.Sanitized())
}

// UpdateProfile lets the user edit their own contact details. Role, email,
// and join date stay admin-managed.
func (h *StaffHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := h.sessionUserID(c)

	var req struct {
		Name     *string `json:"name"`
		Image    *string `json:"image"`
		Phone    *string `json:"phone"`
		Password *string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	h.store.UpdateUser(userID, models.UserUpdate{
		Name:     req.Name,
		Image:    req.Image,
		Phone:    req.Phone,
		Password: req.Password,
	})
	return c.SendStatus(fiber.StatusNoContent)
}
