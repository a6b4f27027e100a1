// Admin handlers: task builder, user management, assignments, task groups.
package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"

	"github.com/avissapr/onboardbox/internal/models"
	"github.com/avissapr/onboardbox/internal/security"
	"github.com/avissapr/onboardbox/internal/store"
)

// AdminHandler handles all administrator-specific HTTP requests: the task
// builder (tasks, pages, sections), user management, direct assignments,
// and per-user task groups.
type AdminHandler struct {
	sessions  *session.Store
	store     *store.Store
	validator *security.ValidationService
	log       zerolog.Logger
}

// NewAdminHandler creates an AdminHandler with its dependencies.
func NewAdminHandler(sessions *session.Store, st *store.Store, validator *security.ValidationService, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		sessions:  sessions,
		store:     st,
		validator: validator,
		log:       log,
	}
}

// ============================================================================
// Tasks, pages, sections (task builder)
// ============================================================================

// ListTasks returns every task.
func (h *AdminHandler) ListTasks(c *fiber.Ctx) error {
	return c.JSON(h.store.Tasks())
}

// CreateTask creates a new untitled task with its first page and returns it.
func (h *AdminHandler) CreateTask(c *fiber.Ctx) error {
	task := h.store.CreateTask()
	return c.Status(fiber.StatusCreated).JSON(task)
}

// GetTask returns one task with its pages and their sections, in display order.
func (h *AdminHandler) GetTask(c *fiber.Ctx) error {
	task, ok := h.store.TaskByID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "task not found")
	}

	type pageView struct {
		models.Page
		Sections []models.Section `json:"sections"`
	}

	pages := h.store.PagesForTask(task.ID)
	views := make([]pageView, 0, len(pages))
	for _, p := range pages {
		views = append(views, pageView{
			Page:     p,
			Sections: h.store.SectionsForPage(p.ID),
		})
	}

	return c.JSON(fiber.Map{
		"task":  task,
		"pages": views,
	})
}

// UpdateTask merges partial task fields (title, opening page settings).
func (h *AdminHandler) UpdateTask(c *fiber.Ctx) error {
	var update models.TaskUpdate
	if err := c.BodyParser(&update); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if update.Title != nil {
		if err := h.validator.ValidateName("task title", *update.Title); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	if !h.store.UpdateTask(c.Params("id"), update) {
		return fiber.NewError(fiber.StatusNotFound, "task not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteTask deletes a task and cascades to everything referencing it.
func (h *AdminHandler) DeleteTask(c *fiber.Ctx) error {
	h.store.DeleteTask(c.Params("id"))
	// Deleting an already-deleted task is fine; the UI deletes speculatively.
	return c.SendStatus(fiber.StatusNoContent)
}

// CreatePage appends a page to a task.
func (h *AdminHandler) CreatePage(c *fiber.Ctx) error {
	page, ok := h.store.CreatePage(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "task not found")
	}
	return c.Status(fiber.StatusCreated).JSON(page)
}

// DeletePage deletes a page. A task must keep at least one page; that rule
// is enforced here rather than in the store, mirroring where the source
// system kept it.
func (h *AdminHandler) DeletePage(c *fiber.Ctx) error {
	page, ok := h.store.PageByID(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}

	if len(h.store.PagesForTask(page.TaskID)) <= 1 {
		return fiber.NewError(fiber.StatusConflict, "a task must keep at least one page")
	}

	h.store.DeletePage(page.ID)
	return c.SendStatus(fiber.StatusNoContent)
}

type createSectionRequest struct {
	Type models.SectionType `json:"type"`
}

// CreateSection appends a section of the requested type to a page,
// initialized with the type's default payload.
func (h *AdminHandler) CreateSection(c *fiber.Ctx) error {
	var req createSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if !req.Type.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "unknown section type")
	}

	section, ok := h.store.CreateSection(c.Params("id"), req.Type)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "page not found")
	}
	return c.Status(fiber.StatusCreated).JSON(section)
}

type updateSectionRequest struct {
	ColorTheme *models.ColorTheme `json:"colorTheme"`
	Required   *bool              `json:"required"`
	Data       json.RawMessage    `json:"data"`
}

// UpdateSection shallow-merges section fields. A data payload, when present,
// replaces the section's data as a whole object and must match the section's
// type; clients editing one nested key send the pre-merged payload.
func (h *AdminHandler) UpdateSection(c *fiber.Ctx) error {
	section, ok := h.store.SectionByID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "section not found")
	}

	var req updateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	update := models.SectionUpdate{
		ColorTheme: req.ColorTheme,
		Required:   req.Required,
	}
	if len(req.Data) > 0 {
		data, err := models.UnmarshalSectionData(section.Type, req.Data)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "data does not match section type")
		}
		update.Data = data
	}

	h.store.UpdateSection(section.ID, update)
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteSection deletes a section and its answers.
func (h *AdminHandler) DeleteSection(c *fiber.Ctx) error {
	h.store.DeleteSection(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// ============================================================================
// Assignments and task groups
// ============================================================================

type assignmentRequest struct {
	UserID string `json:"userId"`
	TaskID string `json:"taskId"`
}

// AssignTask assigns a task to a user. Idempotent.
func (h *AdminHandler) AssignTask(c *fiber.Ctx) error {
	var req assignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" || req.TaskID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "userId and taskId are required")
	}

	h.store.AssignTask(req.UserID, req.TaskID)
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveAssignment removes the assignment for a (user, task) pair.
// Identified by query parameters: ?userId=...&taskId=...
func (h *AdminHandler) RemoveAssignment(c *fiber.Ctx) error {
	userID := c.Query("userId")
	taskID := c.Query("taskId")
	if userID == "" || taskID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "userId and taskId are required")
	}

	h.store.RemoveAssignment(userID, taskID)
	return c.SendStatus(fiber.StatusNoContent)
}

type setAssignmentsRequest struct {
	TaskIDs []string `json:"taskIds"`
}

// SetUserAssignments replaces a user's entire assignment set with the given
// task ids. Contrast with SetUserTaskGroups, which never removes.
func (h *AdminHandler) SetUserAssignments(c *fiber.Ctx) error {
	var req setAssignmentsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if _, ok := h.store.UserByID(c.Params("id")); !ok {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	h.store.SetUserAssignments(c.Params("id"), req.TaskIDs)
	return c.SendStatus(fiber.StatusNoContent)
}

type setTaskGroupsRequest struct {
	Groups []models.TaskGroup `json:"groups"`
}

// SetUserTaskGroups replaces a user's task groups and syncs assignments
// (create-only: tasks dropped from groups keep their assignments).
func (h *AdminHandler) SetUserTaskGroups(c *fiber.Ctx) error {
	var req setTaskGroupsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if _, ok := h.store.UserByID(c.Params("id")); !ok {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	for _, g := range req.Groups {
		if err := h.validator.ValidateGroupName(g.Name); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := h.validator.ValidateUnlockAfterDays(g.UnlockAfterDays); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	h.store.SetUserTaskGroups(c.Params("id"), req.Groups)
	return c.SendStatus(fiber.StatusNoContent)
}

// GetUserTaskGroups returns a user's task groups (empty list when none).
func (h *AdminHandler) GetUserTaskGroups(c *fiber.Ctx) error {
	return c.JSON(h.store.GetUserTaskGroups(c.Params("id")))
}

type updateStatusRequest struct {
	Status models.AssignmentStatus `json:"status"`
}

// UpdateAssignmentStatus sets an assignment's status directly. Escape hatch
// for admin corrections.
func (h *AdminHandler) UpdateAssignmentStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	switch req.Status {
	case models.StatusNotStarted, models.StatusInProgress, models.StatusCompleted:
	default:
		return fiber.NewError(fiber.StatusBadRequest, "unknown status")
	}

	if !h.store.UpdateAssignmentStatus(c.Params("id"), req.Status) {
		return fiber.NewError(fiber.StatusNotFound, "assignment not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ============================================================================
// Users
// ============================================================================

// ListUsers returns every user account, passwords stripped.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users := h.store.Users()
	sanitized := make([]models.User, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, u.Sanitized())
	}
	return c.JSON(sanitized)
}

// AddUser creates a user account. Validation failures come back as 400s
// with the store's user-presentable message.
func (h *AdminHandler) AddUser(c *fiber.Ctx) error {
	var input models.NewUserInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.ValidateEmail(input.Email); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if input.JoinDate != "" {
		if err := h.validator.ValidateDate(input.JoinDate); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	user, err := h.store.AddUser(input)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	h.log.Info().Str("user_id", user.ID).Msg("admin created user")
	return c.Status(fiber.StatusCreated).JSON(user.Sanitized())
}

// UpdateUser merges partial user fields. The email-uniqueness check lives
// here in the admin-edit flow; the store's UpdateUser does not re-validate.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	userID := c.Params("id")
	if _, ok := h.store.UserByID(userID); !ok {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	var update models.UserUpdate
	if err := c.BodyParser(&update); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if update.Email != nil {
		if err := h.validator.ValidateEmail(*update.Email); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if h.store.EmailInUse(*update.Email, userID) {
			return fiber.NewError(fiber.StatusConflict, "email is already used")
		}
	}
	if update.JoinDate != nil && *update.JoinDate != "" {
		if err := h.validator.ValidateDate(*update.JoinDate); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	h.store.UpdateUser(userID, update)
	return c.SendStatus(fiber.StatusNoContent)
}

// ============================================================================
// Mode toggle and demo reset
// ============================================================================

type adminModeRequest struct {
	AdminMode bool `json:"adminMode"`
}

// SetAdminMode toggles the admin view mode. The route group already
// enforces the ADMIN role.
func (h *AdminHandler) SetAdminMode(c *fiber.Ctx) error {
	var req adminModeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	h.store.SetAdminMode(req.AdminMode)
	return c.SendStatus(fiber.StatusNoContent)
}

// Reset replaces the whole state with the seed dataset. Demo use only.
func (h *AdminHandler) Reset(c *fiber.Ctx) error {
	h.store.ResetToSeed()
	h.log.Warn().Msg("admin reset application state")
	return c.SendStatus(fiber.StatusNoContent)
}
