package handlers

import (
	"errors"
	"strconv"
	"time"

	"assochub/internal/adapters/persistence/models"
	"assochub/internal/core/domain"
	"assochub/internal/core/services"
	"assochub/internal/pkg/pagination"
	"assochub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TaskHandler handles task endpoints
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create handles task creation
// @Summary Create task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param body body services.CreateTaskInput true "Task data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var input services.CreateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if userID, ok := c.Locals("userID").(uint); ok && input.AssignedBy == 0 {
		input.AssignedBy = userID
	}

	task, err := h.taskService.Create(c.Context(), &input)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Created(c, "Task created successfully", models.TaskFromDomain(task))
}

// Get handles task retrieval
// @Summary Get task
// @Tags Tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	task, err := h.taskService.GetByID(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Task retrieved successfully", models.TaskFromDomain(task))
}

// List handles task listing with filters
// @Summary List tasks
// @Tags Tasks
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Param assignee query int false "Filter by assignee"
// @Param assigner query int false "Filter by assigner"
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param due_from query string false "Due from (RFC3339)"
// @Param due_to query string false "Due to (RFC3339)"
// @Param overdue query bool false "Only overdue tasks"
// @Param search query string false "Search by title"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	input := &services.ListTasksInput{
		Page:    params.Page,
		Limit:   params.Limit,
		Overdue: c.QueryBool("overdue"),
		Search:  pagination.GetSearch(c),
	}
	if v := c.Query("assignee"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			uid := uint(id)
			input.Assignee = &uid
		}
	}
	if v := c.Query("assigner"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			uid := uint(id)
			input.Assigner = &uid
		}
	}
	if v := c.Query("status"); v != "" {
		s := domain.TaskStatus(v)
		input.Status = &s
	}
	if v := c.Query("priority"); v != "" {
		p := domain.TaskPriority(v)
		input.Priority = &p
	}
	if v := c.Query("due_from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			input.DueFrom = &t
		}
	}
	if v := c.Query("due_to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			input.DueTo = &t
		}
	}

	result, err := h.taskService.List(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list tasks")
	}

	rows := make([]*models.Task, 0, len(result.Tasks))
	for _, t := range result.Tasks {
		rows = append(rows, models.TaskFromDomain(t))
	}

	return response.Success(c, "Tasks retrieved successfully", pagination.NewResponse(rows, params, result.Total))
}

// Update handles task updates
// @Summary Update task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param body body services.UpdateTaskInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	var input services.UpdateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	task, err := h.taskService.Update(c.Context(), id, &input)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Task updated successfully", models.TaskFromDomain(task))
}

// Delete handles task deletion
// @Summary Delete task
// @Tags Tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	if err := h.taskService.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Task deleted successfully", nil)
}

// Start handles the not-started to in-progress transition
// @Summary Start task
// @Tags Tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /tasks/{id}/start [post]
func (h *TaskHandler) Start(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	task, err := h.taskService.Start(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Task started", models.TaskFromDomain(task))
}

// CompleteRequest carries the optional actual hours spent
type CompleteRequest struct {
	ActualHours *float64 `json:"actual_hours"`
}

// Complete handles task completion
// @Summary Complete task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param body body CompleteRequest false "Actual hours"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	var req CompleteRequest
	_ = c.BodyParser(&req) // Body is optional

	task, err := h.taskService.Complete(c.Context(), id, req.ActualHours)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Task completed", models.TaskFromDomain(task))
}

// CancelRequest carries the optional cancellation reason
type CancelRequest struct {
	Reason string `json:"reason"`
}

// Cancel handles task cancellation
// @Summary Cancel task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param body body CancelRequest false "Reason"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /tasks/{id}/cancel [post]
func (h *TaskHandler) Cancel(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	var req CancelRequest
	_ = c.BodyParser(&req) // Reason is optional

	task, err := h.taskService.Cancel(c.Context(), id, req.Reason)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Task cancelled", models.TaskFromDomain(task))
}

// Hold handles putting a task on hold
// @Summary Hold task
// @Tags Tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /tasks/{id}/hold [post]
func (h *TaskHandler) Hold(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	task, err := h.taskService.Hold(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Task put on hold", models.TaskFromDomain(task))
}

// Resume handles resuming a held task
// @Summary Resume task
// @Tags Tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /tasks/{id}/resume [post]
func (h *TaskHandler) Resume(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	task, err := h.taskService.Resume(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Task resumed", models.TaskFromDomain(task))
}

// ProgressRequest carries the new progress percentage
type ProgressRequest struct {
	Progress int `json:"progress"`
}

// UpdateProgress handles progress updates
// @Summary Update task progress
// @Description Set progress percentage; 100 completes the task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param body body ProgressRequest true "Progress percentage (0-100)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Security BearerAuth
// @Router /tasks/{id}/progress [patch]
func (h *TaskHandler) UpdateProgress(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	var req ProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	task, err := h.taskService.UpdateProgress(c.Context(), id, req.Progress)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Progress updated", models.TaskFromDomain(task))
}

// AssignRequest carries the new assignee
type AssignRequest struct {
	AssignedTo uint `json:"assigned_to"`
}

// Assign handles task reassignment
// @Summary Reassign task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param body body AssignRequest true "New assignee"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /tasks/{id}/assign [post]
func (h *TaskHandler) Assign(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.AssignedTo == 0 {
		return response.BadRequest(c, "Assignee is required")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	task, err := h.taskService.Assign(c.Context(), id, req.AssignedTo, userID)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Success(c, "Task reassigned", models.TaskFromDomain(task))
}

// MyOverview handles the personal task dashboard
// @Summary My task overview
// @Description Tasks assigned to and by the current user, with derived subsets
// @Tags Tasks
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /tasks/my-overview [get]
func (h *TaskHandler) MyOverview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	overview, err := h.taskService.MyOverview(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to build overview")
	}

	return response.Success(c, "Overview retrieved successfully", overview)
}

// Statistics handles task statistics
// @Summary Task statistics
// @Tags Tasks
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /tasks/statistics [get]
func (h *TaskHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.taskService.Statistics(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute statistics")
	}

	return response.Success(c, "Statistics retrieved successfully", stats)
}

// handleError maps task service errors to HTTP responses
func (h *TaskHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		return response.NotFound(c, "Task not found")
	case errors.Is(err, domain.ErrProgressRange):
		return response.BadRequest(c, "Progress must be between 0 and 100")
	case errors.Is(err, domain.ErrTaskCompleted):
		return response.Error(c, fiber.StatusUnprocessableEntity, "Task is already completed")
	case errors.Is(err, domain.ErrTaskCancelled):
		return response.Error(c, fiber.StatusUnprocessableEntity, "Task has been cancelled")
	case errors.Is(err, domain.ErrIllegalTransition):
		return response.Error(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, "Internal server error")
	}
}
