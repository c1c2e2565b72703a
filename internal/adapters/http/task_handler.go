package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paratus/tasks/internal/infrastructure/logger"
	"github.com/paratus/tasks/internal/ports"
)

// TaskHandler handles task-related requests, including the computed views
type TaskHandler struct {
	taskService ports.TaskService
	viewService ports.ViewService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService ports.TaskService, viewService ports.ViewService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		viewService: viewService,
		logger:      logger,
	}
}

// Today godoc
// @Summary Today view
// @Description Overdue tasks and tasks due today, as computed sections
// @Tags tasks
// @Produce json
// @Success 200 {object} entities.ViewCollection
// @Router /tasks/today [get]
func (h *TaskHandler) Today(c echo.Context) error {
	view, err := h.viewService.Today(c.Request().Context())
	if err != nil {
		return serviceError(h.logger, "Today view", err)
	}
	return c.JSON(http.StatusOK, view)
}

// Upcoming godoc
// @Summary Upcoming view
// @Description Overdue tasks and one computed section per day of the current week
// @Tags tasks
// @Produce json
// @Success 200 {object} entities.ViewCollection
// @Router /tasks/upcoming [get]
func (h *TaskHandler) Upcoming(c echo.Context) error {
	view, err := h.viewService.Upcoming(c.Request().Context())
	if err != nil {
		return serviceError(h.logger, "Upcoming view", err)
	}
	return c.JSON(http.StatusOK, view)
}

// QuickPicks godoc
// @Summary Due date shortcuts
// @Tags dates
// @Produce json
// @Success 200 {array} views.QuickPick
// @Router /dates/quick-picks [get]
func (h *TaskHandler) QuickPicks(c echo.Context) error {
	return c.JSON(http.StatusOK, h.viewService.QuickPicks(c.Request().Context()))
}

// GetTask godoc
// @Summary Get task by ID
// @Description Get a task with its sub-tasks, comments and checklist
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} entities.TaskDetail
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(h.logger, "Get task", err)
	}
	return c.JSON(http.StatusOK, task)
}

// CreateTask godoc
// @Summary Create a new task
// @Description Append a task to a section, or a sub-task to its parent
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body ports.CreateTaskRequest true "Task data"
// @Success 201 {object} entities.Task
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		return serviceError(h.logger, "Create task", err)
	}
	return c.JSON(http.StatusCreated, task)
}

// UpdateTask godoc
// @Summary Update a task
// @Description Replace the editable fields of a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.UpdateTaskRequest true "Task data"
// @Success 200 {object} entities.Task
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	var req ports.UpdateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return serviceError(h.logger, "Update task", err)
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} entities.Task
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	task, err := h.taskService.DeleteTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(h.logger, "Delete task", err)
	}
	return c.JSON(http.StatusOK, task)
}

// ReorderTasks godoc
// @Summary Reorder tasks
// @Description Persist a task order within one section or parent; entries naming section_id move there
// @Tags tasks
// @Accept json
// @Param request body []ports.ReorderEntry true "Tasks in the desired order"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /tasks/reorder [put]
func (h *TaskHandler) ReorderTasks(c echo.Context) error {
	req, err := bindReorder(c)
	if err != nil {
		return err
	}
	if err := h.taskService.ReorderTasks(c.Request().Context(), req); err != nil {
		return serviceError(h.logger, "Reorder tasks", err)
	}
	return c.NoContent(http.StatusNoContent)
}
