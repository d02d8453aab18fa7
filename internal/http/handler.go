package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	"task-tracker.com/task-tracker/internal/http/validators"
	"task-tracker.com/task-tracker/internal/services"
)

type Handler struct {
	taskService *services.TaskService
}

func NewHandler(taskService *services.TaskService) *Handler {
	return &Handler{
		taskService: taskService,
	}
}

func (h *Handler) ListTasks(c echo.Context) error {
	tree := h.taskService.Tree()

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tree),
		"tasks": tree,
	})
}

func (h *Handler) GetTask(c echo.Context) error {
	taskID, err := validators.ParseID(c.Param("id"))
	if err != nil {
		return httpError(err, "")
	}

	td, err := h.taskService.Task(taskID)
	if err != nil {
		return httpError(err, "failed to get task")
	}

	return c.JSON(http.StatusOK, td)
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return httpError(apperrors.ErrInvalidJSON, "")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return httpError(err, "")
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req.Title)
	if err != nil {
		return httpError(err, "failed to create task")
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	taskID, err := validators.ParseID(c.Param("id"))
	if err != nil {
		return httpError(err, "")
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return httpError(apperrors.ErrInvalidJSON, "")
	}
	followUp, clearDate, err := validators.ValidateUpdateTaskRequest(&req)
	if err != nil {
		return httpError(err, "")
	}

	td, err := h.taskService.UpdateTask(c.Request().Context(), taskID, services.TaskUpdate{
		Title:             req.Title,
		Description:       req.Description,
		FollowUpDate:      followUp,
		ClearFollowUpDate: clearDate,
	})
	if err != nil {
		return httpError(err, "failed to update task")
	}

	return c.JSON(http.StatusOK, td)
}

func (h *Handler) CompleteTask(c echo.Context) error {
	taskID, err := validators.ParseID(c.Param("id"))
	if err != nil {
		return httpError(err, "")
	}

	if err := h.taskService.CompleteTask(c.Request().Context(), taskID); err != nil {
		return httpError(err, "failed to complete task")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	taskID, err := validators.ParseID(c.Param("id"))
	if err != nil {
		return httpError(err, "")
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), taskID); err != nil {
		return httpError(err, "failed to delete task")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AddSubTask(c echo.Context) error {
	taskID, err := validators.ParseID(c.Param("id"))
	if err != nil {
		return httpError(err, "")
	}

	var req dto.SubTaskRequest
	if err := c.Bind(&req); err != nil {
		return httpError(apperrors.ErrInvalidJSON, "")
	}
	if err := validators.ValidateSubTaskRequest(&req); err != nil {
		return httpError(err, "")
	}

	subTask, err := h.taskService.AddSubTask(c.Request().Context(), taskID, req.Description)
	if err != nil {
		return httpError(err, "failed to add subtask")
	}

	return c.JSON(http.StatusCreated, subTask)
}

func (h *Handler) EditSubTask(c echo.Context) error {
	taskID, subTaskID, err := subTaskParams(c)
	if err != nil {
		return httpError(err, "")
	}

	var req dto.SubTaskRequest
	if err := c.Bind(&req); err != nil {
		return httpError(apperrors.ErrInvalidJSON, "")
	}
	if err := validators.ValidateSubTaskRequest(&req); err != nil {
		return httpError(err, "")
	}

	if err := h.taskService.EditSubTask(c.Request().Context(), taskID, subTaskID, req.Description); err != nil {
		return httpError(err, "failed to edit subtask")
	}

	td, err := h.taskService.Task(taskID)
	if err != nil {
		return httpError(err, "failed to get task")
	}
	return c.JSON(http.StatusOK, td)
}

func (h *Handler) CompleteSubTask(c echo.Context) error {
	taskID, subTaskID, err := subTaskParams(c)
	if err != nil {
		return httpError(err, "")
	}

	if err := h.taskService.CompleteSubTask(c.Request().Context(), taskID, subTaskID); err != nil {
		return httpError(err, "failed to complete subtask")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteSubTask(c echo.Context) error {
	taskID, subTaskID, err := subTaskParams(c)
	if err != nil {
		return httpError(err, "")
	}

	if err := h.taskService.DeleteSubTask(c.Request().Context(), taskID, subTaskID); err != nil {
		return httpError(err, "failed to delete subtask")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Reload(c echo.Context) error {
	if err := h.taskService.Reload(c.Request().Context()); err != nil {
		return httpError(err, "failed to reload tasks")
	}

	return h.ListTasks(c)
}

func subTaskParams(c echo.Context) (int64, int64, error) {
	taskID, err := validators.ParseID(c.Param("id"))
	if err != nil {
		return 0, 0, err
	}
	subTaskID, err := validators.ParseID(c.Param("subtask_id"))
	if err != nil {
		return 0, 0, err
	}
	return taskID, subTaskID, nil
}

// httpError keeps the message of application errors and replaces anything
// else, store failures in particular, with fallback.
func httpError(err error, fallback string) error {
	if apperrors.IsException(err) {
		return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, fallback)
}
