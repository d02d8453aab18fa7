package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "task-tracker.com/task-tracker/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/tasks", h.ListTasks)
	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks/:id", h.GetTask)
	e.PATCH("/tasks/:id", h.UpdateTask)
	e.DELETE("/tasks/:id", h.DeleteTask)
	e.POST("/tasks/:id/complete", h.CompleteTask)

	e.POST("/tasks/:id/subtasks", h.AddSubTask)
	e.PATCH("/tasks/:id/subtasks/:subtask_id", h.EditSubTask)
	e.DELETE("/tasks/:id/subtasks/:subtask_id", h.DeleteSubTask)
	e.POST("/tasks/:id/subtasks/:subtask_id/complete", h.CompleteSubTask)

	e.POST("/reload", h.Reload)
}
