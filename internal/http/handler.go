package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"team-task-hub.com/team-task-hub/internal/constants"
	dto "team-task-hub.com/team-task-hub/internal/data_models"
	apperrors "team-task-hub.com/team-task-hub/internal/errors"
	"team-task-hub.com/team-task-hub/internal/http/validators"
	repository "team-task-hub.com/team-task-hub/internal/repositories"
	"team-task-hub.com/team-task-hub/internal/services"
)

type Handler struct {
	tasks         *services.TaskService
	comments      *services.CommentService
	notifications *services.NotificationService
	profiles      *services.ProfileService
	nomenclature  *services.NomenclatureService
	analytics     *services.AnalyticsService
	activity      *services.ActivityService
}

func NewHandler(
	tasks *services.TaskService,
	comments *services.CommentService,
	notifications *services.NotificationService,
	profiles *services.ProfileService,
	nomenclature *services.NomenclatureService,
	analytics *services.AnalyticsService,
	activity *services.ActivityService,
) *Handler {
	return &Handler{
		tasks:         tasks,
		comments:      comments,
		notifications: notifications,
		profiles:      profiles,
		nomenclature:  nomenclature,
		analytics:     analytics,
		activity:      activity,
	}
}

func respondError(c echo.Context, err error) error {
	var valErr *apperrors.Validation
	if errors.As(err, &valErr) {
		return c.JSON(apperrors.StatusCode(err), echo.Map{
			"error":  "validation failed",
			"fields": valErr.Fields,
		})
	}
	return c.JSON(apperrors.StatusCode(err), echo.Map{"error": err.Error()})
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	input, err := validators.ParseCreateTaskRequest(&req)
	if err != nil {
		return respondError(c, err)
	}

	task, err := h.tasks.CreateTask(c.Request().Context(), input, actorFrom(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	task, err := h.tasks.GetTask(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	filter := repository.TaskFilter{
		AssigneeID: c.QueryParam("assignee_id"),
		Status:     constants.TaskStatus(c.QueryParam("status")),
	}

	tasks, err := h.tasks.ListTasks(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	patch, err := validators.ParseUpdateTaskRequest(&req)
	if err != nil {
		return respondError(c, err)
	}

	task, err := h.tasks.UpdateTask(c.Request().Context(), c.Param("id"), patch, actorFrom(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.tasks.DeleteTask(c.Request().Context(), c.Param("id"), actorFrom(c).ID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
