package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "team-task-hub.com/team-task-hub/internal/data_models"
)

func (h *Handler) CreateComment(c echo.Context) error {
	var req dto.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	comment, err := h.comments.Create(
		c.Request().Context(),
		c.Param("id"),
		actorFrom(c).ID,
		req.Content,
		req.ParentID,
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *Handler) ListComments(c echo.Context) error {
	comments, err := h.comments.ListByTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(comments),
		"comments": comments,
	})
}

func (h *Handler) UpdateComment(c echo.Context) error {
	var req dto.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	comment, err := h.comments.Edit(c.Request().Context(), c.Param("id"), actorFrom(c).ID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *Handler) DeleteComment(c echo.Context) error {
	if err := h.comments.Delete(c.Request().Context(), c.Param("id"), actorFrom(c).ID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
