package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (h *Handler) TaskStats(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		userID = actorFrom(c).ID
	}

	stats, err := h.analytics.TaskStats(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) TeamPerformance(c echo.Context) error {
	performance, err := h.analytics.TeamPerformance(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"performance": performance})
}

func (h *Handler) DailyTaskMetrics(c echo.Context) error {
	months := 1
	if raw := c.QueryParam("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "months must be a positive integer")
		}
		months = parsed
	}

	metrics, err := h.analytics.DailyTaskMetrics(c.Request().Context(), months)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"metrics": metrics})
}

func (h *Handler) RecentActivity(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = parsed
	}

	entries, err := h.activity.Recent(c.Request().Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(entries),
		"activity": entries,
	})
}

func (h *Handler) TaskActivity(c echo.Context) error {
	entries, err := h.activity.ForTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(entries),
		"activity": entries,
	})
}
