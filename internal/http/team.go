package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"team-task-hub.com/team-task-hub/internal/constants"
	dto "team-task-hub.com/team-task-hub/internal/data_models"
	"team-task-hub.com/team-task-hub/internal/services"
)

func (h *Handler) ListProfiles(c echo.Context) error {
	profiles, err := h.profiles.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(profiles),
		"profiles": profiles,
	})
}

func (h *Handler) GetProfile(c echo.Context) error {
	profile, err := h.profiles.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) CreateProfile(c echo.Context) error {
	var req dto.CreateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	profile, err := h.profiles.Create(c.Request().Context(), services.CreateProfileInput{
		ID:       req.ID,
		FullName: req.FullName,
		Email:    req.Email,
		Timezone: req.Timezone,
	}, actorFrom(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, profile)
}

func (h *Handler) SetRole(c echo.Context) error {
	var req dto.SetRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	err := h.profiles.SetRole(
		c.Request().Context(),
		c.Param("id"),
		constants.Role(req.Role),
		actorFrom(c).ID,
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
