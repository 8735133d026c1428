package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "team-task-hub.com/team-task-hub/internal/data_models"
	"team-task-hub.com/team-task-hub/internal/services"
)

func (h *Handler) GetNomenclature(c echo.Context) error {
	cfg, err := h.nomenclature.Get(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cfg)
}

func (h *Handler) UpdateNomenclature(c echo.Context) error {
	var req dto.UpdateNomenclatureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	cfg, err := h.nomenclature.UpdateFormat(c.Request().Context(), services.UpdateNomenclatureInput{
		Prefix:    req.Prefix,
		Separator: req.Separator,
		Padding:   req.Padding,
	}, actorFrom(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cfg)
}
