package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chartflow/portal/internal/api/metrics"
	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/ports"
)

// SettingsHandler serves the signed-in user's preferences.
type SettingsHandler struct {
	settings ports.SettingsService
}

func NewSettingsHandler(settings ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get returns the user's settings, or the defaults when none were saved.
//
// @Summary      Get settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  settingsResponse
// @Success      202  {object}  map[string]string
// @Success      303
// @Router       /settings [get]
func (h *SettingsHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	s, err := h.settings.Get(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settingsResponse{Settings: s})
}

// Save replaces the user's settings.
//
// @Summary      Save settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      settingsRequest  true  "Settings"
// @Success      200   {object}  settingsResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /settings [put]
func (h *SettingsHandler) Save(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	saved, err := h.settings.Save(c.Request().Context(), user, req.settings())
	if err != nil {
		return err
	}
	metrics.SettingsSavedTotal.Inc()

	return c.JSON(http.StatusOK, settingsResponse{Settings: saved, Message: domain.MsgSettingsSaved})
}
