package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chartflow/portal/internal/api/metrics"
	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/service"
)

// CookieRememberer persists the remember-me choice on the client cookie.
type CookieRememberer interface {
	Remember(c echo.Context, remember bool) error
}

// AuthHandler exposes the auth modal and the client's session.
type AuthHandler struct {
	cookie CookieRememberer
	log    zerolog.Logger
}

func NewAuthHandler(cookie CookieRememberer, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{cookie: cookie, log: log}
}

// Modal returns the current state of the client's auth modal.
//
// @Summary      Get the auth modal
// @Tags         auth
// @Produce      json
// @Success      200  {object}  service.ModalView
// @Router       /auth/modal [get]
func (h *AuthHandler) Modal(c echo.Context) error {
	client, err := ctxClient(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client.Modal.View())
}

// Open shows the modal in the requested mode with an empty form.
//
// @Summary      Open the auth modal
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      modeRequest  true  "Initial mode"
// @Success      200   {object}  service.ModalView
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/modal/open [post]
func (h *AuthHandler) Open(c echo.Context) error {
	client, err := ctxClient(c)
	if err != nil {
		return err
	}
	mode, err := bindMode(c)
	if err != nil {
		return err
	}

	view, err := client.Modal.Open(mode)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// SwitchMode replaces the form with an empty one for another mode.
//
// @Summary      Switch the auth modal mode
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      modeRequest  true  "Target mode"
// @Success      200   {object}  service.ModalView
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/modal/mode [post]
func (h *AuthHandler) SwitchMode(c echo.Context) error {
	client, err := ctxClient(c)
	if err != nil {
		return err
	}
	mode, err := bindMode(c)
	if err != nil {
		return err
	}

	view, err := client.Modal.SwitchMode(mode)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// TogglePassword flips password visibility.
//
// @Summary      Toggle password visibility
// @Tags         auth
// @Produce      json
// @Success      200  {object}  service.ModalView
// @Router       /auth/modal/password-visibility [post]
func (h *AuthHandler) TogglePassword(c echo.Context) error {
	client, err := ctxClient(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client.Modal.TogglePasswordVisibility())
}

// Submit validates the form and performs the action of the current mode.
//
// A form that fails local validation answers 422 with the modal view; a
// failure reported by the identity service answers 200 with the message set
// on the view.
//
// @Summary      Submit the auth modal
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      submitRequest  true  "Form fields"
// @Success      200   {object}  submitResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  submitResponse
// @Router       /auth/modal/submit [post]
func (h *AuthHandler) Submit(c echo.Context) error {
	client, err := ctxClient(c)
	if err != nil {
		return err
	}

	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := client.Modal.Submit(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	metrics.AuthSubmissionsTotal.WithLabelValues(string(res.Mode), string(res.Outcome)).Inc()

	resp := submitResponse{Modal: res.View, Outcome: res.Outcome}
	switch {
	case res.Outcome == service.OutcomeInvalid:
		return c.JSON(http.StatusUnprocessableEntity, resp)
	case res.Outcome == service.OutcomeSucceeded && res.Mode == domain.ModeLogin:
		if err := h.cookie.Remember(c, res.RememberMe); err != nil {
			return err
		}
		resp.Redirect = "/dashboard"
	}
	return c.JSON(http.StatusOK, resp)
}

// Close hides the modal and discards its form.
//
// @Summary      Close the auth modal
// @Tags         auth
// @Produce      json
// @Success      200  {object}  service.ModalView
// @Router       /auth/modal/close [post]
func (h *AuthHandler) Close(c echo.Context) error {
	client, err := ctxClient(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client.Modal.Close())
}

// Session reports the client's current user and whether it is still loading.
//
// @Summary      Get the current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	client, err := ctxClient(c)
	if err != nil {
		return err
	}
	user, loading := client.Session.State()
	return c.JSON(http.StatusOK, sessionResponse{Loading: loading, User: user})
}

// SignOut ends the client's session and sends it to the landing page.
//
// @Summary      Sign out
// @Tags         auth
// @Success      303
// @Failure      502  {object}  errorResponse
// @Router       /auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	client, err := ctxClient(c)
	if err != nil {
		return err
	}
	if err := client.Session.SignOut(c.Request().Context()); err != nil {
		return err
	}
	if err := h.cookie.Remember(c, false); err != nil {
		return err
	}
	h.log.Info().Str("client_id", client.ID).Msg("client signed out")
	return c.Redirect(http.StatusSeeOther, "/")
}

func bindMode(c echo.Context) (domain.Mode, error) {
	var req modeRequest
	if err := c.Bind(&req); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return "", echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return domain.ParseMode(req.Mode)
}
