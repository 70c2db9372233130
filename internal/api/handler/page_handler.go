package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/ports"
)

// PageHandler serves the landing page and the dashboard pages.
type PageHandler struct {
	pages ports.PageService
}

func NewPageHandler(pages ports.PageService) *PageHandler {
	return &PageHandler{pages: pages}
}

// Landing returns the marketing page and the modal state. Signed-in clients
// are sent to the dashboard.
//
// @Summary      Landing page
// @Tags         pages
// @Produce      json
// @Success      200  {object}  landingResponse
// @Success      303
// @Router       / [get]
func (h *PageHandler) Landing(c echo.Context) error {
	client, err := ctxClient(c)
	if err != nil {
		return err
	}
	if user, _ := client.Session.State(); user != nil {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return c.JSON(http.StatusOK, landingResponse{
		Landing: h.pages.Landing(),
		Modal:   client.Modal.View(),
	})
}

// Dashboard returns the overview page.
//
// @Summary      Dashboard overview
// @Tags         pages
// @Produce      json
// @Param        range  query     string  false  "Chart window"  Enums(7d, 30d, 3m)
// @Success      200    {object}  ports.Overview
// @Success      202    {object}  map[string]string
// @Success      303
// @Failure      400    {object}  errorResponse
// @Router       /dashboard [get]
func (h *PageHandler) Dashboard(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	window, err := domain.ParseTimeRange(c.QueryParam("range"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.pages.Overview(user, window))
}

// Customers returns the customer list, filtered by search text and status.
//
// @Summary      Customers
// @Tags         pages
// @Produce      json
// @Param        search  query     string  false  "Name or email contains"
// @Param        status  query     string  false  "Status filter"  Enums(all, active, inactive)
// @Success      200     {object}  ports.CustomerPage
// @Success      202     {object}  map[string]string
// @Success      303
// @Failure      422     {object}  errorResponse
// @Router       /customers [get]
func (h *PageHandler) Customers(c echo.Context) error {
	if _, err := ctxUser(c); err != nil {
		return err
	}

	var q customersQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	return c.JSON(http.StatusOK, h.pages.Customers(domain.CustomerFilter{
		Search: q.Search,
		Status: q.Status,
	}))
}
