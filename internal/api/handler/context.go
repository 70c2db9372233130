package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chartflow/portal/internal/api/middleware"
	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/service"
)

// ctxClient returns the browser client injected by the client cookie
// middleware. Its absence is a wiring bug, not a client error.
func ctxClient(c echo.Context) (*service.Client, error) {
	client := middleware.ClientFrom(c)
	if client == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "missing client context")
	}
	return client, nil
}

// ctxUser returns the user injected by the route guard.
func ctxUser(c echo.Context) (*domain.User, error) {
	user := middleware.UserFrom(c)
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}
