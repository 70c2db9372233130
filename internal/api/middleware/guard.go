package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chartflow/portal/internal/api/metrics"
	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/service"
)

const userKey = "user"

type placeholderResponse struct {
	Status string `json:"status"`
}

// Guard protects dashboard pages. Each request is one mount of the route
// guard: while the client's session is loading it waits up to wait, then
// renders a loading placeholder (202), redirects anonymous clients to the
// landing page (303), or injects the signed-in user and calls next.
func Guard(wait time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			client := ClientFrom(c)
			if client == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "missing client context")
			}
			provider := client.Session
			guard := service.NewRouteGuard()

			user, loading := provider.State()
			decision := guard.Observe(loading, user)
			if decision == service.DecisionPlaceholder && wait > 0 {
				ctx, cancel := context.WithTimeout(c.Request().Context(), wait)
				provider.WaitReady(ctx)
				cancel()

				user, loading = provider.State()
				decision = guard.Observe(loading, user)
			}
			metrics.GuardDecisionsTotal.WithLabelValues(string(decision)).Inc()

			switch decision {
			case service.DecisionPlaceholder:
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusAccepted, placeholderResponse{Status: "loading"})
			case service.DecisionRedirect:
				return c.Redirect(http.StatusSeeOther, "/")
			}

			c.Set(userKey, user)
			return next(c)
		}
	}
}

// UserFrom returns the user injected by Guard, or nil.
func UserFrom(c echo.Context) *domain.User {
	user, _ := c.Get(userKey).(*domain.User)
	return user
}
