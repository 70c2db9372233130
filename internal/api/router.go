package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/chartflow/portal/docs"
	"github.com/chartflow/portal/internal/api/handler"
	"github.com/chartflow/portal/internal/api/middleware"
	"github.com/chartflow/portal/internal/core/service"
	"github.com/chartflow/portal/internal/infrastructure/config"
	mongorepo "github.com/chartflow/portal/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, registry *service.ClientRegistry, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))

	// --- Dependencies ---
	cookie := middleware.NewClientCookie(middleware.CookieConfig{
		Secret:      cfg.Session.Secret,
		Name:        cfg.Session.CookieName,
		Secure:      cfg.Session.Secure,
		RememberFor: cfg.Session.RememberFor,
	})
	settingsRepo := mongorepo.NewSettingsRepository(db)
	settingsService := service.NewSettingsService(settingsRepo, log.With().Str("component", "settings").Logger())

	authHandler := handler.NewAuthHandler(cookie, log)
	pageHandler := handler.NewPageHandler(service.NewPageService())
	settingsHandler := handler.NewSettingsHandler(settingsService)
	healthHandler := handler.NewHealthHandler(map[string]handler.HealthCheck{
		"mongodb": handler.MongoCheck(db),
		"redis":   handler.RedisCheck(rdb),
	})

	// --- Health probes, metrics and docs (no client cookie) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Client routes ---
	app := e.Group("", cookie.Middleware(registry))
	app.GET("/", pageHandler.Landing)

	auth := app.Group("/auth")
	auth.GET("/modal", authHandler.Modal)
	auth.POST("/modal/open", authHandler.Open)
	auth.POST("/modal/mode", authHandler.SwitchMode)
	auth.POST("/modal/password-visibility", authHandler.TogglePassword)
	auth.POST("/modal/submit", authHandler.Submit)
	auth.POST("/modal/close", authHandler.Close)
	auth.GET("/session", authHandler.Session)
	auth.POST("/signout", authHandler.SignOut)

	// --- Protected pages ---
	pages := app.Group("", middleware.Guard(cfg.Guard.Wait))
	pages.GET("/dashboard", pageHandler.Dashboard)
	pages.GET("/customers", pageHandler.Customers)
	pages.GET("/settings", settingsHandler.Get)
	pages.PUT("/settings", settingsHandler.Save)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
