package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/chartflow/portal/internal/api/middleware"
	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/service"
	"github.com/chartflow/portal/internal/infrastructure/gateway"
	"github.com/chartflow/portal/internal/infrastructure/queue"
)

const testCookie = "chartflow_client"

type stubSettingsService struct {
	getFn  func(ctx context.Context, user *domain.User) (*domain.Settings, error)
	saveFn func(ctx context.Context, user *domain.User, s domain.Settings) (*domain.Settings, error)
}

func (s *stubSettingsService) Get(ctx context.Context, user *domain.User) (*domain.Settings, error) {
	return s.getFn(ctx, user)
}

func (s *stubSettingsService) Save(ctx context.Context, user *domain.User, in domain.Settings) (*domain.Settings, error) {
	return s.saveFn(ctx, user, in)
}

// testApp wires the handlers the way the router does, on top of the
// in-memory identity provider.
type testApp struct {
	t        *testing.T
	e        *echo.Echo
	registry *service.ClientRegistry
	settings *stubSettingsService
	cookie   *http.Cookie
	lastErr  error
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	dispatcher := queue.NewDispatcher(2, zerolog.Nop())
	dispatcher.Start(ctx)

	factory, err := gateway.NewFactory(
		gateway.Options{Driver: gateway.DriverMemory},
		gateway.Deps{Publisher: dispatcher},
		zerolog.Nop(),
	)
	require.NoError(t, err)

	registry := service.NewClientRegistry(factory, service.RegistryConfig{}, zerolog.Nop())
	t.Cleanup(registry.CloseAll)

	cookie := middleware.NewClientCookie(middleware.CookieConfig{
		Secret:      "0123456789abcdef0123456789abcdef",
		Name:        testCookie,
		RememberFor: 24 * time.Hour,
	})

	app := &testApp{
		t:        t,
		registry: registry,
		settings: &stubSettingsService{},
	}

	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		app.lastErr = err
		e.DefaultHTTPErrorHandler(err, c)
	}
	e.Use(cookie.Middleware(registry))

	auth := NewAuthHandler(cookie, zerolog.Nop())
	pages := NewPageHandler(service.NewPageService())
	settings := NewSettingsHandler(app.settings)

	e.GET("/", pages.Landing)
	e.GET("/auth/modal", auth.Modal)
	e.POST("/auth/modal/open", auth.Open)
	e.POST("/auth/modal/mode", auth.SwitchMode)
	e.POST("/auth/modal/password-visibility", auth.TogglePassword)
	e.POST("/auth/modal/submit", auth.Submit)
	e.POST("/auth/modal/close", auth.Close)
	e.GET("/auth/session", auth.Session)
	e.POST("/auth/signout", auth.SignOut)

	guarded := e.Group("", middleware.Guard(time.Second))
	guarded.GET("/dashboard", pages.Dashboard)
	guarded.GET("/customers", pages.Customers)
	guarded.GET("/settings", settings.Get)
	guarded.PUT("/settings", settings.Save)

	app.e = e
	return app
}

// do sends a request as the same browser, carrying the client cookie.
func (a *testApp) do(method, target, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	a.lastErr = nil

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == testCookie {
			a.cookie = ck
		}
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (a *testApp) signUpAndSignIn(remember bool) *httptest.ResponseRecorder {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/auth/modal/open", `{"mode":"signup"}`)
	require.Equal(a.t, http.StatusOK, rec.Code)
	rec = a.do(http.MethodPost, "/auth/modal/submit", `{
		"email":"ada@example.com","password":"password123","confirm_password":"password123",
		"full_name":"Ada Lovelace","accept_terms":true}`)
	require.Equal(a.t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodPost, "/auth/modal/mode", `{"mode":"login"}`)
	require.Equal(a.t, http.StatusOK, rec.Code)

	body := `{"email":"ada@example.com","password":"password123","remember_me":false}`
	if remember {
		body = `{"email":"ada@example.com","password":"password123","remember_me":true}`
	}
	return a.do(http.MethodPost, "/auth/modal/submit", body)
}
