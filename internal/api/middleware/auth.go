package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"github.com/chartflow/portal/internal/core/service"
)

const (
	clientKey     = "client"
	clientIDValue = "cid"
)

// ClientResolver returns the live auth state of a browser client.
type ClientResolver interface {
	Get(ctx context.Context, id string) (*service.Client, error)
}

// CookieConfig configures the signed cookie that identifies a browser.
type CookieConfig struct {
	// Secret signs the cookie. A random key is generated when empty, which
	// forgets every client on restart.
	Secret      string
	Name        string
	Secure      bool
	RememberFor time.Duration
}

// ClientCookie issues and reads the browser client cookie.
type ClientCookie struct {
	store       *sessions.CookieStore
	name        string
	rememberFor time.Duration
}

func NewClientCookie(cfg CookieConfig) *ClientCookie {
	key := []byte(cfg.Secret)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
	}
	if cfg.RememberFor <= 0 {
		cfg.RememberFor = 30 * 24 * time.Hour
	}

	store := sessions.NewCookieStore(key)
	// Bounds how old a signed cookie may be, remembered or not.
	store.MaxAge(int(cfg.RememberFor.Seconds()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0, // browser session unless remember-me is chosen
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &ClientCookie{store: store, name: cfg.Name, rememberFor: cfg.RememberFor}
}

// Middleware resolves the request's client, issuing a new client ID when the
// cookie is missing or fails verification, and injects it into context.
func (cc *ClientCookie) Middleware(registry ClientResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := cc.session(c.Request())

			id := clientID(sess)
			if id == "" {
				id = uuid.NewString()
				sess.Values[clientIDValue] = id
				if err := sess.Save(c.Request(), c.Response()); err != nil {
					return fmt.Errorf("issue client cookie: %w", err)
				}
			}

			client, err := registry.Get(c.Request().Context(), id)
			if err != nil {
				return err
			}
			c.Set(clientKey, client)

			return next(c)
		}
	}
}

// Remember rewrites the cookie so it outlives the browser session when
// remember is true, or expires with it otherwise.
func (cc *ClientCookie) Remember(c echo.Context, remember bool) error {
	sess := cc.session(c.Request())
	if client := ClientFrom(c); client != nil {
		sess.Values[clientIDValue] = client.ID
	}

	sess.Options.MaxAge = 0
	if remember {
		sess.Options.MaxAge = int(cc.rememberFor.Seconds())
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("save client cookie: %w", err)
	}
	return nil
}

// session returns the request's cookie session. A cookie that fails
// verification yields a fresh, empty session.
func (cc *ClientCookie) session(r *http.Request) *sessions.Session {
	sess, err := cc.store.Get(r, cc.name)
	if err != nil || sess == nil {
		sess = sessions.NewSession(cc.store, cc.name)
		opts := *cc.store.Options
		sess.Options = &opts
		sess.IsNew = true
	}
	return sess
}

func clientID(sess *sessions.Session) string {
	id, _ := sess.Values[clientIDValue].(string)
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return id
}

// ClientFrom returns the client injected by ClientCookie.Middleware, or nil.
func ClientFrom(c echo.Context) *service.Client {
	client, _ := c.Get(clientKey).(*service.Client)
	return client
}
