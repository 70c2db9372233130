package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/ports"
)

// refreshMargin is how close to expiry a stored session is refreshed.
const refreshMargin = 30 * time.Second

type liveFactory struct {
	api    *gotrueClient
	tokens *Tokens
	store  ports.SessionStore
	pub    ports.SessionPublisher
	log    zerolog.Logger
}

func (f *liveFactory) Name() string { return DriverLive }

func (f *liveFactory) New(clientID string) ports.Gateway {
	return &liveGateway{
		api:      f.api,
		tokens:   f.tokens,
		store:    f.store,
		pub:      f.pub,
		clientID: clientID,
		log:      f.log.With().Str("client_id", clientID).Logger(),
	}
}

// liveGateway is one client's connection to the hosted identity service.
// Its session lives in the SessionStore so it survives restarts.
type liveGateway struct {
	api      *gotrueClient
	tokens   *Tokens
	store    ports.SessionStore
	pub      ports.SessionPublisher
	clientID string
	log      zerolog.Logger

	// refreshMu serialises refreshes; GoTrue rotates refresh tokens.
	refreshMu sync.Mutex
}

func (g *liveGateway) SignUp(ctx context.Context, email, password, fullName string) error {
	resp, err := g.api.signUp(ctx, email, password, fullName)
	if err != nil {
		return err
	}
	// With email confirmation disabled GoTrue signs the user straight in.
	if resp.AccessToken == "" {
		return nil
	}
	return g.establish(ctx, domain.EventSignedIn, resp)
}

func (g *liveGateway) SignIn(ctx context.Context, email, password string) error {
	resp, err := g.api.passwordGrant(ctx, email, password)
	if err != nil {
		return err
	}
	return g.establish(ctx, domain.EventSignedIn, resp)
}

func (g *liveGateway) ResetPassword(ctx context.Context, email string) error {
	return g.api.recoverPassword(ctx, email)
}

func (g *liveGateway) SignOut(ctx context.Context) error {
	sess, err := g.store.Load(ctx, g.clientID)
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	if sess != nil && sess.AccessToken != "" {
		if err := g.api.logout(ctx, sess.AccessToken); err != nil && !sessionAlreadyGone(err) {
			return err
		}
	}
	if err := g.store.Delete(ctx, g.clientID); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return g.pub.Publish(ctx, domain.SessionChange{ClientID: g.clientID, Event: domain.EventSignedOut})
}

// Session returns the stored session, refreshing it when it is about to
// expire. A session that can no longer be refreshed is dropped.
func (g *liveGateway) Session(ctx context.Context) (*domain.Session, error) {
	sess, err := g.store.Load(ctx, g.clientID)
	if err != nil || sess == nil {
		return nil, err
	}
	if !sess.Expired(time.Now().Add(refreshMargin)) {
		return sess, nil
	}
	return g.refresh(ctx, sess)
}

func (g *liveGateway) refresh(ctx context.Context, stale *domain.Session) (*domain.Session, error) {
	g.refreshMu.Lock()
	defer g.refreshMu.Unlock()

	// Another caller may have refreshed while we waited.
	if cur, err := g.store.Load(ctx, g.clientID); err == nil && cur != nil && cur.RefreshToken != stale.RefreshToken {
		return cur, nil
	}

	if stale.RefreshToken == "" {
		return nil, g.drop(ctx, "session expired without refresh token")
	}
	resp, err := g.api.refreshGrant(ctx, stale.RefreshToken)
	if ge, ok := domain.AsGatewayError(err); ok {
		g.log.Info().Int("status", ge.Status).Str("reason", ge.Message).Msg("refresh rejected, signing client out")
		return nil, g.drop(ctx, ge.Message)
	}
	if err != nil {
		return nil, err
	}

	sess, err := g.toSession(ctx, resp)
	if err != nil {
		return nil, err
	}
	if err := g.store.Save(ctx, g.clientID, sess); err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if err := g.pub.Publish(ctx, domain.SessionChange{ClientID: g.clientID, Event: domain.EventTokenRefreshed, Session: sess}); err != nil {
		g.log.Warn().Err(err).Msg("token refresh notification not delivered")
	}
	return sess, nil
}

func (g *liveGateway) drop(ctx context.Context, reason string) error {
	g.log.Debug().Str("reason", reason).Msg("dropping stored session")
	if err := g.store.Delete(ctx, g.clientID); err != nil {
		return fmt.Errorf("drop session: %w", err)
	}
	return nil
}

func (g *liveGateway) Subscribe(fn ports.SessionListener) ports.Unsubscribe {
	return g.pub.Subscribe(g.clientID, fn)
}

func (g *liveGateway) establish(ctx context.Context, event domain.AuthEvent, resp *tokenResponse) error {
	sess, err := g.toSession(ctx, resp)
	if err != nil {
		return err
	}
	if err := g.store.Save(ctx, g.clientID, sess); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return g.pub.Publish(ctx, domain.SessionChange{ClientID: g.clientID, Event: event, Session: sess})
}

// toSession turns a token grant into a Session. The access token is decoded
// (and verified when a JWT secret is configured) to fill in what the grant
// response leaves out.
func (g *liveGateway) toSession(ctx context.Context, resp *tokenResponse) (*domain.Session, error) {
	claims, err := g.tokens.Parse(resp.AccessToken)
	if err != nil {
		return nil, err
	}

	sess := &domain.Session{
		User:         resp.User,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
	switch {
	case resp.ExpiresAt > 0:
		sess.ExpiresAt = time.Unix(resp.ExpiresAt, 0).UTC()
	case resp.ExpiresIn > 0:
		sess.ExpiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).UTC()
	case claims.ExpiresAt != nil:
		sess.ExpiresAt = claims.ExpiresAt.UTC()
	}

	if sess.User == nil {
		sess.User, err = g.api.user(ctx, resp.AccessToken)
		if err != nil {
			g.log.Warn().Err(err).Msg("user lookup failed, using token claims")
			sess.User = claims.User()
		}
	}
	return sess, nil
}

// sessionAlreadyGone reports whether a logout failure means the session is
// already invalid on the server, in which case the local sign-out proceeds.
func sessionAlreadyGone(err error) bool {
	var ge *domain.GatewayError
	if !errors.As(err, &ge) {
		return false
	}
	switch ge.Status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	}
	return false
}
