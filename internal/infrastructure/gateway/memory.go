package gateway

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/ports"
)

const memoryTokenTTL = time.Hour

type account struct {
	user         domain.User
	passwordHash []byte
}

// memoryFactory is an in-process identity provider for local development.
// Accounts are shared by all clients; sessions are kept per client.
type memoryFactory struct {
	tokens *Tokens
	pub    ports.SessionPublisher
	log    zerolog.Logger

	mu       sync.Mutex
	accounts map[string]*account // by lower-cased email
	sessions map[string]*domain.Session
}

func newMemoryFactory(secret string, pub ports.SessionPublisher, log zerolog.Logger) (*memoryFactory, error) {
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("memory gateway secret: %w", err)
		}
		secret = hex.EncodeToString(buf)
	}
	return &memoryFactory{
		tokens:   NewTokens(secret),
		pub:      pub,
		log:      log,
		accounts: make(map[string]*account),
		sessions: make(map[string]*domain.Session),
	}, nil
}

func (f *memoryFactory) Name() string { return DriverMemory }

func (f *memoryFactory) New(clientID string) ports.Gateway {
	return &memoryGateway{factory: f, clientID: clientID}
}

type memoryGateway struct {
	factory  *memoryFactory
	clientID string
}

func (g *memoryGateway) SignUp(_ context.Context, email, password, fullName string) error {
	f := g.factory
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	key := strings.ToLower(email)
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.accounts[key]; exists {
		return &domain.GatewayError{Message: "User already registered", Status: 422}
	}
	f.accounts[key] = &account{
		user: domain.User{
			ID:       uuid.NewString(),
			Email:    email,
			Metadata: domain.UserMetadata{FullName: fullName},
		},
		passwordHash: hash,
	}
	f.log.Info().Str("email", email).Msg("account registered")
	return nil
}

func (g *memoryGateway) SignIn(ctx context.Context, email, password string) error {
	f := g.factory
	f.mu.Lock()
	acct, ok := f.accounts[strings.ToLower(email)]
	f.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)) != nil {
		return &domain.GatewayError{Message: "Invalid login credentials", Status: 400}
	}

	user := acct.user
	token, exp, err := f.tokens.Sign(&user, memoryTokenTTL)
	if err != nil {
		return err
	}
	sess := &domain.Session{User: &user, AccessToken: token, RefreshToken: uuid.NewString(), ExpiresAt: exp}

	f.mu.Lock()
	f.sessions[g.clientID] = sess
	f.mu.Unlock()

	return f.pub.Publish(ctx, domain.SessionChange{ClientID: g.clientID, Event: domain.EventSignedIn, Session: sess})
}

func (g *memoryGateway) SignOut(ctx context.Context) error {
	f := g.factory
	f.mu.Lock()
	delete(f.sessions, g.clientID)
	f.mu.Unlock()
	return f.pub.Publish(ctx, domain.SessionChange{ClientID: g.clientID, Event: domain.EventSignedOut})
}

// ResetPassword succeeds for any address so account existence is not leaked.
func (g *memoryGateway) ResetPassword(_ context.Context, email string) error {
	g.factory.log.Info().Str("email", email).Msg("password reset requested")
	return nil
}

func (g *memoryGateway) Session(context.Context) (*domain.Session, error) {
	f := g.factory
	f.mu.Lock()
	defer f.mu.Unlock()

	sess, ok := f.sessions[g.clientID]
	if !ok {
		return nil, nil
	}
	if _, err := f.tokens.Parse(sess.AccessToken); err != nil {
		delete(f.sessions, g.clientID)
		return nil, nil
	}
	return sess, nil
}

func (g *memoryGateway) Subscribe(fn ports.SessionListener) ports.Unsubscribe {
	return g.factory.pub.Subscribe(g.clientID, fn)
}
