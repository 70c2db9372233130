package ports

import (
	"context"

	"github.com/chartflow/portal/internal/core/domain"
)

// SessionListener receives session changes for one client.
type SessionListener func(change domain.SessionChange)

// Unsubscribe detaches a SessionListener. Safe to call more than once.
type Unsubscribe func()

// Gateway is one client's view of the external identity service.
//
// Operations return nil on success and a *domain.GatewayError when the
// service answered with a failure; any other error is unexpected.
type Gateway interface {
	SignUp(ctx context.Context, email, password, fullName string) error
	SignIn(ctx context.Context, email, password string) error
	SignOut(ctx context.Context) error
	ResetPassword(ctx context.Context, email string) error

	// Session returns the currently persisted session, or nil.
	Session(ctx context.Context) (*domain.Session, error)

	// Subscribe registers fn for this client's session changes.
	Subscribe(fn SessionListener) Unsubscribe
}

// GatewayFactory builds per-client gateways. One factory is selected at startup.
type GatewayFactory interface {
	// Name identifies the variant: "live", "stub" or "memory".
	Name() string
	New(clientID string) Gateway
}

// AuthOperations are the gateway calls the auth modal may dispatch.
type AuthOperations interface {
	SignUp(ctx context.Context, email, password, fullName string) error
	SignIn(ctx context.Context, email, password string) error
	ResetPassword(ctx context.Context, email string) error
}
