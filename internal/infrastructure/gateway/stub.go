package gateway

import (
	"context"

	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/ports"
)

type stubFactory struct{}

func (stubFactory) Name() string { return DriverStub }

func (stubFactory) New(string) ports.Gateway { return stubGateway{} }

// stubGateway stands in for the identity service when it is not configured.
// Every operation fails with domain.ErrNotConfigured and nobody is ever
// signed in.
type stubGateway struct{}

func (stubGateway) SignUp(context.Context, string, string, string) error {
	return domain.ErrNotConfigured
}

func (stubGateway) SignIn(context.Context, string, string) error {
	return domain.ErrNotConfigured
}

func (stubGateway) SignOut(context.Context) error {
	return domain.ErrNotConfigured
}

func (stubGateway) ResetPassword(context.Context, string) error {
	return domain.ErrNotConfigured
}

func (stubGateway) Session(context.Context) (*domain.Session, error) {
	return nil, nil
}

func (stubGateway) Subscribe(ports.SessionListener) ports.Unsubscribe {
	return func() {}
}
