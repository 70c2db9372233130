package ports

import (
	"context"

	"github.com/chartflow/portal/internal/core/domain"
)

type SettingsService interface {
	// Get returns the stored settings for user, or the defaults when none exist.
	Get(ctx context.Context, user *domain.User) (*domain.Settings, error)
	Save(ctx context.Context, user *domain.User, s domain.Settings) (*domain.Settings, error)
}
