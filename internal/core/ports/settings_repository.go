package ports

import (
	"context"

	"github.com/chartflow/portal/internal/core/domain"
)

// SettingsRepository persists user preferences.
type SettingsRepository interface {
	Find(ctx context.Context, userID string) (*domain.Settings, error)
	Save(ctx context.Context, userID string, s domain.Settings) error
}
