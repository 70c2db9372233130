package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/ports"
)

type settingsService struct {
	repo ports.SettingsRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewSettingsService returns a SettingsService backed by repo.
func NewSettingsService(repo ports.SettingsRepository, log zerolog.Logger) ports.SettingsService {
	return &settingsService{repo: repo, log: log, now: time.Now}
}

func (s *settingsService) Get(ctx context.Context, user *domain.User) (*domain.Settings, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	stored, err := s.repo.Find(ctx, user.ID)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		defaults := domain.DefaultSettings(user)
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return stored, nil
}

func (s *settingsService) Save(ctx context.Context, user *domain.User, in domain.Settings) (*domain.Settings, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	in.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, user.ID, in); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("settings saved")
	return &in, nil
}
