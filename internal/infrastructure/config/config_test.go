package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "supabase", cfg.Auth.Driver)
	assert.Equal(t, 10*time.Second, cfg.Auth.Timeout)
	assert.Equal(t, 720*time.Hour, cfg.Session.RememberFor)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTTL)
	assert.Equal(t, 2*time.Second, cfg.Guard.Wait)
	assert.Equal(t, 8, cfg.Dispatch.Workers)
	assert.Equal(t, "chartflow", cfg.Mongo.Database)
	assert.Equal(t, uint64(50), cfg.Mongo.MaxPoolSize)
	assert.Equal(t, 20, cfg.Redis.PoolSize)
	assert.Empty(t, cfg.Auth.URL)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SUPABASE_URL":      "https://abc.supabase.co",
		"SUPABASE_ANON_KEY": "eyJhbGciOiJIUzI1NiJ9.x.y",
		"AUTH_DRIVER":       "memory",
		"GUARD_WAIT":        "500ms",
		"SESSION_SECURE":    "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://abc.supabase.co", cfg.Auth.URL)
	assert.Equal(t, "memory", cfg.Auth.Driver)
	assert.Equal(t, 500*time.Millisecond, cfg.Guard.Wait)
	assert.True(t, cfg.Session.Secure)
}

func TestLoadFrom_ProductionNeedsSessionSecret(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":            "production",
		"SESSION_SECRET": "short",
	}))
	assert.Error(t, err)
}
