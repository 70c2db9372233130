package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth     AuthConfig
	Session  SessionConfig
	Guard    GuardConfig
	Dispatch DispatchConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

// AuthConfig selects and configures the identity gateway.
type AuthConfig struct {
	// Driver is "supabase" (live, falling back to the stub when URL or key
	// are missing or malformed) or "memory".
	Driver    string        `env:"AUTH_DRIVER,         default=supabase"`
	URL       string        `env:"SUPABASE_URL"`
	AnonKey   string        `env:"SUPABASE_ANON_KEY"`
	JWTSecret string        `env:"SUPABASE_JWT_SECRET"`
	Timeout   time.Duration `env:"AUTH_HTTP_TIMEOUT,   default=10s"`
	RateLimit float64       `env:"AUTH_RATE_LIMIT,     default=20"`
	RateBurst int           `env:"AUTH_RATE_BURST,     default=10"`
	StoreTTL  time.Duration `env:"AUTH_SESSION_TTL,    default=720h"`
}

// SessionConfig controls the browser client cookie and client lifetime.
type SessionConfig struct {
	Secret      string        `env:"SESSION_SECRET"`
	CookieName  string        `env:"SESSION_COOKIE,     default=chartflow_client"`
	Secure      bool          `env:"SESSION_SECURE,     default=false"`
	RememberFor time.Duration `env:"REMEMBER_ME_TTL,    default=720h"`
	IdleTTL     time.Duration `env:"CLIENT_IDLE_TTL,    default=30m"`
	SweepEvery  time.Duration `env:"CLIENT_SWEEP_EVERY, default=1m"`
}

type GuardConfig struct {
	// Wait bounds how long a protected page waits for the session to resolve.
	Wait time.Duration `env:"GUARD_WAIT, default=2s"`
}

type DispatchConfig struct {
	Workers int `env:"DISPATCH_WORKERS, default=8"`
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,       default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,        default=chartflow"`
	MaxPoolSize uint64 `env:"MONGO_POOL_SIZE, default=50"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,        default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=20"`
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if cfg.IsProduction() && len(cfg.Session.Secret) < 32 {
		return nil, errors.New("SESSION_SECRET must be at least 32 bytes in production")
	}
	return &cfg, nil
}
