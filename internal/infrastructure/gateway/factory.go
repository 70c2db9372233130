// Package gateway holds the identity gateway variants: the live GoTrue
// client, the not-configured stub and an in-memory provider for development.
// The variant is chosen once, at startup, by NewFactory.
package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/chartflow/portal/internal/core/ports"
)

const (
	DriverLive   = "live"
	DriverStub   = "stub"
	DriverMemory = "memory"
)

var (
	ErrMissingConfig = errors.New("identity service URL or anon key not set")
	ErrMalformedURL  = errors.New("identity service URL must start with https://")
	ErrMalformedKey  = errors.New("identity service anon key must be a JWT starting with eyJ")
)

// Options configures the gateway variants.
type Options struct {
	// Driver is "memory" for the in-process provider; anything else asks for
	// the live gateway, subject to URL and key validation.
	Driver    string
	URL       string
	AnonKey   string
	JWTSecret string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
	// HTTPClient overrides the outbound client, mainly for tests.
	HTTPClient *http.Client
}

// Deps are the shared collaborators gateways publish to and persist in.
type Deps struct {
	Store     ports.SessionStore
	Publisher ports.SessionPublisher
}

// ValidateConfig applies the format checks that decide between the live and
// the stub gateway.
func ValidateConfig(projectURL, anonKey string) error {
	switch {
	case projectURL == "" || anonKey == "":
		return ErrMissingConfig
	case !strings.HasPrefix(projectURL, "https://"):
		return fmt.Errorf("%w (got %q; the URL and anon key may be swapped)", ErrMalformedURL, projectURL)
	case !strings.HasPrefix(anonKey, "eyJ"):
		return fmt.Errorf("%w (the URL and anon key may be swapped)", ErrMalformedKey)
	}
	return nil
}

// NewFactory selects the gateway variant for the whole process.
func NewFactory(opts Options, deps Deps, log zerolog.Logger) (ports.GatewayFactory, error) {
	log = log.With().Str("component", "gateway").Logger()

	if opts.Driver == DriverMemory {
		f, err := newMemoryFactory(opts.JWTSecret, deps.Publisher, log)
		if err != nil {
			return nil, err
		}
		log.Warn().Msg("using in-memory identity provider; accounts are lost on restart")
		return f, nil
	}

	if err := ValidateConfig(opts.URL, opts.AnonKey); err != nil {
		if errors.Is(err, ErrMissingConfig) {
			log.Warn().Msg("Supabase environment variables not found. Running in demo mode.")
		} else {
			log.Error().Err(err).Msg("invalid Supabase configuration. Running in demo mode.")
		}
		return stubFactory{}, nil
	}

	if deps.Store == nil || deps.Publisher == nil {
		return nil, errors.New("live gateway needs a session store and a publisher")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		}
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := max(opts.RateBurst, 1)
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	tokens := NewTokens(opts.JWTSecret)
	if !tokens.Verifying() {
		log.Warn().Msg("SUPABASE_JWT_SECRET not set; access tokens are decoded without signature checks")
	}

	log.Info().Str("url", opts.URL).Msg("Supabase initialized successfully")
	return &liveFactory{
		api:    newGoTrueClient(opts.URL, opts.AnonKey, httpClient, limiter),
		tokens: tokens,
		store:  deps.Store,
		pub:    deps.Publisher,
		log:    log,
	}, nil
}
