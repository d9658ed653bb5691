// Package config loads and validates the application's environment
// configuration.
//
// Variables are read from the process environment (optionally seeded from
// a `.env` file via godotenv's autoload), mapped into structured Go types
// with koanf, and validated with go-playground/validator so the app fails
// fast on missing or malformed values.
//
// Env vars use the HACKTRACK_ prefix and dot-delimited nesting, e.g.
// HACKTRACK_SERVER.PORT maps to Config.Server.Port.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a .env file into the process environment
	// before any env vars are read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional; when absent, defaults
// are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	RateLimit     RateLimitConfig      `koanf:"ratelimit"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment,
// used to tag logs and switch env-dependent behavior.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime. Timeouts are
// stored as seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port"). Redis backs
// the background job queue.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores the shared JWT signing secret and token lifetime.
//
// The secret is the single process-wide key used both to mint tokens on
// signup/signin and to verify bearer credentials; there is no per-request
// rotation.
type AuthConfig struct {
	SecretKey string        `koanf:"secret_key" validate:"required"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

// DefaultTokenTTL is used when auth.token_ttl is not configured.
const DefaultTokenTTL = time.Hour

// RateLimitConfig tunes the fixed-window request limiter. Zero values fall
// back to the ratelimit package defaults (60s window, 60 requests, sweep
// every 100 calls).
type RateLimitConfig struct {
	// WindowMS is the window length in milliseconds.
	WindowMS int `koanf:"window_ms"`

	// MaxRequests is the per-client cap inside one window.
	MaxRequests int `koanf:"max_requests"`

	// CleanupInterval is the number of limiter calls between sweeps of
	// expired records.
	CleanupInterval int `koanf:"cleanup_interval"`
}

// IntegrationConfig holds third-party provider credentials.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
}

// TokenLifetime returns the configured token lifetime, or the default
// when unset.
func (a AuthConfig) TokenLifetime() time.Duration {
	if a.TokenTTL <= 0 {
		return DefaultTokenTTL
	}
	return a.TokenTTL
}

// Load reads configuration from the environment, unmarshals it, validates
// it, and applies observability defaults.
//
// Any failure here is fatal: a service with incomplete configuration has
// nothing useful to do, so it logs the cause and exits.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	// Only env vars carrying the HACKTRACK_ prefix are read; the prefix
	// is stripped and the rest lowercased into koanf's dot notation.
	err := k.Load(env.Provider("HACKTRACK_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "HACKTRACK_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are forced so telemetry stays
	// consistently labeled regardless of what the env carries.
	mainConfig.Observability.ServiceName = "hacktrack"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}
