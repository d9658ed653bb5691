// Package logger configures the application's logging and observability.
//
// It builds the zerolog root logger (level and format from config), owns
// the optional New Relic application instance, and provides adapters that
// connect zerolog to the pgx driver and to New Relic trace metadata.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hacktrack/hacktrack/internal/config"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// LoggerService owns the New Relic application instance, when configured.
//
// A nil embedded application is the "New Relic disabled" state: every
// consumer checks GetApplication() for nil and degrades to a no-op, so the
// service can always be constructed.
type LoggerService struct {
	nrApp *newrelic.Application
}

// NewLoggerService initializes New Relic from config.
//
// When no license key is configured it returns a service with a nil
// application rather than an error: observability is optional, the app is
// not.
func NewLoggerService(cfg *config.Config, logger *zerolog.Logger) (*LoggerService, error) {
	obs := cfg.Observability
	if obs.NewRelic.LicenseKey == "" {
		logger.Info().Msg("New Relic license key not set, running without APM")
		return &LoggerService{}, nil
	}

	nrApp, err := newrelic.NewApplication(
		newrelic.ConfigAppName(obs.ServiceName),
		newrelic.ConfigLicense(obs.NewRelic.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(obs.NewRelic.DistributedTracingEnabled),
		newrelic.ConfigAppLogForwardingEnabled(obs.NewRelic.AppLogForwardingEnabled),
		func(c *newrelic.Config) {
			c.Labels = map[string]string{"environment": obs.Environment}
		},
	)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("service", obs.ServiceName).Msg("New Relic APM initialized")

	return &LoggerService{nrApp: nrApp}, nil
}

// GetApplication returns the New Relic application, or nil when APM is
// disabled.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	if ls == nil {
		return nil
	}
	return ls.nrApp
}

// Shutdown flushes pending telemetry, waiting at most the given timeout.
func (ls *LoggerService) Shutdown(timeout time.Duration) {
	if ls != nil && ls.nrApp != nil {
		ls.nrApp.Shutdown(timeout)
	}
}

// New builds the application's root logger from config.
//
// Format "console" produces human-friendly output for local development;
// anything else emits JSON. When a New Relic application is provided and
// log forwarding is enabled, log lines are also decorated and forwarded
// through the zerologWriter integration.
func New(cfg *config.Config, nrApp *newrelic.Application) zerolog.Logger {
	level := parseLevel(cfg.Observability.GetLogLevel())

	var out io.Writer = os.Stdout
	if cfg.Observability.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	} else if nrApp != nil && cfg.Observability.NewRelic.AppLogForwardingEnabled {
		out = zerologWriter.New(os.Stdout, nrApp)
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.Observability.ServiceName).
		Str("env", cfg.Observability.Environment).
		Logger()
}

// parseLevel maps a config level string to a zerolog level, defaulting to
// info on unknown input.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithTraceContext returns a child logger carrying the transaction's
// trace.id and span.id fields, so log lines can be correlated with
// distributed traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}

	md := txn.GetTraceMetadata()
	builder := logger.With()
	if md.TraceID != "" {
		builder = builder.Str("trace.id", md.TraceID)
	}
	if md.SpanID != "" {
		builder = builder.Str("span.id", md.SpanID)
	}
	return builder.Logger()
}
