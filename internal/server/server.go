// Package server defines the application container that composes the
// app's main dependencies and owns their lifecycle: configuration, logger
// and optional New Relic wrapper, database pool, redis client, rate-limit
// store, background job workers, and the http.Server itself.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hacktrack/hacktrack/internal/config"
	"github.com/hacktrack/hacktrack/internal/database"
	"github.com/hacktrack/hacktrack/internal/lib/job"
	loggerPkg "github.com/hacktrack/hacktrack/internal/logger"
	"github.com/hacktrack/hacktrack/internal/ratelimit"
)

// Server holds the shared resources of the running application. It is not
// the HTTP server itself; that lives in the httpServer field and is
// configured by SetupHTTPServer.
type Server struct {
	// Config holds all environment configuration.
	Config *config.Config

	// Logger is the application's root structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application; a nil
	// inner application means APM is disabled.
	LoggerService *loggerPkg.LoggerService

	// DB is the PostgreSQL pool wrapper.
	DB *database.Database

	// Redis is the Redis client (job queue backing store, health checks).
	Redis *redis.Client

	// RateLimit is the process-wide fixed-window limiter store. It is
	// built here, at process start, and injected into the middleware so
	// no package-level mutable state exists; it dies with the process.
	RateLimit *ratelimit.Store

	// Job runs background workers and provides the enqueue client.
	Job *job.JobService

	httpServer *http.Server
}

// New constructs a Server and initializes its dependencies: database pool
// (pinged), redis client (connection failure logged but non-fatal), the
// rate-limit store, and the background job service (started; failure here
// is fatal).
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	// Instrument Redis commands when APM is enabled.
	if loggerService != nil && loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Redis is optional at startup: jobs degrade, the API still serves.
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("failed to connect to Redis, continuing without Redis")
	}

	rateLimitStore := ratelimit.NewStore(ratelimit.Config{
		Window:          time.Duration(cfg.RateLimit.WindowMS) * time.Millisecond,
		MaxRequests:     cfg.RateLimit.MaxRequests,
		CleanupInterval: cfg.RateLimit.CleanupInterval,
	})

	jobService := job.NewJobService(logger, cfg)
	if err := jobService.Start(); err != nil {
		return nil, err
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		RateLimit:     rateLimitStore,
		Job:           jobService,
	}, nil
}

// SetupHTTPServer configures the internal net/http server around the
// given handler (the echo router). Timeouts come from config, in seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops or errors;
// call Shutdown from a signal handler for a graceful stop.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server (finishing inflight requests
// until ctx expires), then closes the database pool, job workers, and the
// redis client.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if err := s.Redis.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}
