// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed queue: the application enqueues tasks through
// asynq.Client and a worker server pulls and executes them. Notification
// emails are delivered this way so request handlers never block on the
// email provider.
package job

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/hacktrack/hacktrack/internal/config"
	"github.com/hacktrack/hacktrack/internal/lib/email"
)

// JobService holds the Asynq client (enqueue side) and server (worker
// side), plus the email client its handlers deliver through.
type JobService struct {
	// Client enqueues tasks into Redis.
	Client *asynq.Client

	server      *asynq.Server
	emailClient *email.Client
	logger      *zerolog.Logger
}

// NewJobService builds both halves of the queue against the configured
// Redis address. Queue weights give notification-critical tasks a larger
// share of the worker pool.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client:      client,
		server:      server,
		emailClient: email.NewClient(cfg, logger),
		logger:      logger,
	}
}

// Start registers task handlers and starts the worker server. asynq's
// Start returns immediately; workers run on their own goroutines until
// Stop.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	mux.HandleFunc(TaskReviewReceived, j.handleReviewReceivedTask)

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully shuts down the worker server and closes the enqueue
// client's Redis connections.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
