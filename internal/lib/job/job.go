// Package job runs background work on asynq, a Redis-backed task queue.
//
// Producers enqueue through JobService.Client; the embedded asynq.Server
// pulls tasks from Redis and dispatches them by task type.
package job

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/docker-crm/internal/config"
	"github.com/deppfellow/docker-crm/internal/lib/email"
)

// JobService holds the asynq client (enqueue) and server (workers).
type JobService struct {
	Client *asynq.Client

	server      *asynq.Server
	logger      *zerolog.Logger
	emailClient *email.Client
}

// NewJobService creates a JobService backed by the configured Redis.
//
// Workers are split across queues by weight: critical 6, default 3, low 1.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// InitHandlers builds the dependencies task handlers need.
func (j *JobService) InitHandlers(cfg *config.Config) {
	j.emailClient = email.NewClient(cfg, j.logger)
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskCustomerWelcome, j.handleCustomerWelcomeTask)
	return mux
}

// Start launches the workers. It returns once they are running.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")
	return j.server.Start(j.Mux())
}

// Stop waits for in-flight tasks and closes the Redis connections.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}
