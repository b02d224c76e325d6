// Package server composes the application's shared dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger and the optional New Relic service
//   - database pool
//   - redis client (optional)
//   - background job service (optional, requires redis)
//   - http.Server
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

	"github.com/deppfellow/docker-crm/internal/config"
	"github.com/deppfellow/docker-crm/internal/database"
	"github.com/deppfellow/docker-crm/internal/lib/job"
	loggerPkg "github.com/deppfellow/docker-crm/internal/logger"
)

// Server is the application container. It is not the HTTP server itself.
//
// Redis and Job are nil when no Redis address is configured.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	Redis         *redis.Client
	Job           *job.JobService

	httpServer *http.Server
}

// New connects to PostgreSQL and, when configured, to Redis, then starts the
// job workers.
//
// An unreachable Redis is logged and tolerated: the client reconnects lazily
// and the health check reports it.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}

	if !cfg.Redis.Enabled() {
		logger.Warn().Msg("redis address not set, background jobs disabled")
		return server, nil
	}

	server.Redis = redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		server.Redis.AddHook(nrredis.NewHook(server.Redis.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Redis.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("failed to connect to redis, continuing")
	}

	jobService := job.NewJobService(logger, cfg)
	jobService.InitHandlers(cfg)

	if err := jobService.Start(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to start job service: %w", err)
	}
	server.Job = jobService

	return server, nil
}

// SetupHTTPServer configures the net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start serves HTTP until Shutdown is called. It returns http.ErrServerClosed
// after a graceful shutdown.
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

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires, then releases the job workers, Redis and the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	if err := s.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
	}

	return errors.Join(errs...)
}
