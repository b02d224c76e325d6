package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/deppfellow/docker-crm/internal/server"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc probes one dependency.
type CheckFunc func(ctx context.Context) error

type healthCheck struct {
	name     string
	required bool
	fn       CheckFunc
}

// CheckResult is the outcome of a single check.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthReport is the body of GET /status.
type HealthReport struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// Healthy reports whether every required check passed.
func (r HealthReport) Healthy() bool {
	return r.Status == StatusHealthy
}

// HealthService runs dependency checks on demand and, optionally, on a schedule.
//
// A failing required check (database) marks the whole report unhealthy.
// Optional checks (redis) are reported but never flip the overall status.
type HealthService struct {
	server *server.Server

	mu     sync.RWMutex
	checks []healthCheck

	cron *cron.Cron
}

// NewHealthService registers the checks listed in the observability config
// for the dependencies the server actually holds.
func NewHealthService(s *server.Server) (*HealthService, error) {
	h := &HealthService{server: s}

	for _, name := range s.Config.Observability.HealthChecks.Checks {
		switch name {
		case "database":
			if s.DB != nil {
				h.RegisterCheck(name, true, s.DB.Ping)
			}
		case "redis":
			if s.Redis != nil {
				h.RegisterCheck(name, false, func(ctx context.Context) error {
					return s.Redis.Ping(ctx).Err()
				})
			}
		default:
			return nil, fmt.Errorf("unknown health check %q", name)
		}
	}

	return h, nil
}

// RegisterCheck adds or replaces the check called name.
func (h *HealthService) RegisterCheck(name string, required bool, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, c := range h.checks {
		if c.name == name {
			h.checks[i] = healthCheck{name: name, required: required, fn: fn}
			return
		}
	}
	h.checks = append(h.checks, healthCheck{name: name, required: required, fn: fn})
}

// Check runs every registered check, each bounded by the configured timeout.
func (h *HealthService) Check(ctx context.Context) HealthReport {
	start := time.Now()
	log := h.server.Logger.With().Str("operation", "health_check").Logger()

	h.mu.RLock()
	checks := make([]healthCheck, len(h.checks))
	copy(checks, h.checks)
	h.mu.RUnlock()

	report := HealthReport{
		Status:      StatusHealthy,
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]CheckResult, len(checks)),
	}

	for _, c := range checks {
		result := h.runCheck(ctx, &log, c)
		report.Checks[c.name] = result

		if result.Status != StatusHealthy && c.required {
			report.Status = StatusUnhealthy
		}
	}

	if !report.Healthy() {
		log.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		h.recordFailure("overall", map[string]any{
			"total_duration_ms": time.Since(start).Milliseconds(),
		})
	}

	return report
}

func (h *HealthService) runCheck(ctx context.Context, log *zerolog.Logger, c healthCheck) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, h.server.Config.Observability.HealthChecks.Timeout)
	defer cancel()

	checkStart := time.Now()
	err := c.fn(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		log.Error().
			Err(err).
			Str("check", c.name).
			Dur("response_time", elapsed).
			Msg("health check failed")

		h.recordFailure(c.name, map[string]any{
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return CheckResult{
			Status:       StatusUnhealthy,
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
		}
	}

	log.Debug().
		Str("check", c.name).
		Dur("response_time", elapsed).
		Msg("health check passed")

	return CheckResult{
		Status:       StatusHealthy,
		ResponseTime: elapsed.String(),
	}
}

func (h *HealthService) recordFailure(checkType string, attrs map[string]any) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	attrs["check_type"] = checkType
	attrs["operation"] = "health_check"
	attrs["error_type"] = checkType + "_unhealthy"
	app.RecordCustomEvent("HealthCheckError", attrs)
}

// StartMonitor runs Check every configured interval until StopMonitor.
// It does nothing when health checks are disabled in config.
func (h *HealthService) StartMonitor() error {
	cfg := h.server.Config.Observability.HealthChecks
	if !cfg.Enabled {
		return nil
	}

	cronLogger := cronLogger{logger: h.server.Logger.With().Str("component", "health_monitor").Logger()}
	h.cron = cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	_, err := h.cron.AddFunc(fmt.Sprintf("@every %s", cfg.Interval), func() {
		h.Check(context.Background())
	})
	if err != nil {
		return fmt.Errorf("schedule health monitor: %w", err)
	}

	h.cron.Start()
	h.server.Logger.Info().Dur("interval", cfg.Interval).Msg("health monitor started")
	return nil
}

// StopMonitor stops scheduling and waits for a running check to finish.
func (h *HealthService) StopMonitor() {
	if h.cron == nil {
		return
	}
	<-h.cron.Stop().Done()
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
