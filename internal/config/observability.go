package config

import (
	"fmt"
	"time"
)

// ObservabilityConfig groups all configuration related to telemetry and runtime visibility.
//
// This includes:
//   - logging settings (format, level, thresholds, optional log file)
//   - APM/tracing provider settings (New Relic)
//   - health check settings (periodic dependency checks)
//
// It is embedded under Config.Observability and is optional at the root
// level. Missing fields are filled from DefaultObservabilityConfig.
type ObservabilityConfig struct {
	// ServiceName identifies this service in logs/traces/APM dashboards.
	// Always overwritten with config.ServiceName.
	ServiceName string `koanf:"service_name" validate:"required"`

	// Environment is a label used to split telemetry by environment
	// (production, staging, development, local).
	Environment string `koanf:"environment" validate:"required"`

	Logging      LoggingConfig      `koanf:"logging" validate:"required"`
	NewRelic     NewRelicConfig     `koanf:"new_relic"`
	HealthChecks HealthChecksConfig `koanf:"health_checks"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level" validate:"required"`

	// Format selects the output format for logs ("json" or "console").
	Format string `koanf:"format" validate:"required,oneof=json console"`

	// SlowQueryThreshold is the duration beyond which queries are logged as slow.
	// Env values must be parseable durations such as "100ms" or "1s".
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`

	// FilePath, when set, additionally writes logs to a size-rotated file.
	FilePath string `koanf:"file_path"`
}

// NewRelicConfig holds configuration for New Relic APM and tracing.
//
// An empty LicenseKey disables the agent entirely.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`

	// DebugLogging enables agent debug output. It mixes formats, keep it off in production.
	DebugLogging bool `koanf:"debug_logging"`
}

// HealthChecksConfig controls periodic checks for dependencies.
type HealthChecksConfig struct {
	Enabled bool `koanf:"enabled"`

	// Interval is how frequently the background monitor runs the checks.
	Interval time.Duration `koanf:"interval" validate:"min=1s"`

	// Timeout bounds a single check run.
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`

	// Checks lists the check names to run (database, redis).
	Checks []string `koanf:"checks"`
}

// DefaultObservabilityConfig provides a safe set of defaults for local development.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: ServiceName,
		Environment: "development",
		Logging: LoggingConfig{
			Level:              "info",
			Format:             "json",
			SlowQueryThreshold: 100 * time.Millisecond,
		},
		NewRelic: NewRelicConfig{
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
			DebugLogging:              false,
		},
		HealthChecks: HealthChecksConfig{
			Enabled:  true,
			Interval: 30 * time.Second,
			Timeout:  5 * time.Second,
			Checks:   []string{"database", "redis"},
		},
	}
}

// fillDefaults copies every zero-valued field that has a default from d.
// Booleans are left untouched since false is a meaningful setting.
func (c *ObservabilityConfig) fillDefaults(d *ObservabilityConfig) {
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = d.Logging.Format
	}
	if c.Logging.SlowQueryThreshold == 0 {
		c.Logging.SlowQueryThreshold = d.Logging.SlowQueryThreshold
	}
	if c.HealthChecks.Interval == 0 {
		c.HealthChecks.Interval = d.HealthChecks.Interval
	}
	if c.HealthChecks.Timeout == 0 {
		c.HealthChecks.Timeout = d.HealthChecks.Timeout
	}
	if len(c.HealthChecks.Checks) == 0 {
		c.HealthChecks.Checks = d.HealthChecks.Checks
	}
}

// Validate applies custom validation rules that go beyond struct tags.
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
	}

	if c.Logging.SlowQueryThreshold < 0 {
		return fmt.Errorf("logging slow_query_threshold must be non-negative")
	}

	validChecks := map[string]bool{
		"database": true,
		"redis":    true,
	}
	for _, check := range c.HealthChecks.Checks {
		if !validChecks[check] {
			return fmt.Errorf("unknown health check: %s (must be one of: database, redis)", check)
		}
	}

	return nil
}

// GetLogLevel returns the effective log level, defaulting by environment
// when none is set.
func (c *ObservabilityConfig) GetLogLevel() string {
	switch c.Environment {
	case "production":
		if c.Logging.Level == "" {
			return "info"
		}
	case "development", "local":
		if c.Logging.Level == "" {
			return "debug"
		}
	}
	return c.Logging.Level
}

// IsProduction reports whether the application is running in production mode.
func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}

// NewRelicEnabled reports whether a license key was provided.
func (c *ObservabilityConfig) NewRelicEnabled() bool {
	return c.NewRelic.LicenseKey != ""
}
