package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CRM_PRIMARY__ENV", "local")
	t.Setenv("CRM_SERVER__PORT", "8080")
	t.Setenv("CRM_DATABASE__HOST", "localhost")
	t.Setenv("CRM_DATABASE__PORT", "5432")
	t.Setenv("CRM_DATABASE__USER", "crm")
	t.Setenv("CRM_DATABASE__NAME", "crm")
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.False(t, cfg.Redis.Enabled())

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.Equal(t, 30*time.Second, cfg.Observability.HealthChecks.Interval)
	assert.False(t, cfg.Observability.NewRelicEnabled())
}

func TestLoadConfigReadsNestedAndListValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CRM_SERVER__CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://crm.example.com")
	t.Setenv("CRM_SERVER__RATE_LIMIT_RPS", "5")
	t.Setenv("CRM_REDIS__ADDRESS", "localhost:6379")
	t.Setenv("CRM_OBSERVABILITY__LOGGING__LEVEL", "debug")
	t.Setenv("CRM_OBSERVABILITY__HEALTH_CHECKS__INTERVAL", "10s")
	t.Setenv("CRM_OBSERVABILITY__HEALTH_CHECKS__CHECKS", "database")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://localhost:5173", "https://crm.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 5.0, cfg.Server.RateLimitRPS)
	assert.Equal(t, 10, cfg.Server.RateLimitBurst)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.Equal(t, 10*time.Second, cfg.Observability.HealthChecks.Interval)
	assert.Equal(t, 5*time.Second, cfg.Observability.HealthChecks.Timeout)
	assert.Equal(t, []string{"database"}, cfg.Observability.HealthChecks.Checks)
}

func TestLoadConfigFailsOnMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CRM_DATABASE__HOST", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Host")
}

func TestLoadConfigRejectsUnknownLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CRM_OBSERVABILITY__LOGGING__LEVEL", "verbose")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestObservabilityGetLogLevel(t *testing.T) {
	cfg := &ObservabilityConfig{Environment: "production"}
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "warn"
	assert.Equal(t, "warn", cfg.GetLogLevel())
	assert.False(t, cfg.IsProduction())
}
