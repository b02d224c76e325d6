// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when present), loads them into structured Go types and validates
// that required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the CRM_ prefix. Keys are lowercased, the prefix
	is removed and a double underscore marks nesting:

		CRM_SERVER__PORT            -> server.port            -> Config.Server.Port
		CRM_DATABASE__MAX_OPEN_CONNS -> database.max_open_conns -> Config.Database.MaxOpenConns
*/

const (
	// EnvPrefix is the prefix every application variable carries.
	EnvPrefix = "CRM_"

	// ServiceName tags logs, traces and APM dashboards.
	ServiceName = "docker-crm"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from and the
// `validate` tags are enforced by go-playground/validator.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are stored in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"gte=0"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// RateLimitRPS is the per-client request rate. Zero disables rate limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int     `koanf:"rate_limit_burst" validate:"gte=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// Lifetimes are stored in seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"gte=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"gte=0"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port". An empty address disables Redis and background jobs.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// Enabled reports whether a Redis address has been configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// IntegrationConfig stores third-party API credentials.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, applies defaults and validates the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", mapEnv), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults()

	// Service name and environment always follow the primary block so
	// logs and traces stay consistent.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// mapEnv turns CRM_SERVER__CORS_ALLOWED_ORIGINS=a,b into
// ("server.cors_allowed_origins", []string{"a", "b"}).
func mapEnv(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")

	if strings.HasSuffix(key, "cors_allowed_origins") || strings.HasSuffix(key, "health_checks.checks") {
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return key, items
	}

	return key, value
}

func (c *Config) applyDefaults() {
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
	if c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst == 0 {
		c.Server.RateLimitBurst = max(1, int(c.Server.RateLimitRPS*2))
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.ConnMaxIdleTime == 0 {
		c.Database.ConnMaxIdleTime = 60
	}

	if c.Integration.EmailFrom == "" {
		c.Integration.EmailFrom = "Docker CRM <onboarding@resend.dev>"
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
		return
	}
	c.Observability.fillDefaults(DefaultObservabilityConfig())
}
