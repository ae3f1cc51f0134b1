package app

import (
	"errors"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	BackendURL     string        `envconfig:"BACKEND_URL" default:"http://127.0.0.1:9000/api"`
	BackendTimeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"30s"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`

	// PGDSN is optional; when empty the audit trail is disabled.
	PGDSN string `envconfig:"PG_DSN" default:""`

	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"1h"`

	DashboardWarmupInterval time.Duration `envconfig:"DASHBOARD_WARMUP_INTERVAL" default:"10m"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.BackendURL) == "" {
		return nil, errors.New("backend url must be provided")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
