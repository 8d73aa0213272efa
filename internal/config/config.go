package config

import (
	"time"

	"github.com/maxviazov/realty-marketplace/internal/logger"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger" validate:"-"` // validated by logger.New after defaults
	Postgres PostgresConfig      `mapstructure:"postgres"`
	Web      WebConfig           `mapstructure:"web"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name" validate:"required"`
	Version         string        `mapstructure:"version"`
	Env             string        `mapstructure:"env" validate:"oneof=dev test staging prod"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// PostgresConfig holds connection settings; durations are seconds.
// User, password and database name are secrets and come from the environment.
type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"min=1,max=65535"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password" validate:"required"`
	DBName            string `mapstructure:"db" validate:"required"`
	SSLMode           string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
}

// WebConfig drives the server-rendered frontend.
type WebConfig struct {
	// APIBaseURL is where pages fetch listings from; empty means this process.
	APIBaseURL string `mapstructure:"api_base_url" validate:"omitempty,url"`
	// LoginAction is the credential issuer endpoint the login form posts to.
	LoginAction    string        `mapstructure:"login_action"`
	RegisterAction string        `mapstructure:"register_action"`
	APITimeout     time.Duration `mapstructure:"api_timeout"`
	Gzip           bool          `mapstructure:"gzip"`
}
