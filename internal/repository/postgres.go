package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/maxviazov/realty-marketplace/internal/config"
)

const connectTimeout = 5 * time.Second

// Repository owns the pgx pool shared by every Postgres-backed repository.
type Repository struct {
	pool *pgxpool.Pool
}

// DSN renders connection settings as a postgres:// URL; url.URL takes care
// of escaping credentials.
func DSN(cfg config.PostgresConfig) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:   cfg.DBName,
	}
	if cfg.User != "" || cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	q := u.Query()
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// New connects the pool, traces SQL through logger and pings once so a bad
// DSN fails at startup instead of on the first request.
func New(ctx context.Context, cfg config.PostgresConfig, logger zerolog.Logger) (*Repository, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	poolConfig, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}

	poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   newPgxLogger(logger),
		LogLevel: traceLevel(logger.GetLevel()),
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = time.Duration(cfg.MaxConnIdleTime) * time.Second
	poolConfig.HealthCheckPeriod = time.Duration(cfg.HealthCheckPeriod) * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("db", cfg.DBName).
		Int32("max_conns", poolConfig.MaxConns).
		Msg("connected to postgres")

	return &Repository{pool: pool}, nil
}

// NewFromPool wraps an already connected pool, as tests and tools do.
func NewFromPool(pool *pgxpool.Pool) *Repository { return &Repository{pool: pool} }

// Pool exposes the underlying pool to the concrete repositories.
func (r *Repository) Pool() *pgxpool.Pool { return r.pool }

// Ping implements Pinger for the readiness probe.
func (r *Repository) Ping(ctx context.Context) error {
	if r.pool == nil {
		return errors.New("postgres pool is closed")
	}
	return r.pool.Ping(ctx)
}

// Close releases every pooled connection.
func (r *Repository) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

var _ Pinger = (*Repository)(nil)
