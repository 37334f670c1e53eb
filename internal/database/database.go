// Package database contains the logic for establishing
// connections to the item store.
//
// For PostgreSQL it handles *database pooling* (pgxpool) and
// integrates the logger/tracer with the driver (pgx). For SQLite
// it opens a single-connection database/sql handle.
//
// It handles:
//   - building a DSN from config
//   - creating a pgx connection pool and applying pool limits
//   - wiring query tracing/logging (pgx tracelog)
//   - optional New Relic instrumentation (nrpgx5)
package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/deppfellow/todo-api/internal/config"
	loggerConfig "github.com/deppfellow/todo-api/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// Database wraps the pgx connection pool and a logger.
type Database struct {
	Pool *pgxpool.Pool
	log  *zerolog.Logger
}

// multiTracer fans pgx's single Tracer slot out to several tracers
// (New Relic and the local SQL log).
type multiTracer struct {
	tracers []any
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

// DatabasePingTimeout is how long startup waits, in seconds, for the
// first ping before giving up.
const DatabasePingTimeout = 10

// DSN builds the postgres URL for cfg. The password is URL-escaped.
func DSN(cfg *config.DatabaseConfig) string {
	hostPort := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		cfg.User,
		url.QueryEscape(cfg.Password),
		hostPort,
		cfg.Name,
		cfg.SSLMode,
	)
}

// New creates a PostgreSQL connection pool with instrumentation.
//
// Behavior:
//   - Parse DSN into pgxpool config and apply pool limits
//   - Attach New Relic tracer if available
//   - In local env: attach SQL tracelogger (and chain tracers if both exist)
//   - Create pool, ping it, and return Database
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(DSN(&cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(min(cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns))
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	if loggerService.GetApplication() != nil {
		pgxPoolConfig.ConnConfig.Tracer = nrpgx5.NewTracer()
	}

	// SQL logging is noisy, so it only runs locally.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()

		localTracer := &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(loggerConfig.NewPgxLogger(globalLevel)),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		}

		if pgxPoolConfig.ConnConfig.Tracer != nil {
			pgxPoolConfig.ConnConfig.Tracer = &multiTracer{
				tracers: []any{pgxPoolConfig.ConnConfig.Tracer, localTracer},
			}
		} else {
			pgxPoolConfig.ConnConfig.Tracer = localTracer
		}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	database := &Database{
		Pool: pool,
		log:  logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Name).
		Int32("max_conns", pgxPoolConfig.MaxConns).
		Msg("connected to the database")

	return database, nil
}

// Ping checks that a pooled connection can reach the server.
func (db *Database) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Close closes the database connection pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	return nil
}
