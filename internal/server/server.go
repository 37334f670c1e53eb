// Package server defines the core Server struct that composes the app's main dependencies.
//
// It contains the initialization logic to spin up the HTTP server
// and handles graceful shutdowns
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the storage handle selected by database.driver
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/todo-api/internal/config"
	"github.com/deppfellow/todo-api/internal/database"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/todo-api/internal/logger"
)

// RedisPingTimeout bounds the startup ping against Redis.
const RedisPingTimeout = 5 * time.Second

// Server is the application container that holds shared resources.
//
// Exactly one of DB, SQLite and Redis is set, matching
// Config.Database.Driver.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	// DB holds the PostgreSQL pool wrapper.
	DB *database.Database

	// SQLite holds the embedded database handle.
	SQLite *database.SQLite

	// Redis is the Redis client used as item store.
	Redis *redis.Client

	httpServer *http.Server
}

// New constructs a Server and opens the configured storage backend.
//
// It does NOT start the HTTP server. That is done in SetupHTTPServer + Start.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
	}

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.New(cfg, logger, loggerService)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		server.DB = db

	case config.DriverSQLite:
		db, err := database.NewSQLite(cfg.Database.SQLitePath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite: %w", err)
		}
		server.SQLite = db

	case config.DriverRedis:
		client, err := newRedisClient(cfg, loggerService)
		if err != nil {
			return nil, err
		}
		server.Redis = client
		logger.Info().Str("address", cfg.Redis.Address).Msg("connected to redis")

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	return server, nil
}

func newRedisClient(cfg *config.Config, loggerService *loggerPkg.LoggerService) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), RedisPingTimeout)
	defer cancel()

	// Redis is the item store here, so an unreachable server is fatal.
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return redisClient, nil
}

// PingStorage checks that the active storage backend answers.
func (s *Server) PingStorage(ctx context.Context) error {
	switch {
	case s.DB != nil:
		return s.DB.Ping(ctx)
	case s.SQLite != nil:
		return s.SQLite.Ping(ctx)
	case s.Redis != nil:
		return s.Redis.Ping(ctx).Err()
	default:
		return errors.New("no storage backend configured")
	}
}

// SetupHTTPServer configures the internal net/http server.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Config.Server.Port,
		Handler: handler,

		// Config stores int values, interpreted here as seconds.
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops.
//
// It requires SetupHTTPServer to be called first.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("driver", s.Config.Database.Driver).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server, waiting for in-flight
// requests until ctx expires, then closes the storage handle.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	return s.Close()
}

// Close releases the storage handle without touching the HTTP server.
func (s *Server) Close() error {
	var err error

	if s.DB != nil {
		if cerr := s.DB.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close database connection: %w", cerr))
		}
	}

	if s.SQLite != nil {
		if cerr := s.SQLite.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close sqlite database: %w", cerr))
		}
	}

	if s.Redis != nil {
		if cerr := s.Redis.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close redis client: %w", cerr))
		}
	}

	return err
}
