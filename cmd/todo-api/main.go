package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/todo-api/internal/config"
	"github.com/deppfellow/todo-api/internal/database"
	"github.com/deppfellow/todo-api/internal/handler"
	"github.com/deppfellow/todo-api/internal/logger"
	"github.com/deppfellow/todo-api/internal/repository"
	"github.com/deppfellow/todo-api/internal/router"
	"github.com/deppfellow/todo-api/internal/server"
	"github.com/deppfellow/todo-api/internal/service"
)

// DefaultContextTimeout bounds graceful shutdown, in seconds.
const DefaultContextTimeout = 30

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	if cfg.Database.Driver == config.DriverPostgres {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
		err := database.Migrate(ctx, &log, cfg)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos, err := repository.NewRepositories(srv)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create repositories")
	}

	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server exited properly")
}
