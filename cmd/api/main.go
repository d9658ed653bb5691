package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hacktrack/hacktrack/internal/config"
	"github.com/hacktrack/hacktrack/internal/database"
	"github.com/hacktrack/hacktrack/internal/handler"
	"github.com/hacktrack/hacktrack/internal/logger"
	"github.com/hacktrack/hacktrack/internal/middleware"
	"github.com/hacktrack/hacktrack/internal/repository"
	"github.com/hacktrack/hacktrack/internal/router"
	"github.com/hacktrack/hacktrack/internal/server"
	"github.com/hacktrack/hacktrack/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	bootLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	loggerService, err := logger.NewLoggerService(cfg, &bootLogger)
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("failed to initialize logger service")
	}

	appLogger := logger.New(cfg, loggerService.GetApplication())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, &appLogger, cfg); err != nil {
		cancel()
		appLogger.Fatal().Err(err).Msg("failed to run database migrations")
	}
	cancel()

	srv, err := server.New(cfg, &appLogger, loggerService)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to initialize services")
	}

	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)

	e := router.Setup(middlewares, handlers)
	srv.SetupHTTPServer(e)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}

	loggerService.Shutdown(5 * time.Second)

	appLogger.Info().Msg("server stopped")
}
