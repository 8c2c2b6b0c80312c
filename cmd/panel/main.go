package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"userpanel/internal/panel/adapters/postgres"
	"userpanel/internal/panel/adapters/services"
	"userpanel/internal/panel/adapters/sessions"
	"userpanel/internal/panel/app"
	httpServer "userpanel/internal/panel/app/http"
	"userpanel/internal/panel/app/http/middleware"
	"userpanel/internal/panel/config"
	pgdb "userpanel/pkg/db/postgres"
	redisdb "userpanel/pkg/db/redis"
	"userpanel/pkg/logger"
	"userpanel/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "PANEL_LOGGER_MODE"
	EnvLoggerLevel = "PANEL_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrConnectDatabase      = "failed to connect to database"
	ErrMigrateDatabase      = "failed to apply database migrations"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "panel service started"
	LogServiceShutdownDone = "panel service shutdown complete"
	LogInitDatabase        = "initializing database"
	LogInitSessionStore    = "initializing session store"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDatabase)
		database, err := pgdb.New(ctx, cfg.Database.GetDSN(), cfg.Database.MinConns, cfg.Database.MaxConns)
		if err != nil {
			log.Error(ctx, ErrConnectDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		if err := pgdb.MigrateDSN(ctx, cfg.Database.GetDSN(), cfg.Database.MigrationsPath); err != nil {
			log.Error(ctx, ErrMigrateDatabase, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitSessionStore)
		redisClient, err := redisdb.NewClient(ctx, redisdb.NewConfigFromPanelConfig(&cfg.Redis))
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}
		sessionStore := sessions.NewRedisStore(redisClient, cfg.Session.IdleTTL)

		log.Info(ctx, LogInitUseCases)
		userRepo := postgres.NewUserRepository(database.Pool())
		passwordSvc := services.NewBcrypt(0)

		accounts := app.NewAccountUseCase(userRepo, passwordSvc, sessionStore)
		admin := app.NewAdminUseCase(userRepo)
		gate := app.NewAuthGate(userRepo)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		accountHandler := httpServer.NewAccountHandler(accounts, sessionStore, cfg.Session.CookieName)
		adminHandler := httpServer.NewAdminHandler(admin)
		sessionAuth := middleware.NewSessionAuthMiddleware(sessionStore, gate, cfg.Session.CookieName)

		httpServer.SetupRouter(fiberApp, accountHandler, adminHandler, sessionAuth)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
			// Закрытие Redis соединения.
			func(ctx context.Context) error {
				log.Info(ctx, "Closing Redis connection")
				return redisClient.Close()
			},
			// Закрытие пула соединений с базой данных.
			func(ctx context.Context) error {
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
