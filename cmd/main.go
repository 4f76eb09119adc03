package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/yakoovad/hackathon-registration/internal/api"
	"github.com/yakoovad/hackathon-registration/internal/auth"
	"github.com/yakoovad/hackathon-registration/internal/config"
	"github.com/yakoovad/hackathon-registration/internal/db"
	"github.com/yakoovad/hackathon-registration/internal/mail"
	"github.com/yakoovad/hackathon-registration/internal/repository"
	"github.com/yakoovad/hackathon-registration/internal/service"
	"github.com/yakoovad/hackathon-registration/migrations"
	"github.com/yakoovad/hackathon-registration/pkg/logger"
	"go.uber.org/zap"
)

const version = "v0.1.0"

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		panic(err)
	}

	logger, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting application", zap.String("version", version))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err = pool.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}

	logger.Info("database connection established")

	if err = migrations.Up(ctx, pool, logger); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	transactor := db.NewPgxTransactor(pool)
	registrationRepo := repository.NewPgxRegistrationRepository(pool)

	var sender mail.Sender = mail.NewLogSender(logger)
	if cfg.Mail.Enabled {
		sender = mail.NewSMTPSender(cfg.Mail)
	} else {
		logger.Warn("confirmation emails disabled")
	}
	notifier := mail.NewAsyncNotifier(sender, logger).WithTimeout(cfg.Mail.Timeout)

	registrations := service.NewRegistrationService(transactor).
		WithRegistrationRepo(registrationRepo).
		WithNotifier(notifier)

	if cfg.TokenSecret == "" {
		logger.Warn("TOKEN_AUTH_SECRET is empty, registration lookup will reject every request")
	}

	healthChecker, err := api.NewHealthChecker(version, api.PostgresCheck(pool))
	if err != nil {
		logger.Fatal("failed to create health checker", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true

	handler := api.NewHandler(logger).
		WithHealthChecker(healthChecker).
		WithRegistrationService(registrations).
		WithIssuer(auth.NewIssuer(cfg.TokenSecret))

	handler.RegisterRoutes(e)

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Addr))
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down server", zap.Error(err))
	}

	notifier.Wait()
}
