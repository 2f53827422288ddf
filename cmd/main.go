package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"parkapp/internal/config"
	"parkapp/internal/handlers"
	"parkapp/internal/middleware"
	"parkapp/internal/repositories"
	"parkapp/internal/services"
	"parkapp/pkg/database"
	"parkapp/pkg/logger"
)

const (
	version         = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

// @title ParkApp API
// @version 1.0
// @description Multi-tenant vehicle entry and exit ledger.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "parkapp",
	})
	if cfg.GeneratedSecret {
		log.Warn().Msg("JWT_SECRET not set, using a generated secret; tokens will not survive a restart")
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.ClosePool(pool, log)

	// Repositories
	companyRepo := repositories.NewCompanyRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	entryRepo := repositories.NewVehicleEntryRepo(pool)

	// Services
	tenantService := services.NewTenantService(companyRepo)
	tokenService := services.NewTokenService(cfg.JWTSecret)
	identityService, err := services.NewIdentityService(
		tenantService,
		userRepo,
		services.NewBcryptHasher(cfg.BcryptCost),
		tokenService,
		services.AdminCredentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword},
		log,
	)
	if err != nil {
		return fmt.Errorf("failed to create identity service: %w", err)
	}
	ledgerService := services.NewVehicleLedgerService(entryRepo)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(log)

	e.Use(echoMiddleware.Recover())
	e.Use(middleware.Metrics())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.VersionHeader(middleware.CurrentVersion))

	handlers.RegisterRoutes(e, &handlers.Handlers{
		Auth:     handlers.NewAuthHandlers(identityService),
		Vehicles: handlers.NewVehicleHandlers(ledgerService),
		Health:   handlers.NewHealthHandlers(pool),
	}, middleware.JWTMiddleware(identityService))

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("version", version).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
