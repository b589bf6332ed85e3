// Package app wires configuration, storage, and services together and owns
// the process lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmcarb/clienthub/internal/auth/service"
	"github.com/jmcarb/clienthub/internal/auth/store"
	"github.com/jmcarb/clienthub/internal/auth/store/drivers/postgres"
	"github.com/jmcarb/clienthub/internal/auth/store/drivers/sqlite"
	"github.com/jmcarb/clienthub/pkg/jwtx"
	"github.com/jmcarb/clienthub/pkg/ratex"
	"github.com/jmcarb/clienthub/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application holds the wired service graph. Transport layers (HTTP, gRPC,
// CLI) sit on top of the exposed services; none is bundled here.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	sessionService *service.SessionService
	clientService  *service.ClientService
	seedService    *service.SeedService
}

// New builds an Application from cfg: validates config, opens the store,
// applies migrations, and constructs the services with their dependencies
// injected explicitly.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "clienthub",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Run seeds startup data and blocks until a shutdown signal arrives.
func (app *Application) Run() error {
	ctx := slogx.WithContext(context.Background(), app.logger)

	if err := app.seedService.Run(ctx); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	app.logger.Info("clienthub started",
		"version", BuildVersion,
		"db_driver", app.cfg.DatabaseDriver,
	)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	sig := <-shutdown
	app.logger.Info("shutdown signal received", "signal", sig)

	return app.Shutdown()
}

// Shutdown releases the application's resources.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down clienthub...")

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("clienthub stopped")
	return nil
}

// Sessions exposes the session service to transport layers.
func (app *Application) Sessions() *service.SessionService { return app.sessionService }

// Clients exposes the client-record service to transport layers.
func (app *Application) Clients() *service.ClientService { return app.clientService }

// Store exposes the underlying store, mainly for health checks.
func (app *Application) Store() store.Store { return app.db }

func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case "postgres":
		db, err = postgres.NewStore(app.cfg.DatabaseDSN)
	case "sqlite", "":
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseDSN)
		db, err = sqlite.NewStore(dsn)
	default:
		return fmt.Errorf("unknown database driver %q", app.cfg.DatabaseDriver)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() error {
	signer, err := jwtx.NewSignerHS256([]byte(app.cfg.SigningSecret))
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}

	app.sessionService = &service.SessionService{
		Store:      app.db,
		Signer:     signer,
		Principals: service.ContextResolver{},
		LoginThrottle: ratex.New(ratex.Config{
			AttemptsPerWindow: app.cfg.LoginAttemptsPerWindow,
			Window:            app.cfg.LoginWindow,
		}),
		Issuer:         app.cfg.Issuer,
		Audience:       app.cfg.Audience,
		AccessTTL:      app.cfg.AccessTTL,
		RefreshTTL:     app.cfg.RefreshTTL,
		MinPasswordLen: app.cfg.MinPasswordLen,
	}

	app.clientService = &service.ClientService{Store: app.db}

	app.seedService = &service.SeedService{
		Store:         app.db,
		AdminEmail:    app.cfg.AdminEmail,
		AdminPassword: app.cfg.AdminPassword,
	}

	return nil
}
