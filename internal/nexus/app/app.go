package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/nexus/internal/nexus/http"
	"github.com/aussiebroadwan/nexus/internal/nexus/identity"
	"github.com/aussiebroadwan/nexus/internal/nexus/mail"
	"github.com/aussiebroadwan/nexus/internal/nexus/responder"
	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/aussiebroadwan/nexus/internal/nexus/store/drivers/sqlite"
	"github.com/aussiebroadwan/nexus/pkg/cryptox"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X ...".
var BuildVersion = "v0.1.0"

// demoIdentity is who the demo identity provider signs in when no Microsoft
// client secret is configured.
var demoIdentity = identity.Identity{
	Email:       "admin@acmecorp.com",
	DisplayName: "Admin User",
	TenantID:    "sample-tenant-id",
}

// Application wires the Nexus server and its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db        store.Store
	passwords *cryptox.PasswordHasher
	tokens    *service.TokenService
	mailer    mail.Mailer
	templates *mail.Templates
	identity  identity.Provider

	authService        *service.AuthService
	inviteService      *service.InviteService
	userService        *service.UserService
	botApprovalService *service.BotApprovalService
	chatService        *service.ChatService
	seedService        *service.SeedService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized. The database
// is migrated and, when enabled, seeded.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "nexus",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if cfg.SeedDemoData {
		ctx := slogx.WithContext(context.Background(), app.logger)
		if _, err := app.seedService.Seed(ctx, service.DemoSeedData(cfg.SeedAdminPassword)); err != nil {
			_ = app.db.Close()
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	app.initHTTP()

	return app, nil
}

// Handler exposes the HTTP handler, for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the server and blocks until it fails or a shutdown signal arrives.
func (app *Application) Run() error {
	app.logger.Info("nexus starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down nexus...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("nexus stopped")
	return nil
}

func (app *Application) initDatabase() error {
	db, err := OpenStore(app.cfg.DatabaseFile)
	if err != nil {
		return err
	}
	app.db = db

	app.logger.Info("database migrations applied successfully")
	return nil
}

// OpenStore opens the SQLite database at path and applies migrations.
func OpenStore(path string) (store.Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	}

	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

func (app *Application) initServices() error {
	var err error

	app.passwords, err = cryptox.NewPasswordHasher(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load password pepper: %w", err)
	}

	secret := app.cfg.JWTSecret
	if secret == "" {
		// Only reachable in dev, Validate rejects it elsewhere.
		secret, err = cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return fmt.Errorf("failed to generate session secret: %w", err)
		}
		app.logger.Warn("JWT_SECRET not set, using an ephemeral secret; sessions end on restart")
	}
	app.tokens, err = service.NewTokenService([]byte(secret), app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	app.mailer, err = mail.New(app.cfg.Mail)
	if err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}
	app.templates, err = mail.LoadTemplates()
	if err != nil {
		return fmt.Errorf("failed to load mail templates: %w", err)
	}

	if app.cfg.Microsoft.ClientSecret == "" {
		app.logger.Warn("MICROSOFT_CLIENT_SECRET not set, Microsoft sign-in uses the demo identity",
			"email", demoIdentity.Email)
		app.identity = identity.NewDemoProvider(app.cfg.Microsoft, demoIdentity)
	} else {
		app.identity = identity.NewMicrosoftProvider(app.cfg.Microsoft)
	}

	app.authService = &service.AuthService{
		Store:     app.db,
		Tokens:    app.tokens,
		Passwords: app.passwords,
		Identity:  app.identity,
	}
	app.inviteService = &service.InviteService{
		Store:       app.db,
		Tokens:      app.tokens,
		Mailer:      app.mailer,
		Templates:   app.templates,
		FrontendURL: app.cfg.FrontendURL,
	}
	app.userService = &service.UserService{Store: app.db, Passwords: app.passwords}
	app.botApprovalService = &service.BotApprovalService{Store: app.db}
	app.chatService = &service.ChatService{
		Store:      app.db,
		Responder:  responder.NewKeywordResponder(),
		References: responder.StaticReferences{},
	}
	app.seedService = &service.SeedService{Store: app.db, Passwords: app.passwords}

	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens,
		app.cfg.Paths,
		[]string{app.cfg.FrontendURL},
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.InviteService = app.inviteService
	router.UserService = app.userService
	router.BotApprovalService = app.botApprovalService
	router.ChatService = app.chatService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              net.JoinHostPort("", fmt.Sprint(app.cfg.Port)),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
