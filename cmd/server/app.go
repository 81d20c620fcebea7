package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/taskmate-api/internal/config"
	"github.com/phrazzld/taskmate-api/internal/events"
	"github.com/phrazzld/taskmate-api/internal/realtime"
	"github.com/phrazzld/taskmate-api/internal/service"
	"github.com/phrazzld/taskmate-api/internal/service/auth"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	backend *storeBackend

	// Service interfaces
	tokenService   auth.TokenService
	accountService service.AccountService
	taskService    service.TaskService

	// Event system
	eventEmitter *events.InMemoryEventEmitter
	hub          *realtime.Hub
}

// newApplication creates a new application instance with all dependencies
// initialized on top of an already opened store backend.
func newApplication(cfg *config.Config, logger *slog.Logger, backend *storeBackend) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		backend: backend,
	}

	var err error
	app.tokenService, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("Session token service initialized",
		slog.Int("token_lifetime_hours", cfg.Auth.TokenLifetimeHours))

	// Task changes fan out to the websocket hub through the event emitter.
	app.hub = realtime.NewHub(logger, cfg.Server.AllowedOrigins)
	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(app.hub)

	app.accountService, err = service.NewAccountService(backend.accounts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	app.taskService, err = service.NewTaskService(backend.tasks, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// sessionLifetime is the cookie lifetime matching the token lifetime.
func (app *application) sessionLifetime() time.Duration {
	return time.Duration(app.config.Auth.TokenLifetimeHours) * time.Hour
}

// healthCheck answers the liveness probe.
func (app *application) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("Failed to write health check response", "error", err)
	}
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup(ctx context.Context) {
	if app.hub != nil {
		if err := app.hub.Close(); err != nil {
			app.logger.Error("Error closing websocket hub", "error", err)
		}
	}

	if app.backend != nil && app.backend.close != nil {
		if err := app.backend.close(ctx); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
