package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/phrazzld/taskmate-api/internal/api"
	apiMiddleware "github.com/phrazzld/taskmate-api/internal/api/middleware"
	"github.com/phrazzld/taskmate-api/internal/platform/logger"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(apiMiddleware.Trace(app.logger))

	authHandler := api.NewAuthHandler(app.tokenService, api.CookieOptions{
		Secure: app.config.Server.IsProduction(),
		MaxAge: app.sessionLifetime(),
	}, app.logger)
	accountHandler := api.NewAccountHandler(app.accountService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	session := apiMiddleware.NewSessionMiddleware(app.tokenService)

	// Public routes
	r.Post("/jwt", authHandler.IssueToken)
	r.Get("/logout", authHandler.Logout)
	r.Post("/accounts", accountHandler.CreateAccount)
	r.Get("/accounts", accountHandler.ListAccounts)

	// Session routes
	r.Group(func(r chi.Router) {
		r.Use(session.Authenticate)

		r.Post("/records", taskHandler.CreateTask)
		r.Get("/records/{email}", taskHandler.ListTasks)
		r.Put("/records/{id}", taskHandler.UpdateTask)
		r.Delete("/records/{id}", taskHandler.DeleteTask)
		r.Patch("/tasks/{id}", taskHandler.UpdateTask)

		r.Get("/ws", app.serveWebsocket)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Hello from TaskMate Server.."))
	})
	r.Get("/health", app.healthCheck)

	return r
}

// serveWebsocket upgrades a session request and hands the connection to the
// hub. The client may only join the room of its own session email.
func (app *application) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	email, _ := apiMiddleware.GetUserEmail(r)
	if err := app.hub.ServeWS(w, r, email); err != nil {
		logger.FromContextOrDefault(r.Context(), app.logger).Debug("websocket connection rejected",
			"error", err,
			"remote_addr", r.RemoteAddr)
	}
}
