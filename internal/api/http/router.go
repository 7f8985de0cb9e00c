package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/telecel/helpdesk/internal/api/http/handlers"
	"github.com/telecel/helpdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Chat           *handlers.ChatHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The API deliberately mirrors the
// original browser contract: endpoints are open and the bearer token is
// only resolved for request attribution.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	api.Post("/login", cfg.Auth.Login)

	api.Get("/users", cfg.Users.List)
	api.Post("/users", cfg.Users.Create)
	api.Delete("/users/:id", cfg.Users.Delete)
	api.Post("/users/:id/password/reset", cfg.Users.ResetPassword)
	api.Put("/users/:id/password", cfg.Users.ChangePassword)

	api.Get("/tickets", cfg.Tickets.List)
	api.Post("/tickets", cfg.Tickets.Create)
	api.Put("/tickets/:id/status", cfg.Tickets.UpdateStatus)

	api.Get("/tickets/:id/messages", cfg.Chat.ListMessages)
	api.Post("/tickets/:id/messages", cfg.Chat.SendMessage)
	api.Get("/tickets/:id/chat/latest", cfg.Chat.LatestActivity)
}
