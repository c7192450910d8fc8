package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abkoo/ticketdesk/internal/api/http/handlers"
	"github.com/abkoo/ticketdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)
	api.Get("/tickets", cfg.Tickets.List)
	api.Post("/tickets", cfg.Tickets.Create)
	api.Get("/tickets/stats", cfg.Tickets.Stats)
	api.Patch("/tickets/:id", cfg.Tickets.Update)
	api.Post("/tickets/:id/move", cfg.Tickets.Move)

	admin := api.Group("/admin", auth.RequireAdmin())
	admin.Get("/tickets", cfg.Tickets.AdminList)
	admin.Get("/users", cfg.Users.List)
	admin.Post("/users", cfg.Users.Create)
	admin.Delete("/users/:id", cfg.Users.Deactivate)
}
