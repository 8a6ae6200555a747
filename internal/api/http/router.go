package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/codigo-hd/helpdesk-service/internal/api/http/handlers"
	"github.com/codigo-hd/helpdesk-service/internal/auth"
	"github.com/codigo-hd/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Departments    *handlers.DepartmentsHandler
	Users          *handlers.UsersHandler
	AI             *handlers.AIHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	authed := app.Group("", cfg.AuthMiddleware.Handle)
	authed.Get("/auth/profile", cfg.Auth.Profile)

	authed.Get("/tickets", cfg.Tickets.List)
	authed.Post("/tickets", cfg.Tickets.Create)
	authed.Get("/tickets/by-number/:number", cfg.Tickets.GetByNumber)
	authed.Get("/tickets/:id", cfg.Tickets.GetByID)
	authed.Put("/tickets/:id/status", cfg.Tickets.UpdateStatus)
	authed.Get("/tickets/:id/messages", cfg.Tickets.Messages)
	authed.Post("/tickets/:id/messages", cfg.Tickets.AddMessage)

	authed.Get("/departments", cfg.Departments.List)

	authed.Post("/ai/analyze", cfg.AI.Analyze)

	admin := authed.Group("/users", auth.RequireUserType(domain.UserTypeAdmin))
	admin.Get("", cfg.Users.List)
	admin.Post("", cfg.Users.Create)
}
