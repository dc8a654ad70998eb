package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	AdminTickets   *handlers.AdminTicketsHandler
	Auth           *handlers.AuthHandler
	Employees      *handlers.EmployeesHandler
	Projects       *handlers.ProjectsHandler
	Announcements  *handlers.AnnouncementsHandler
	AuthMiddleware *auth.AuthMiddleware
	UploadDir      string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/verify-otp", cfg.Auth.VerifyOTP)
	authGroup.Post("/resend-otp", cfg.Auth.ResendOTP)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	tickets := api.Group("/tickets")
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/employee/:employeeId", cfg.Tickets.ListByEmployee)
	tickets.Get("/by-ticket-id/:ticketId", cfg.Tickets.GetByTicketID)
	tickets.Put("/employee-update/:ticketId", cfg.Tickets.UpdateByEmployee)

	// Admin routes. The stats route registers before /:id so it is not
	// swallowed by the parameter match.
	tickets.Get("/stats", cfg.AuthMiddleware.Handle, cfg.AdminTickets.Stats)
	tickets.Get("/", cfg.AuthMiddleware.Handle, cfg.AdminTickets.List)
	tickets.Put("/:id", cfg.AuthMiddleware.Handle, cfg.AdminTickets.Update)

	employees := api.Group("/employees")
	employees.Post("/signup", cfg.Employees.Signup)
	employees.Post("/login", cfg.Employees.Login)
	employees.Get("/", cfg.AuthMiddleware.Handle, cfg.Employees.List)
	employees.Post("/", cfg.AuthMiddleware.Handle, cfg.Employees.Create)
	employees.Put("/:id", cfg.AuthMiddleware.Handle, cfg.Employees.Update)
	employees.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Employees.Deactivate)

	announcements := api.Group("/announcements")
	announcements.Get("/", cfg.Announcements.List)
	announcements.Post("/", cfg.AuthMiddleware.Handle, cfg.Announcements.Create)
	announcements.Put("/:id", cfg.AuthMiddleware.Handle, cfg.Announcements.Update)
	announcements.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Announcements.Deactivate)

	projects := api.Group("/projects")
	projects.Get("/public", cfg.Projects.ListActive)
	projects.Get("/", cfg.AuthMiddleware.Handle, cfg.Projects.ListAll)
	projects.Post("/", cfg.AuthMiddleware.Handle, cfg.Projects.Create)
	projects.Put("/:id", cfg.AuthMiddleware.Handle, cfg.Projects.Update)
	projects.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Projects.Deactivate)
}
