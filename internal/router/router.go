package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/primestaffing/recruiter-tracker/internal/access"
	"github.com/primestaffing/recruiter-tracker/internal/config"
	"github.com/primestaffing/recruiter-tracker/internal/handler"
	"github.com/primestaffing/recruiter-tracker/internal/middleware"
	"github.com/primestaffing/recruiter-tracker/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	GoalHandler       *handler.GoalHandler
	CommissionHandler *handler.CommissionHandler
	DashboardHandler  *handler.DashboardHandler
	UserHandler       *handler.UserHandler
	AuditHandler      *handler.AuditHandler
	SettingsHandler   *handler.SettingsHandler
	HealthChecks      map[string]handler.Pinger
}

// Register wires the HTTP routes into the fiber application. Session
// resolution happens in middleware.Register; guards here only enforce it.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.HealthChecks))

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", cfg.AuthRateLimit, time.Minute))
		deps.AuthHandler.Register(auth)
	}

	if deps.GoalHandler != nil {
		deps.GoalHandler.Register(api.Group("/goals", middleware.Authorize(access.Authenticated)))
	}

	if deps.CommissionHandler != nil {
		deps.CommissionHandler.Register(api.Group("/commissions"))
	}

	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(api.Group("/dashboard"))
	}

	if deps.UserHandler != nil {
		deps.UserHandler.Register(api.Group("/users"))
	}

	if deps.AuditHandler != nil {
		deps.AuditHandler.Register(api.Group("/audit-logs", middleware.Authorize(access.AdminOrAbove)))
	}

	if deps.SettingsHandler != nil {
		deps.SettingsHandler.Register(api.Group("/settings", middleware.Authorize(access.Authenticated)))
	}
}
