package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sessionmarket/backend/handlers"
	"github.com/sessionmarket/backend/middleware"
)

func DashboardRoutes(app *fiber.App, h *handlers.DashboardHandler, protect fiber.Handler) {
	dashboard := app.Group("/api/v1/dashboard", protect)

	dashboard.Get("/user", h.UserDashboard)
	dashboard.Get("/creator", middleware.CreatorRequired(), h.CreatorDashboard)
}
