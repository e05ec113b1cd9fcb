package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sessionmarket/backend/handlers"
)

func SessionRoutes(app *fiber.App, h *handlers.SessionHandler, protect fiber.Handler) {
	api := app.Group("/api/v1")

	api.Post("/sessions", protect, h.Create)
	api.Get("/sessions/my_sessions", protect, h.MySessions)
	api.Put("/sessions/:id", protect, h.Update)
	api.Delete("/sessions/:id", protect, h.Delete)
	api.Get("/sessions/:id/bookings", protect, h.Bookings)

	// Catalog reads stay public; unpublished sessions are filtered out for
	// anonymous callers inside the service.
	api.Get("/sessions", h.List)
	api.Get("/sessions/:id", h.Get)
}
