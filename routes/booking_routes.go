package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sessionmarket/backend/handlers"
)

func BookingRoutes(app *fiber.App, h *handlers.BookingHandler, protect fiber.Handler) {
	bookings := app.Group("/api/v1/bookings", protect)

	bookings.Post("", h.Create)
	bookings.Get("", h.List)
	bookings.Get("/my_bookings", h.MyBookings)
	bookings.Get("/active", h.Active)
	bookings.Get("/past", h.Past)
	bookings.Get("/:id", h.Get)
	bookings.Post("/:id/confirm", h.Confirm)
	bookings.Post("/:id/cancel", h.Cancel)
}
