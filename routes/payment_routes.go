package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sessionmarket/backend/handlers"
)

func PaymentRoutes(app *fiber.App, h *handlers.PaymentHandler, protect fiber.Handler) {
	payment := app.Group("/api/v1/payment")

	// The processor signs webhook deliveries itself, so this route carries
	// no JWT.
	payment.Post("/webhook", h.Webhook)

	payment.Post("/create-intent", protect, h.CreateIntent)
	payment.Post("/confirm", protect, h.Confirm)
}
