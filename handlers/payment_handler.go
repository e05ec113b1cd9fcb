package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sessionmarket/backend/middleware"
	"github.com/sessionmarket/backend/services"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type CreateIntentRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}

func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	var req CreateIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	bookingID, _ := uuid.Parse(req.BookingID)

	intent, err := h.payments.CreateIntent(c.UserContext(), middleware.ActorID(c), bookingID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"client_secret":     intent.ClientSecret,
		"payment_intent_id": intent.ID,
	})
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}

func (h *PaymentHandler) Confirm(c *fiber.Ctx) error {
	var req ConfirmPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := h.payments.ConfirmPayment(c.UserContext(), middleware.ActorID(c), req.PaymentIntentID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Payment confirmed successfully",
		"booking_id": booking.ID,
	})
}

// Webhook acknowledges every verified delivery with 200, even when the intent
// matches no booking, so the processor stops retrying. Verification failures
// are 400 and cause no processing at all.
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	err := h.payments.HandleWebhookEvent(c.UserContext(), c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, services.ErrSignatureVerification) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid webhook signature"})
		}
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Webhook processed successfully"})
}
