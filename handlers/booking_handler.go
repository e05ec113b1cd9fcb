package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sessionmarket/backend/middleware"
	"github.com/sessionmarket/backend/models"
	"github.com/sessionmarket/backend/services"
)

type BookingHandler struct {
	bookings *services.BookingService
}

func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type CreateBookingRequest struct {
	SessionID      string `json:"session_id" validate:"required,uuid"`
	BookingDate    string `json:"booking_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	AttendeesCount int    `json:"attendees_count" validate:"required,min=1"`
	Notes          string `json:"user_notes,omitempty"`
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	userID := middleware.ActorID(c)

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sessionID, _ := uuid.Parse(req.SessionID)
	bookingDate, _ := time.Parse(time.RFC3339, req.BookingDate)

	booking, err := h.bookings.Create(c.UserContext(), userID, services.CreateBookingInput{
		SessionID:      sessionID,
		BookingDate:    bookingDate,
		AttendeesCount: req.AttendeesCount,
		Notes:          req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

func (h *BookingHandler) Confirm(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	booking, err := h.bookings.Confirm(c.UserContext(), middleware.ActorID(c), bookingID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(booking)
}

func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	booking, err := h.bookings.Cancel(c.UserContext(), middleware.ActorID(c), bookingID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(booking)
}

func (h *BookingHandler) Get(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	booking, err := h.bookings.Get(c.UserContext(), middleware.ActorID(c), bookingID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(booking)
}

func (h *BookingHandler) list(c *fiber.Ctx, statuses []string) error {
	bookings, err := h.bookings.ListForActor(c.UserContext(), middleware.ActorID(c), middleware.ActorRole(c), statuses)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bookings)
}

func (h *BookingHandler) List(c *fiber.Ctx) error {
	return h.list(c, nil)
}

func (h *BookingHandler) MyBookings(c *fiber.Ctx) error {
	bookings, err := h.bookings.ListOwn(c.UserContext(), middleware.ActorID(c), nil)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bookings)
}

func (h *BookingHandler) Active(c *fiber.Ctx) error {
	return h.list(c, models.ActiveStatuses)
}

func (h *BookingHandler) Past(c *fiber.Ctx) error {
	return h.list(c, models.PastStatuses)
}
