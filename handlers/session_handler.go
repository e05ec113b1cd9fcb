package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sessionmarket/backend/middleware"
	"github.com/sessionmarket/backend/services"
	"github.com/shopspring/decimal"
)

type SessionHandler struct {
	catalog  *services.CatalogService
	bookings *services.BookingService
}

func NewSessionHandler(catalog *services.CatalogService, bookings *services.BookingService) *SessionHandler {
	return &SessionHandler{catalog: catalog, bookings: bookings}
}

type SessionRequest struct {
	Title           string          `json:"title" validate:"required"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,min=1"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency" validate:"omitempty,len=3"`
	MaxAttendees    int             `json:"max_attendees" validate:"omitempty,min=1"`
	Location        string          `json:"location"`
	SessionType     string          `json:"session_type"`
	ImageURL        *string         `json:"image_url,omitempty"`
	ThumbnailURL    *string         `json:"thumbnail_url,omitempty"`
	Status          string          `json:"status" validate:"omitempty,oneof=draft published cancelled"`
}

func (r SessionRequest) toInput() services.SessionInput {
	if r.Currency == "" {
		r.Currency = "USD"
	}
	if r.MaxAttendees == 0 {
		r.MaxAttendees = 1
	}
	if r.SessionType == "" {
		r.SessionType = "online"
	}
	if r.Status == "" {
		r.Status = "draft"
	}
	return services.SessionInput{
		Title:           r.Title,
		Description:     r.Description,
		Category:        r.Category,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		Currency:        r.Currency,
		MaxAttendees:    r.MaxAttendees,
		Location:        r.Location,
		SessionType:     r.SessionType,
		ImageURL:        r.ImageURL,
		ThumbnailURL:    r.ThumbnailURL,
		Status:          r.Status,
	}
}

func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var req SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session, err := h.catalog.Create(c.UserContext(), middleware.ActorID(c), middleware.ActorRole(c), req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

func (h *SessionHandler) Update(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	var req SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session, err := h.catalog.Update(c.UserContext(), middleware.ActorID(c), sessionID, req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	if err := h.catalog.Delete(c.UserContext(), middleware.ActorID(c), sessionID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List is the public catalog: published sessions only.
func (h *SessionHandler) List(c *fiber.Ctx) error {
	sessions, err := h.catalog.ListPublished(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sessions)
}

func (h *SessionHandler) Get(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	session, err := h.catalog.Get(c.UserContext(), middleware.OptionalActorID(c), sessionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

func (h *SessionHandler) MySessions(c *fiber.Ctx) error {
	sessions, err := h.catalog.ListMine(c.UserContext(), middleware.ActorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sessions)
}

// Bookings lists every booking made against one of the creator's sessions.
func (h *SessionHandler) Bookings(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID"})
	}

	bookings, err := h.bookings.ListForSession(c.UserContext(), middleware.ActorID(c), sessionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bookings)
}
