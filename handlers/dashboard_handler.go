package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sessionmarket/backend/middleware"
	"github.com/sessionmarket/backend/models"
	"github.com/sessionmarket/backend/services"
)

type DashboardHandler struct {
	catalog  *services.CatalogService
	bookings *services.BookingService
}

func NewDashboardHandler(catalog *services.CatalogService, bookings *services.BookingService) *DashboardHandler {
	return &DashboardHandler{catalog: catalog, bookings: bookings}
}

func (h *DashboardHandler) UserDashboard(c *fiber.Ctx) error {
	userID := middleware.ActorID(c)

	active, err := h.bookings.ListOwn(c.UserContext(), userID, models.ActiveStatuses)
	if err != nil {
		return respondError(c, err)
	}
	past, err := h.bookings.ListOwn(c.UserContext(), userID, models.PastStatuses)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"active_bookings": active,
		"past_bookings":   past,
		"total_bookings":  len(active) + len(past),
	})
}

func (h *DashboardHandler) CreatorDashboard(c *fiber.Ctx) error {
	creatorID := middleware.ActorID(c)

	sessions, err := h.catalog.ListMine(c.UserContext(), creatorID)
	if err != nil {
		return respondError(c, err)
	}

	visible, err := h.bookings.ListForActor(c.UserContext(), creatorID, models.RoleCreator, nil)
	if err != nil {
		return respondError(c, err)
	}

	// Dashboard counts cover bookings against the creator's sessions, not
	// bookings the creator made elsewhere.
	var forMySessions, pending, confirmed []models.Booking
	for _, b := range visible {
		if b.Session.CreatorID != creatorID {
			continue
		}
		forMySessions = append(forMySessions, b)
		switch b.Status {
		case models.BookingStatusPending:
			pending = append(pending, b)
		case models.BookingStatusConfirmed:
			confirmed = append(confirmed, b)
		}
	}

	published := 0
	for _, s := range sessions {
		if s.IsAvailable() {
			published++
		}
	}

	return c.JSON(fiber.Map{
		"sessions":           sessions,
		"pending_bookings":   pending,
		"confirmed_bookings": confirmed,
		"stats": fiber.Map{
			"total_sessions":     len(sessions),
			"published_sessions": published,
			"total_bookings":     len(forMySessions),
			"pending_bookings":   len(pending),
			"confirmed_bookings": len(confirmed),
		},
	})
}
