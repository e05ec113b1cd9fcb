package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sessionmarket/backend/services"
)

// respondError translates the service error taxonomy to HTTP. Anything not in
// the taxonomy is a 500 with the detail kept in the logs.
func respondError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Message})
	}

	var perr *services.PermissionError
	if errors.As(err, &perr) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": perr.Message})
	}

	var nf *services.NotFoundError
	if errors.As(err, &nf) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": nf.Error()})
	}

	if errors.Is(err, services.ErrRateLimited) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests, please try again later"})
	}

	var ext *services.ExternalServiceError
	if errors.As(err, &ext) {
		log.Printf("🔥 external service failure: %v", ext)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment could not be processed, please try again."})
	}

	log.Printf("🔥 unhandled error: %v | Path: %s", err, c.Path())
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}
