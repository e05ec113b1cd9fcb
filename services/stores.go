package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sessionmarket/backend/models"
)

// SessionStore persists Session records.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	ListPublished(ctx context.Context) ([]models.Session, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Session, error)
}

// BookingStore persists Booking records. Mutations of existing bookings go
// through the UpdateLocked variants, which run the apply callback inside a
// transaction holding a row lock on the booking so that confirm, cancel,
// webhook, and poll-confirm writers serialize per booking.
type BookingStore interface {
	// CreateForSession locks the session row, invokes build with the locked
	// session, and persists the returned booking in the same transaction. The
	// price read and the insert are a single atomic unit.
	CreateForSession(ctx context.Context, sessionID uuid.UUID, build func(session *models.Session) (*models.Booking, error)) (*models.Booking, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)

	UpdateLocked(ctx context.Context, id uuid.UUID, apply func(booking *models.Booking) error) (*models.Booking, error)
	UpdateLockedByIntent(ctx context.Context, intentID string, apply func(booking *models.Booking) error) (*models.Booking, error)

	ListByUser(ctx context.Context, userID uuid.UUID, statuses []string) ([]models.Booking, error)
	ListVisibleToCreator(ctx context.Context, creatorID uuid.UUID, statuses []string) ([]models.Booking, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]models.Booking, error)
}

// RateLimiter enforces a per-actor request budget for an operation scope.
type RateLimiter interface {
	Allow(ctx context.Context, key string) error
}
