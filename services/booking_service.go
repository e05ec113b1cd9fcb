package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sessionmarket/backend/models"
	"github.com/shopspring/decimal"
)

type CreateBookingInput struct {
	SessionID      uuid.UUID
	BookingDate    time.Time
	AttendeesCount int
	Notes          string
}

type BookingService struct {
	sessions SessionStore
	bookings BookingStore
	limiter  RateLimiter
}

func NewBookingService(sessions SessionStore, bookings BookingStore, limiter RateLimiter) *BookingService {
	return &BookingService{
		sessions: sessions,
		bookings: bookings,
		limiter:  limiter,
	}
}

// Create validates the request against the session and persists a pending
// booking. The session row is locked for the whole read-compute-persist unit,
// so the snapshot taken into TotalPrice cannot interleave with a concurrent
// price edit. TotalPrice is never recomputed afterwards.
func (s *BookingService) Create(ctx context.Context, userID uuid.UUID, in CreateBookingInput) (*models.Booking, error) {
	if err := s.limiter.Allow(ctx, userID.String()); err != nil {
		return nil, err
	}

	booking, err := s.bookings.CreateForSession(ctx, in.SessionID, func(session *models.Session) (*models.Booking, error) {
		if !session.IsAvailable() {
			return nil, NewValidationError("this session is not available for booking")
		}
		if in.AttendeesCount < 1 {
			return nil, NewValidationError("attendees_count must be a positive integer")
		}
		if in.AttendeesCount > session.MaxAttendees {
			return nil, NewValidationError("attendees_count exceeds the maximum of %d for this session", session.MaxAttendees)
		}

		total := session.Price.Mul(decimal.NewFromInt(int64(in.AttendeesCount)))

		return &models.Booking{
			UserID:         userID,
			SessionID:      session.ID,
			BookingDate:    in.BookingDate,
			AttendeesCount: in.AttendeesCount,
			TotalPrice:     total,
			Status:         models.BookingStatusPending,
			PaymentStatus:  models.PaymentStatusPending,
			UserNotes:      in.Notes,
		}, nil
	})
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, NewValidationError("this session is not available for booking")
		}
		return nil, err
	}

	return booking, nil
}

// Confirm moves a booking to confirmed. Only the session's creator may do
// this; the booking's own user is refused.
func (s *BookingService) Confirm(ctx context.Context, actorID, bookingID uuid.UUID) (*models.Booking, error) {
	return s.bookings.UpdateLocked(ctx, bookingID, func(b *models.Booking) error {
		if b.Session.CreatorID != actorID {
			return NewPermissionError("only the session creator can confirm bookings")
		}
		b.Status = models.BookingStatusConfirmed
		return nil
	})
}

// Cancel moves a booking to cancelled. Permitted for the booking's user and
// the session's creator. Payment status is left untouched; refunds are a
// separate, manual concern.
func (s *BookingService) Cancel(ctx context.Context, actorID, bookingID uuid.UUID) (*models.Booking, error) {
	return s.bookings.UpdateLocked(ctx, bookingID, func(b *models.Booking) error {
		if b.UserID != actorID && b.Session.CreatorID != actorID {
			return NewPermissionError("you do not have permission to cancel this booking")
		}
		b.Status = models.BookingStatusCancelled
		return nil
	})
}

func (s *BookingService) Get(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actorID && booking.Session.CreatorID != actorID {
		return nil, NewNotFoundError("booking")
	}
	return booking, nil
}

// ListForActor returns bookings visible to the actor, optionally filtered by
// status. Users see their own bookings; creators additionally see bookings
// made against their sessions.
func (s *BookingService) ListForActor(ctx context.Context, actorID uuid.UUID, role string, statuses []string) ([]models.Booking, error) {
	if role == models.RoleCreator {
		return s.bookings.ListVisibleToCreator(ctx, actorID, statuses)
	}
	return s.bookings.ListByUser(ctx, actorID, statuses)
}

// ListOwn ignores the creator visibility rule and returns only bookings the
// actor made themselves.
func (s *BookingService) ListOwn(ctx context.Context, actorID uuid.UUID, statuses []string) ([]models.Booking, error) {
	return s.bookings.ListByUser(ctx, actorID, statuses)
}

// ListForSession returns every booking against a session, for its creator.
func (s *BookingService) ListForSession(ctx context.Context, actorID, sessionID uuid.UUID) ([]models.Booking, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CreatorID != actorID {
		return nil, NewPermissionError("you do not have permission to view bookings for this session")
	}
	return s.bookings.ListBySession(ctx, sessionID)
}
