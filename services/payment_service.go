package services

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/sessionmarket/backend/models"
	"github.com/sessionmarket/backend/payments"
	"github.com/shopspring/decimal"
)

var minorUnitsPerMajor = decimal.NewFromInt(100)

// PaymentService reconciles booking payment state with the external
// processor: it creates intents, confirms them on client request, and applies
// signed webhook events.
type PaymentService struct {
	bookings      BookingStore
	processor     payments.Processor
	limiter       RateLimiter
	webhookSecret string
}

func NewPaymentService(bookings BookingStore, processor payments.Processor, limiter RateLimiter, webhookSecret string) *PaymentService {
	return &PaymentService{
		bookings:      bookings,
		processor:     processor,
		limiter:       limiter,
		webhookSecret: webhookSecret,
	}
}

// CreateIntent creates a processor intent sized at the booking's frozen total
// and stores the intent id on the booking. A booking another user owns is
// reported as not found. Already-paid bookings are refused so a client cannot
// be double-charged.
func (s *PaymentService) CreateIntent(ctx context.Context, userID, bookingID uuid.UUID) (*payments.Intent, error) {
	if err := s.limiter.Allow(ctx, userID.String()); err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, NewNotFoundError("booking")
	}
	if booking.PaymentStatus == models.PaymentStatusPaid {
		return nil, NewValidationError("booking already paid")
	}

	amountMinor := booking.TotalPrice.Mul(minorUnitsPerMajor).IntPart()
	intent, err := s.processor.CreateIntent(ctx, amountMinor, booking.Session.Currency, map[string]string{
		"booking_id": booking.ID.String(),
		"user_id":    booking.UserID.String(),
		"session_id": booking.SessionID.String(),
	})
	if err != nil {
		return nil, &ExternalServiceError{Service: "payment processor", Err: err}
	}

	// A non-paid booking may re-request an intent; the latest one wins. The
	// paid check is repeated under the row lock because a webhook can mark
	// the booking paid while the processor call is in flight.
	if _, err := s.bookings.UpdateLocked(ctx, booking.ID, func(b *models.Booking) error {
		if b.PaymentStatus == models.PaymentStatusPaid {
			return NewValidationError("booking already paid")
		}
		b.PaymentIntentID = &intent.ID
		return nil
	}); err != nil {
		return nil, err
	}

	return intent, nil
}

// ConfirmPayment is the synchronous poll path: it asks the processor for the
// intent's status and, only if succeeded, marks the matching booking paid and
// confirmed. Anything else leaves the booking untouched.
func (s *PaymentService) ConfirmPayment(ctx context.Context, userID uuid.UUID, intentID string) (*models.Booking, error) {
	if err := s.limiter.Allow(ctx, userID.String()); err != nil {
		return nil, err
	}

	intent, err := s.processor.RetrieveIntent(ctx, intentID)
	if err != nil {
		return nil, &ExternalServiceError{Service: "payment processor", Err: err}
	}
	if intent.Status != payments.IntentStatusSucceeded {
		return nil, NewValidationError("payment not completed")
	}

	return s.bookings.UpdateLockedByIntent(ctx, intentID, func(b *models.Booking) error {
		if b.UserID != userID {
			return NewNotFoundError("booking")
		}
		b.PaymentStatus = models.PaymentStatusPaid
		b.Status = models.BookingStatusConfirmed
		if intent.PaymentMethod != "" {
			method := intent.PaymentMethod
			b.PaymentMethod = &method
		}
		return nil
	})
}

// HandleWebhookEvent verifies and applies a processor notification. A payload
// that fails verification is rejected with no side effects. A verified event
// for an unknown intent is benign: the response must still acknowledge
// receipt so the processor stops retrying.
func (s *PaymentService) HandleWebhookEvent(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := payments.ConstructEvent(payload, sigHeader, s.webhookSecret)
	if err != nil {
		return ErrSignatureVerification
	}

	switch event.Type {
	case payments.EventPaymentSucceeded:
		return s.applyToBooking(ctx, event.Data.Object.ID, func(b *models.Booking) error {
			b.PaymentStatus = models.PaymentStatusPaid
			b.Status = models.BookingStatusConfirmed
			return nil
		})
	case payments.EventPaymentFailed:
		return s.applyToBooking(ctx, event.Data.Object.ID, func(b *models.Booking) error {
			b.PaymentStatus = models.PaymentStatusFailed
			return nil
		})
	default:
		return nil
	}
}

func (s *PaymentService) applyToBooking(ctx context.Context, intentID string, apply func(b *models.Booking) error) error {
	_, err := s.bookings.UpdateLockedByIntent(ctx, intentID, apply)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			log.Printf("webhook: no booking for payment intent %s, ignoring", intentID)
			return nil
		}
		return err
	}
	return nil
}
