package handlers_test

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionmarket/backend/handlers"
	"github.com/sessionmarket/backend/models"
	"github.com/sessionmarket/backend/payments"
	"github.com/sessionmarket/backend/routes"
	"github.com/sessionmarket/backend/services"
)

const testWebhookSecret = "whsec_test"

// webhookBookingStore serves only the intent-keyed update path the webhook
// route exercises.
type webhookBookingStore struct {
	byIntent map[string]*models.Booking
}

func (s *webhookBookingStore) CreateForSession(ctx context.Context, sessionID uuid.UUID, build func(*models.Session) (*models.Booking, error)) (*models.Booking, error) {
	return nil, services.NewNotFoundError("session")
}

func (s *webhookBookingStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return nil, services.NewNotFoundError("booking")
}

func (s *webhookBookingStore) UpdateLocked(ctx context.Context, id uuid.UUID, apply func(*models.Booking) error) (*models.Booking, error) {
	return nil, services.NewNotFoundError("booking")
}

func (s *webhookBookingStore) UpdateLockedByIntent(ctx context.Context, intentID string, apply func(*models.Booking) error) (*models.Booking, error) {
	booking, ok := s.byIntent[intentID]
	if !ok {
		return nil, services.NewNotFoundError("booking")
	}
	if err := apply(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *webhookBookingStore) ListByUser(ctx context.Context, userID uuid.UUID, statuses []string) ([]models.Booking, error) {
	return nil, nil
}

func (s *webhookBookingStore) ListVisibleToCreator(ctx context.Context, creatorID uuid.UUID, statuses []string) ([]models.Booking, error) {
	return nil, nil
}

func (s *webhookBookingStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]models.Booking, error) {
	return nil, nil
}

type stubProcessor struct{}

func (stubProcessor) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*payments.Intent, error) {
	return nil, nil
}

func (stubProcessor) RetrieveIntent(ctx context.Context, intentID string) (*payments.Intent, error) {
	return nil, nil
}

func newWebhookApp(store *webhookBookingStore) *fiber.App {
	svc := services.NewPaymentService(store, stubProcessor{}, services.NopRateLimiter{}, testWebhookSecret)
	app := fiber.New()
	routes.PaymentRoutes(app, handlers.NewPaymentHandler(svc), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusUnauthorized)
	})
	return app
}

func succeededEvent(intentID string) string {
	return fmt.Sprintf(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":%q,"status":"succeeded","payment_method":"card"}}}`, intentID)
}

func TestWebhookRoute_ValidSignatureConfirmsBooking(t *testing.T) {
	booking := &models.Booking{
		ID:            uuid.New(),
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}
	store := &webhookBookingStore{byIntent: map[string]*models.Booking{"pi_123": booking}}
	app := newWebhookApp(store)

	payload := succeededEvent("pi_123")
	ts := time.Now().Unix()
	sig := fmt.Sprintf("t=%d,v1=%s", ts, payments.ComputeSignature(ts, []byte(payload), testWebhookSecret))

	req := httptest.NewRequest("POST", "/api/v1/payment/webhook", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", sig)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, models.PaymentStatusPaid, booking.PaymentStatus)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
}

func TestWebhookRoute_InvalidSignatureRejected(t *testing.T) {
	booking := &models.Booking{
		ID:            uuid.New(),
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}
	store := &webhookBookingStore{byIntent: map[string]*models.Booking{"pi_123": booking}}
	app := newWebhookApp(store)

	payload := succeededEvent("pi_123")
	ts := time.Now().Unix()
	sig := fmt.Sprintf("t=%d,v1=%s", ts, payments.ComputeSignature(ts, []byte(payload), "whsec_wrong"))

	req := httptest.NewRequest("POST", "/api/v1/payment/webhook", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", sig)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Invalid webhook signature")

	assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
}

func TestWebhookRoute_UnknownIntentAcknowledged(t *testing.T) {
	store := &webhookBookingStore{byIntent: map[string]*models.Booking{}}
	app := newWebhookApp(store)

	payload := succeededEvent("pi_unknown")
	ts := time.Now().Unix()
	sig := fmt.Sprintf("t=%d,v1=%s", ts, payments.ComputeSignature(ts, []byte(payload), testWebhookSecret))

	req := httptest.NewRequest("POST", "/api/v1/payment/webhook", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", sig)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
