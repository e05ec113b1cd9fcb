package services_test

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sessionmarket/backend/models"
	"github.com/sessionmarket/backend/payments"
	"github.com/sessionmarket/backend/services"
)

// memStore is an in-memory stand-in for the gorm repositories. It implements
// both SessionStore and BookingStore, returning copies the way a row read
// would, and refusing to persist when an apply/build callback errors.
type memStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]models.Session
	bookings map[uuid.UUID]models.Booking
}

func newMemStore() *memStore {
	return &memStore{
		sessions: make(map[uuid.UUID]models.Session),
		bookings: make(map[uuid.UUID]models.Booking),
	}
}

func (m *memStore) putSession(s models.Session) models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	m.sessions[s.ID] = s
	return s
}

func (m *memStore) Create(ctx context.Context, session *models.Session) error {
	*session = m.putSession(*session)
	return nil
}

func (m *memStore) Save(ctx context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = *session
	return nil
}

func (m *memStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	for bid, b := range m.bookings {
		if b.SessionID == id {
			delete(m.bookings, bid)
		}
	}
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, services.NewNotFoundError("session")
	}
	return &session, nil
}

func (m *memStore) ListPublished(ctx context.Context) ([]models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Session
	for _, s := range m.sessions {
		if s.Status == models.SessionStatusPublished {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Session
	for _, s := range m.sessions {
		if s.CreatorID == creatorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) CreateForSession(ctx context.Context, sessionID uuid.UUID, build func(session *models.Session) (*models.Booking, error)) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, services.NewNotFoundError("session")
	}

	booking, err := build(&session)
	if err != nil {
		return nil, err
	}
	booking.ID = uuid.New()
	booking.Session = session
	m.bookings[booking.ID] = *booking
	return booking, nil
}

func (m *memStore) getBooking(id uuid.UUID) (models.Booking, bool) {
	b, ok := m.bookings[id]
	if ok {
		b.Session = m.sessions[b.SessionID]
	}
	return b, ok
}

func (m *memStore) bookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.getBooking(id)
	if !ok {
		return nil, services.NewNotFoundError("booking")
	}
	return &booking, nil
}

func (m *memStore) UpdateLocked(ctx context.Context, id uuid.UUID, apply func(booking *models.Booking) error) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.getBooking(id)
	if !ok {
		return nil, services.NewNotFoundError("booking")
	}
	if err := apply(&booking); err != nil {
		return nil, err
	}
	m.bookings[booking.ID] = booking
	return &booking, nil
}

func (m *memStore) UpdateLockedByIntent(ctx context.Context, intentID string, apply func(booking *models.Booking) error) (*models.Booking, error) {
	m.mu.Lock()
	var found *models.Booking
	for id := range m.bookings {
		b, _ := m.getBooking(id)
		if b.PaymentIntentID != nil && *b.PaymentIntentID == intentID {
			found = &b
			break
		}
	}
	m.mu.Unlock()
	if found == nil {
		return nil, services.NewNotFoundError("booking")
	}
	return m.UpdateLocked(ctx, found.ID, apply)
}

func (m *memStore) ListByUser(ctx context.Context, userID uuid.UUID, statuses []string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for id := range m.bookings {
		b, _ := m.getBooking(id)
		if b.UserID == userID && statusMatches(b.Status, statuses) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) ListVisibleToCreator(ctx context.Context, creatorID uuid.UUID, statuses []string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for id := range m.bookings {
		b, _ := m.getBooking(id)
		if (b.UserID == creatorID || b.Session.CreatorID == creatorID) && statusMatches(b.Status, statuses) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for id := range m.bookings {
		b, _ := m.getBooking(id)
		if b.SessionID == sessionID {
			out = append(out, b)
		}
	}
	return out, nil
}

func statusMatches(status string, statuses []string) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

// memStore.GetByID returns sessions, so the booking-store view overrides it.

type sessionStoreFake struct{ *memStore }

type bookingStoreFake struct{ *memStore }

func (f bookingStoreFake) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return f.memStore.bookingByID(ctx, id)
}

// allowAllLimiter satisfies RateLimiter and records its calls.
type allowAllLimiter struct {
	calls []string
}

func (l *allowAllLimiter) Allow(ctx context.Context, key string) error {
	l.calls = append(l.calls, key)
	return nil
}

type denyLimiter struct{}

func (denyLimiter) Allow(ctx context.Context, key string) error {
	return services.ErrRateLimited
}

// fakeProcessor satisfies payments.Processor. createHook, when set, runs
// while CreateIntent is in flight, before it returns.
type fakeProcessor struct {
	intent      *payments.Intent
	createErr   error
	retrieveErr error
	createHook  func()

	createdAmount   int64
	createdCurrency string
	createdMetadata map[string]string
	retrievedID     string

	retrieved map[string]*payments.Intent
}

func (p *fakeProcessor) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*payments.Intent, error) {
	p.createdAmount = amountMinor
	p.createdCurrency = currency
	p.createdMetadata = metadata
	if p.createHook != nil {
		p.createHook()
	}
	if p.createErr != nil {
		return nil, p.createErr
	}
	return p.intent, nil
}

func (p *fakeProcessor) RetrieveIntent(ctx context.Context, intentID string) (*payments.Intent, error) {
	p.retrievedID = intentID
	if p.retrieveErr != nil {
		return nil, p.retrieveErr
	}
	if p.retrieved != nil {
		if intent, ok := p.retrieved[intentID]; ok {
			return intent, nil
		}
	}
	return p.intent, nil
}
