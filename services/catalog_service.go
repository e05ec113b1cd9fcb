package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sessionmarket/backend/models"
	"github.com/shopspring/decimal"
)

type SessionInput struct {
	Title           string
	Description     string
	Category        string
	DurationMinutes int
	Price           decimal.Decimal
	Currency        string
	MaxAttendees    int
	Location        string
	SessionType     string
	ImageURL        *string
	ThumbnailURL    *string
	Status          string
}

// CatalogService owns Session records: creators author and mutate them, the
// public only ever reads published ones.
type CatalogService struct {
	sessions SessionStore
	limiter  RateLimiter
}

func NewCatalogService(sessions SessionStore, limiter RateLimiter) *CatalogService {
	return &CatalogService{sessions: sessions, limiter: limiter}
}

func (s *CatalogService) validate(in SessionInput) error {
	if in.Price.IsNegative() {
		return NewValidationError("price must be non-negative")
	}
	if in.DurationMinutes <= 0 {
		return NewValidationError("duration must be positive")
	}
	if in.MaxAttendees < 1 {
		return NewValidationError("max_attendees must be at least 1")
	}
	switch in.Status {
	case models.SessionStatusDraft, models.SessionStatusPublished, models.SessionStatusCancelled:
	default:
		return NewValidationError("invalid session status %q", in.Status)
	}
	return nil
}

func (s *CatalogService) Create(ctx context.Context, creatorID uuid.UUID, role string, in SessionInput) (*models.Session, error) {
	if role != models.RoleCreator {
		return nil, NewPermissionError("only creators can create sessions")
	}
	if err := s.limiter.Allow(ctx, creatorID.String()); err != nil {
		return nil, err
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	session := &models.Session{
		CreatorID:       creatorID,
		Title:           in.Title,
		Description:     in.Description,
		Category:        in.Category,
		DurationMinutes: in.DurationMinutes,
		Price:           in.Price,
		Currency:        in.Currency,
		MaxAttendees:    in.MaxAttendees,
		Location:        in.Location,
		SessionType:     in.SessionType,
		ImageURL:        in.ImageURL,
		ThumbnailURL:    in.ThumbnailURL,
		Status:          in.Status,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CatalogService) Update(ctx context.Context, actorID, sessionID uuid.UUID, in SessionInput) (*models.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CreatorID != actorID {
		return nil, NewPermissionError("only the session creator can modify this session")
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	session.Title = in.Title
	session.Description = in.Description
	session.Category = in.Category
	session.DurationMinutes = in.DurationMinutes
	session.Price = in.Price
	session.Currency = in.Currency
	session.MaxAttendees = in.MaxAttendees
	session.Location = in.Location
	session.SessionType = in.SessionType
	session.ImageURL = in.ImageURL
	session.ThumbnailURL = in.ThumbnailURL
	session.Status = in.Status

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Delete removes a session; the database cascades dependent bookings.
func (s *CatalogService) Delete(ctx context.Context, actorID, sessionID uuid.UUID) error {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.CreatorID != actorID {
		return NewPermissionError("only the session creator can delete this session")
	}
	return s.sessions.Delete(ctx, sessionID)
}

// Get returns a session. Unpublished sessions are visible only to their
// creator; to anyone else they do not exist.
func (s *CatalogService) Get(ctx context.Context, actorID, sessionID uuid.UUID) (*models.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsAvailable() && session.CreatorID != actorID {
		return nil, NewNotFoundError("session")
	}
	return session, nil
}

func (s *CatalogService) ListPublished(ctx context.Context) ([]models.Session, error) {
	return s.sessions.ListPublished(ctx)
}

func (s *CatalogService) ListMine(ctx context.Context, creatorID uuid.UUID) ([]models.Session, error) {
	return s.sessions.ListByCreator(ctx, creatorID)
}
