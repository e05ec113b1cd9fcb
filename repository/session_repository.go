package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sessionmarket/backend/models"
	"github.com/sessionmarket/backend/services"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *SessionRepository) Save(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Omit("Creator").Save(session).Error
}

// Delete removes the session and cascades to its bookings.
func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Session{}, "id = ?", id).Error
	})
}

func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).Preload("Creator").First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.NewNotFoundError("session")
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) ListPublished(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("status = ?", models.SessionStatusPublished).
		Order("created_at desc").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at desc").
		Find(&sessions).Error
	return sessions, err
}
