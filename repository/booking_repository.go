package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sessionmarket/backend/models"
	"github.com/sessionmarket/backend/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateForSession holds a row lock on the session while build computes the
// booking from it, then inserts the booking in the same transaction. The
// price the booking snapshots cannot change between read and insert.
func (r *BookingRepository) CreateForSession(ctx context.Context, sessionID uuid.UUID, build func(session *models.Session) (*models.Booking, error)) (*models.Booking, error) {
	var booking *models.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return services.NewNotFoundError("session")
			}
			return err
		}

		built, err := build(&session)
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(built).Error; err != nil {
			return err
		}

		built.Session = session
		booking = built
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Session").
		Preload("Session.Creator").
		Preload("User").
		First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.NewNotFoundError("booking")
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) UpdateLocked(ctx context.Context, id uuid.UUID, apply func(booking *models.Booking) error) (*models.Booking, error) {
	return r.updateLocked(ctx, "id = ?", id.String(), apply)
}

func (r *BookingRepository) UpdateLockedByIntent(ctx context.Context, intentID string, apply func(booking *models.Booking) error) (*models.Booking, error) {
	return r.updateLocked(ctx, "payment_intent_id = ?", intentID, apply)
}

// updateLocked serializes writers racing on the same booking: the row is read
// under FOR UPDATE, mutated by apply, and saved before the lock is released.
func (r *BookingRepository) updateLocked(ctx context.Context, query, arg string, apply func(booking *models.Booking) error) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, query, arg).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return services.NewNotFoundError("booking")
			}
			return err
		}
		if err := tx.First(&booking.Session, "id = ?", booking.SessionID).Error; err != nil {
			return err
		}

		if err := apply(&booking); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID, statuses []string) ([]models.Booking, error) {
	tx := r.db.WithContext(ctx).
		Preload("Session").
		Preload("Session.Creator").
		Where("user_id = ?", userID)
	if len(statuses) > 0 {
		tx = tx.Where("status IN ?", statuses)
	}

	var bookings []models.Booking
	err := tx.Order("created_at desc").Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) ListVisibleToCreator(ctx context.Context, creatorID uuid.UUID, statuses []string) ([]models.Booking, error) {
	tx := r.db.WithContext(ctx).
		Preload("Session").
		Preload("Session.Creator").
		Preload("User").
		Joins("JOIN sessions ON sessions.id = bookings.session_id").
		Where("bookings.user_id = ? OR sessions.creator_id = ?", creatorID, creatorID)
	if len(statuses) > 0 {
		tx = tx.Where("bookings.status IN ?", statuses)
	}

	var bookings []models.Booking
	err := tx.Order("bookings.created_at desc").Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("session_id = ?", sessionID).
		Order("created_at desc").
		Find(&bookings).Error
	return bookings, err
}
