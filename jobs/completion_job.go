package jobs

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sessionmarket/backend/models"
	"github.com/sessionmarket/backend/services"
)

// CompletionJob sweeps confirmed bookings whose session has already
// finished and marks them completed.
type CompletionJob struct {
	db       *gorm.DB
	bookings services.BookingStore
}

func NewCompletionJob(db *gorm.DB, bookings services.BookingStore) *CompletionJob {
	return &CompletionJob{db: db, bookings: bookings}
}

func (j *CompletionJob) Run() {
	log.Println("Running job: CompleteFinishedBookings...")

	now := time.Now()

	var ids []uuid.UUID
	err := j.db.Model(&models.Booking{}).
		Joins("JOIN sessions ON bookings.session_id = sessions.id").
		Where("bookings.status = ? AND bookings.booking_date + make_interval(mins => sessions.duration_minutes) <= ?",
			models.BookingStatusConfirmed, now).
		Pluck("bookings.id", &ids).Error
	if err != nil {
		log.Printf("Error checking for finished bookings: %v", err)
		return
	}

	if len(ids) == 0 {
		return
	}

	completed := 0
	for _, id := range ids {
		_, err := j.bookings.UpdateLocked(context.Background(), id, func(b *models.Booking) error {
			// Re-check under the row lock; the booking may have been
			// cancelled since the sweep query ran.
			if b.Status != models.BookingStatusConfirmed {
				return nil
			}
			b.Status = models.BookingStatusCompleted
			return nil
		})
		if err != nil {
			log.Printf("Error completing booking %s: %v", id, err)
			continue
		}
		completed++
	}

	log.Printf("Marked %d booking(s) as completed.", completed)
}
