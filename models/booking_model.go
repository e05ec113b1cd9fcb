package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// BookingStatuses enumerates every status a booking can hold. Keep in sync
// with ActiveStatuses/PastStatuses: the partition test relies on it.
var BookingStatuses = []string{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

var (
	ActiveStatuses = []string{BookingStatusPending, BookingStatusConfirmed}
	PastStatuses   = []string{BookingStatusCompleted, BookingStatusCancelled}
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_user_status" json:"user_id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_session_status" json:"session_id"`

	BookingDate    time.Time       `gorm:"not null;index" json:"booking_date"`
	AttendeesCount int             `gorm:"not null;default:1" json:"attendees_count"`
	TotalPrice     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`

	Status        string `gorm:"size:20;not null;default:'pending';index:idx_bookings_user_status;index:idx_bookings_session_status" json:"status"`
	PaymentStatus string `gorm:"size:20;not null;default:'pending'" json:"payment_status"`

	PaymentIntentID *string `gorm:"size:255;uniqueIndex" json:"payment_intent_id,omitempty"`
	PaymentMethod   *string `gorm:"size:50" json:"payment_method,omitempty"`

	UserNotes    string `gorm:"type:text" json:"user_notes"`
	CreatorNotes string `gorm:"type:text" json:"creator_notes"`

	User    User    `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Session Session `gorm:"foreignkey:SessionID" json:"session,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive reports whether the booking still occupies attendee slots.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// IsPast reports whether the booking has reached a terminal state.
func (b *Booking) IsPast() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}
