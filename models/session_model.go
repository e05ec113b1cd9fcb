package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	SessionStatusDraft     = "draft"
	SessionStatusPublished = "published"
	SessionStatusCancelled = "cancelled"
)

type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatorID uuid.UUID `gorm:"type:uuid;not null;index:idx_sessions_creator_status" json:"creator_id"`

	Title           string          `gorm:"size:255;not null" json:"title"`
	Description     string          `gorm:"type:text" json:"description"`
	Category        string          `gorm:"size:100" json:"category"`
	DurationMinutes int             `gorm:"not null" json:"duration_minutes"`
	Price           decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Currency        string          `gorm:"size:3;not null;default:'USD'" json:"currency"`

	MaxAttendees int    `gorm:"not null;default:1" json:"max_attendees"`
	Location     string `gorm:"size:255" json:"location"`
	SessionType  string `gorm:"size:50;default:'online'" json:"session_type"`

	ImageURL     *string `gorm:"size:255" json:"image_url,omitempty"`
	ThumbnailURL *string `gorm:"size:255" json:"thumbnail_url,omitempty"`

	Status string `gorm:"size:20;not null;default:'draft';index:idx_sessions_creator_status" json:"status"`

	Creator User `gorm:"foreignkey:CreatorID" json:"creator,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAvailable reports whether the session can currently be booked.
func (s *Session) IsAvailable() bool {
	return s.Status == SessionStatusPublished
}
