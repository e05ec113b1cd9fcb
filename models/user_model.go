package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser    = "user"
	RoleCreator = "creator"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password string    `gorm:"size:255;not null" json:"-"`
	Role     string    `gorm:"size:10;not null;default:'user'" json:"role"`

	Avatar *string `gorm:"size:255" json:"avatar,omitempty"`
	Bio    *string `gorm:"type:text" json:"bio,omitempty"`
	Phone  *string `gorm:"size:20" json:"phone,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
