package models

import (
	"time"
)

// VerificationToken is a single-use email verification token.
type VerificationToken struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Token     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
