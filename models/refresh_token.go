package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshToken is the persisted half of a refresh credential. The JWT proves
// authenticity on its own; this row exists so the token can be revoked before
// its natural expiry.
type RefreshToken struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	UserID    string    `gorm:"type:varchar(36);index;not null"`
	Token     string    `gorm:"type:varchar(500);uniqueIndex;not null"`
	Revoked   bool      `gorm:"default:false;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
