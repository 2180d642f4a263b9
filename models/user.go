package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an identity record created on first successful Google login.
type User struct {
	ID               string    `gorm:"type:varchar(36);primaryKey"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name             string    `gorm:"type:varchar(255);not null"`
	AvatarURL        string    `gorm:"type:varchar(500)"`
	OAuthProvider    string    `gorm:"column:oauth_provider;type:varchar(50);default:google;uniqueIndex:idx_users_provider_oauth_id"`
	OAuthID          string    `gorm:"column:oauth_id;type:varchar(255);not null;uniqueIndex:idx_users_provider_oauth_id"`
	StripeCustomerID string    `gorm:"type:varchar(255)"`
	Plan             string    `gorm:"type:varchar(50);default:free"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Workflows     []Workflow     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
