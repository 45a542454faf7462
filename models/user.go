// models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Username     string    `gorm:"uniqueIndex;not null;size:50" json:"username"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"`
	AvatarURL    string    `gorm:"size:500" json:"avatar_url,omitempty"`

	// Gamification
	TotalXP          int        `gorm:"default:0" json:"total_xp"`
	CurrentStreak    int        `gorm:"default:0" json:"current_streak"`
	LongestStreak    int        `gorm:"default:0" json:"longest_streak"`
	LastActivityDate *time.Time `gorm:"type:date" json:"last_activity_date,omitempty"`

	// Hearts/Lives system
	Hearts          int        `gorm:"default:5" json:"hearts"`
	HeartsUpdatedAt *time.Time `json:"hearts_updated_at,omitempty"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Subscription *Subscription       `gorm:"foreignKey:UserID" json:"subscription,omitempty"`
	Progress     []ChallengeProgress `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsPro reports whether the user holds an active paid subscription.
// Pro users never lose hearts and are never heart-gated.
func (u *User) IsPro() bool {
	return u.Subscription != nil && u.Subscription.IsPro()
}
