// models/challenge.go - Challenges and per-user completion records
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ChallengeType enumerates the supported quiz formats.
type ChallengeType string

const (
	ChallengeSelect    ChallengeType = "SELECT"     // multiple choice
	ChallengeAssist    ChallengeType = "ASSIST"     // fill in the blank with hints
	ChallengeMatch     ChallengeType = "MATCH"      // match pairs
	ChallengeFillBlank ChallengeType = "FILL_BLANK" // type the answer
)

// Challenge is a single quiz question within a lesson. Options is stored as
// JSON because its shape depends on the challenge type. CorrectAnswer is
// never serialized to clients; validation happens server-side.
type Challenge struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"lesson_id"`
	Type          ChallengeType  `gorm:"not null;size:20" json:"type"`
	Question      string         `gorm:"not null;type:text" json:"question"`
	Options       datatypes.JSON `gorm:"not null" json:"options"`
	CorrectAnswer string         `gorm:"not null;size:500" json:"-"`
	OrderIndex    int            `gorm:"default:0;index" json:"order_index"`
	CreatedAt     time.Time      `json:"created_at"`

	Lesson *Lesson `gorm:"foreignKey:LessonID" json:"lesson,omitempty"`
}

func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ChallengeProgress records that a user has attempted (and eventually
// completed) a specific challenge. One row per (user, challenge); Completed
// flips to true exactly once and never reverts.
type ChallengeProgress struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_challenge" json:"user_id"`
	ChallengeID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_challenge" json:"challenge_id"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (p *ChallengeProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (ChallengeProgress) TableName() string {
	return "challenge_progress"
}
