// models/subscription.go - Subscription tiers
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionPlan is the tier a subscription can be on.
type SubscriptionPlan string

const (
	PlanFree   SubscriptionPlan = "FREE"
	PlanPlus   SubscriptionPlan = "PLUS"
	PlanFamily SubscriptionPlan = "FAMILY"
)

// Subscription is a user's premium plan. Every user gets a FREE row at
// registration; upgrades flip the plan type.
type Subscription struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	PlanType  SubscriptionPlan `gorm:"size:20;default:'FREE'" json:"plan_type"`
	IsActive  bool             `gorm:"default:true" json:"is_active"`
	StartDate time.Time        `json:"start_date"`
	EndDate   *time.Time       `json:"end_date,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IsPro reports whether this subscription grants Pro benefits.
func (s *Subscription) IsPro() bool {
	return s.IsActive && (s.PlanType == PlanPlus || s.PlanType == PlanFamily)
}

func (Subscription) TableName() string {
	return "user_subscriptions"
}
