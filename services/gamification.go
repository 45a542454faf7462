// services/gamification.go - Gamification Business Logic
//
// Single source of truth for game mechanics: heart regeneration and
// deduction, day-granularity streaks, and XP accrual. The state math
// mutates the User aggregate in memory only; persistence happens in the
// callers that own the transaction.
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pylingo/models"
)

// Sentinel errors surfaced to the HTTP layer.
var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrNoHearts          = errors.New("no hearts remaining")
)

// GamificationConfig carries the heart-system tunables. Constructed
// explicitly and passed in; there is no ambient global state.
type GamificationConfig struct {
	MaxHearts       int
	HeartRegenHours float64
}

// DefaultGamificationConfig returns the stock rules: 5 hearts, one heart
// back every 5 hours.
func DefaultGamificationConfig() GamificationConfig {
	return GamificationConfig{MaxHearts: 5, HeartRegenHours: 5}
}

type GamificationService struct {
	db  *gorm.DB
	cfg GamificationConfig
	now func() time.Time
}

func NewGamificationService(db *gorm.DB, cfg GamificationConfig) *GamificationService {
	return &GamificationService{
		db:  db,
		cfg: cfg,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// RegenerateHearts applies time-based heart regeneration and returns the
// number of hearts actually granted.
//
// An unset baseline is initialized to now without granting anything. When
// hearts are granted the baseline resets to now even if the grant was
// capped; fractional progress past the cap is discarded, not carried.
func (s *GamificationService) RegenerateHearts(user *models.User, now time.Time) int {
	if user.Hearts >= s.cfg.MaxHearts {
		return 0
	}

	if user.HeartsUpdatedAt == nil {
		user.HeartsUpdatedAt = &now
		return 0
	}

	hoursPassed := now.Sub(*user.HeartsUpdatedAt).Hours()
	heartsToRegen := int(hoursPassed / s.cfg.HeartRegenHours)
	if heartsToRegen <= 0 {
		return 0
	}

	newHearts := user.Hearts + heartsToRegen
	if newHearts > s.cfg.MaxHearts {
		newHearts = s.cfg.MaxHearts
	}
	regenerated := newHearts - user.Hearts
	user.Hearts = newHearts
	user.HeartsUpdatedAt = &now
	return regenerated
}

// CanAttempt reports whether the user may attempt a challenge: Pro users
// always can, everyone else needs at least one heart.
func (s *GamificationService) CanAttempt(user *models.User) bool {
	return user.IsPro() || user.Hearts > 0
}

// DeductHeart removes one heart if available and returns whether a heart
// was actually deducted. Pro users are exempt. The regeneration baseline is
// deliberately left alone so accrued regen progress survives the deduction.
func (s *GamificationService) DeductHeart(user *models.User) bool {
	if user.IsPro() {
		return false
	}
	if user.Hearts > 0 {
		user.Hearts--
		return true
	}
	return false
}

// UpdateStreak advances the streak for activity on the given day and
// returns whether anything changed (the UI uses this to trigger the streak
// animation).
//
// Same-day activity is a no-op. Activity the day after the last one extends
// the streak; anything older resets it to 1. The reset branch does not
// touch LongestStreak.
func (s *GamificationService) UpdateStreak(user *models.User, today time.Time) bool {
	today = dateOnly(today)

	if user.LastActivityDate != nil && sameDay(*user.LastActivityDate, today) {
		return false
	}

	if user.LastActivityDate != nil && sameDay(*user.LastActivityDate, today.AddDate(0, 0, -1)) {
		user.CurrentStreak++
		if user.CurrentStreak > user.LongestStreak {
			user.LongestStreak = user.CurrentStreak
		}
	} else {
		user.CurrentStreak = 1
	}

	user.LastActivityDate = &today
	return true
}

// AddXP adds XP to the user's lifetime total. No ceiling.
func (s *GamificationService) AddXP(user *models.User, amount int) {
	user.TotalXP += amount
}

// Streak display states.
const (
	StreakActiveToday    = "ACTIVE_TODAY"    // completed activity today
	StreakActiveContinue = "ACTIVE_CONTINUE" // streak intact, activity still needed today
	StreakBroken         = "BROKEN"          // streak lost
)

// StreakStatus classifies the streak for display without mutating anything.
func (s *GamificationService) StreakStatus(user *models.User, today time.Time) string {
	today = dateOnly(today)

	switch {
	case user.LastActivityDate != nil && sameDay(*user.LastActivityDate, today):
		return StreakActiveToday
	case user.LastActivityDate != nil && sameDay(*user.LastActivityDate, today.AddDate(0, 0, -1)):
		return StreakActiveContinue
	default:
		return StreakBroken
	}
}

// UserStats is the gamification read-model for a single user.
type UserStats struct {
	TotalXP          int        `json:"total_xp"`
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	Hearts           int        `json:"hearts"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
	IsPro            bool       `json:"is_pro"`
}

// Stats loads a user's gamification stats, running (and persisting) a
// regeneration pass first so the heart count is current.
func (s *GamificationService) Stats(userID uuid.UUID) (*UserStats, error) {
	var user models.User
	if err := s.db.Preload("Subscription").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.RegenerateHearts(&user, s.now())
	if err := s.persistHearts(s.db, &user); err != nil {
		return nil, err
	}

	return &UserStats{
		TotalXP:          user.TotalXP,
		CurrentStreak:    user.CurrentStreak,
		LongestStreak:    user.LongestStreak,
		Hearts:           user.Hearts,
		LastActivityDate: user.LastActivityDate,
		IsPro:            user.IsPro(),
	}, nil
}

// RegenerateAndSave runs a regeneration pass for the given user and
// persists the result. Used on login so returning users come back to
// refilled hearts.
func (s *GamificationService) RegenerateAndSave(user *models.User) error {
	s.RegenerateHearts(user, s.now())
	return s.persistHearts(s.db, user)
}

func (s *GamificationService) persistHearts(tx *gorm.DB, user *models.User) error {
	return tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"hearts":            user.Hearts,
		"hearts_updated_at": user.HeartsUpdatedAt,
	}).Error
}

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return dateOnly(a).Equal(dateOnly(b))
}
