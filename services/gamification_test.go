package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pylingo/models"
)

func newTestService() *GamificationService {
	// The heart/streak/XP math never touches the database.
	return NewGamificationService(nil, DefaultGamificationConfig())
}

func timePtr(t time.Time) *time.Time { return &t }

func proUser(hearts int) *models.User {
	return &models.User{
		Hearts: hearts,
		Subscription: &models.Subscription{
			PlanType: models.PlanPlus,
			IsActive: true,
		},
	}
}

func TestRegenerateHearts(t *testing.T) {
	svc := newTestService()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("regenerates one heart per five hours", func(t *testing.T) {
		user := &models.User{Hearts: 2, HeartsUpdatedAt: timePtr(now.Add(-11 * time.Hour))}

		gained := svc.RegenerateHearts(user, now)

		assert.Equal(t, 2, gained)
		assert.Equal(t, 4, user.Hearts)
		assert.Equal(t, now, *user.HeartsUpdatedAt)
	})

	t.Run("caps at max hearts", func(t *testing.T) {
		user := &models.User{Hearts: 4, HeartsUpdatedAt: timePtr(now.Add(-6 * time.Hour))}

		gained := svc.RegenerateHearts(user, now)

		assert.Equal(t, 1, gained)
		assert.Equal(t, 5, user.Hearts)
	})

	t.Run("cap discards overflow", func(t *testing.T) {
		user := &models.User{Hearts: 4, HeartsUpdatedAt: timePtr(now.Add(-48 * time.Hour))}

		gained := svc.RegenerateHearts(user, now)

		assert.Equal(t, 1, gained)
		assert.Equal(t, 5, user.Hearts)
		assert.Equal(t, now, *user.HeartsUpdatedAt)
	})

	t.Run("full hearts is a no-op and keeps the baseline", func(t *testing.T) {
		baseline := timePtr(now.Add(-100 * time.Hour))
		user := &models.User{Hearts: 5, HeartsUpdatedAt: baseline}

		gained := svc.RegenerateHearts(user, now)

		assert.Equal(t, 0, gained)
		assert.Equal(t, 5, user.Hearts)
		assert.Equal(t, baseline, user.HeartsUpdatedAt)
	})

	t.Run("unset baseline initializes without granting", func(t *testing.T) {
		user := &models.User{Hearts: 2}

		gained := svc.RegenerateHearts(user, now)

		assert.Equal(t, 0, gained)
		assert.Equal(t, 2, user.Hearts)
		assert.Equal(t, now, *user.HeartsUpdatedAt)
	})

	t.Run("under one period grants nothing", func(t *testing.T) {
		baseline := timePtr(now.Add(-4 * time.Hour))
		user := &models.User{Hearts: 2, HeartsUpdatedAt: baseline}

		gained := svc.RegenerateHearts(user, now)

		assert.Equal(t, 0, gained)
		assert.Equal(t, 2, user.Hearts)
		assert.Equal(t, baseline, user.HeartsUpdatedAt)
	})
}

func TestDeductHeart(t *testing.T) {
	svc := newTestService()

	t.Run("deducts when hearts remain", func(t *testing.T) {
		baseline := timePtr(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
		user := &models.User{Hearts: 3, HeartsUpdatedAt: baseline}

		assert.True(t, svc.DeductHeart(user))
		assert.Equal(t, 2, user.Hearts)
		// Deduction never resets the regeneration clock
		assert.Equal(t, baseline, user.HeartsUpdatedAt)
	})

	t.Run("no deduction at zero", func(t *testing.T) {
		user := &models.User{Hearts: 0}

		assert.False(t, svc.DeductHeart(user))
		assert.Equal(t, 0, user.Hearts)
	})

	t.Run("pro users are exempt", func(t *testing.T) {
		user := proUser(3)

		assert.False(t, svc.DeductHeart(user))
		assert.Equal(t, 3, user.Hearts)
	})
}

func TestCanAttempt(t *testing.T) {
	svc := newTestService()

	assert.True(t, svc.CanAttempt(&models.User{Hearts: 1}))
	assert.False(t, svc.CanAttempt(&models.User{Hearts: 0}))
	assert.True(t, svc.CanAttempt(proUser(0)))

	t.Run("inactive plus subscription is not pro", func(t *testing.T) {
		user := &models.User{
			Hearts:       0,
			Subscription: &models.Subscription{PlanType: models.PlanPlus, IsActive: false},
		}
		assert.False(t, svc.CanAttempt(user))
	})

	t.Run("active free subscription is not pro", func(t *testing.T) {
		user := &models.User{
			Hearts:       0,
			Subscription: &models.Subscription{PlanType: models.PlanFree, IsActive: true},
		}
		assert.False(t, svc.CanAttempt(user))
	})
}

func TestUpdateStreak(t *testing.T) {
	svc := newTestService()
	today := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	t.Run("continues from yesterday", func(t *testing.T) {
		user := &models.User{CurrentStreak: 3, LongestStreak: 5, LastActivityDate: timePtr(yesterday)}

		assert.True(t, svc.UpdateStreak(user, today))
		assert.Equal(t, 4, user.CurrentStreak)
		assert.Equal(t, 5, user.LongestStreak)
	})

	t.Run("raises longest streak on a new record", func(t *testing.T) {
		user := &models.User{CurrentStreak: 5, LongestStreak: 5, LastActivityDate: timePtr(yesterday)}

		assert.True(t, svc.UpdateStreak(user, today))
		assert.Equal(t, 6, user.CurrentStreak)
		assert.Equal(t, 6, user.LongestStreak)
	})

	t.Run("same day is a no-op", func(t *testing.T) {
		user := &models.User{CurrentStreak: 3, LongestStreak: 5, LastActivityDate: timePtr(today)}

		assert.False(t, svc.UpdateStreak(user, today))
		assert.Equal(t, 3, user.CurrentStreak)
	})

	t.Run("gap resets to one without touching longest", func(t *testing.T) {
		user := &models.User{CurrentStreak: 3, LongestStreak: 5, LastActivityDate: timePtr(today.AddDate(0, 0, -5))}

		assert.True(t, svc.UpdateStreak(user, today))
		assert.Equal(t, 1, user.CurrentStreak)
		assert.Equal(t, 5, user.LongestStreak)
	})

	t.Run("first ever activity starts at one", func(t *testing.T) {
		user := &models.User{}

		assert.True(t, svc.UpdateStreak(user, today))
		assert.Equal(t, 1, user.CurrentStreak)
		assert.Equal(t, dateOnly(today), *user.LastActivityDate)
	})
}

func TestStreakStatus(t *testing.T) {
	svc := newTestService()
	today := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, StreakActiveToday, svc.StreakStatus(&models.User{LastActivityDate: timePtr(today)}, today))
	assert.Equal(t, StreakActiveContinue, svc.StreakStatus(&models.User{LastActivityDate: timePtr(today.AddDate(0, 0, -1))}, today))
	assert.Equal(t, StreakBroken, svc.StreakStatus(&models.User{LastActivityDate: timePtr(today.AddDate(0, 0, -2))}, today))
	assert.Equal(t, StreakBroken, svc.StreakStatus(&models.User{}, today))
}

func TestAddXP(t *testing.T) {
	svc := newTestService()
	user := &models.User{TotalXP: 90}

	svc.AddXP(user, 10)
	assert.Equal(t, 100, user.TotalXP)
}
