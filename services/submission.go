// services/submission.go - Challenge submission workflow
package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pylingo/models"
)

// Demo values returned to anonymous submitters. Nothing is persisted on
// that path.
const (
	demoXPEarned = 3
	demoHearts   = 5
)

// SubmissionResult is returned for every submission that passes the heart
// gate. A wrong answer is a normal result, never an error.
type SubmissionResult struct {
	IsCorrect       bool   `json:"is_correct"`
	CorrectAnswer   string `json:"correct_answer"`
	XPEarned        int    `json:"xp_earned"`
	HeartsRemaining int    `json:"hearts_remaining"`
	HeartsDeducted  bool   `json:"hearts_deducted"`
	StreakUpdated   bool   `json:"streak_updated"`
	CurrentStreak   int    `json:"current_streak"`
	Message         string `json:"message"`
}

// SubmitChallenge validates an answer and applies the full gamification
// workflow: regenerate hearts, gate on heart availability, short-circuit on
// an already-completed challenge, then either award XP and advance the
// streak (correct) or deduct a heart and record the attempt (wrong).
//
// userID == nil is the anonymous demo path: validate the answer against the
// challenge and return fixed demo values without touching any user state.
func (s *GamificationService) SubmitChallenge(userID *uuid.UUID, challengeID uuid.UUID, rawAnswer string) (*SubmissionResult, error) {
	var challenge models.Challenge
	if err := s.db.Preload("Lesson.Challenges").First(&challenge, "id = ?", challengeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}

	// Case-insensitive, whitespace-trimmed comparison
	isCorrect := normalizeAnswer(rawAnswer) == normalizeAnswer(challenge.CorrectAnswer)

	if userID == nil {
		return anonymousResult(&challenge, isCorrect), nil
	}

	var user models.User
	if err := s.db.Preload("Subscription").First(&user, "id = ?", *userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := s.now()

	// Regeneration is unconditional: it persists even when the heart gate
	// rejects the attempt below.
	s.RegenerateHearts(&user, now)
	if err := s.persistHearts(s.db, &user); err != nil {
		return nil, err
	}

	if !s.CanAttempt(&user) {
		return nil, ErrNoHearts
	}

	// Idempotency: a completed challenge never awards twice.
	var progress models.ChallengeProgress
	hasProgress := true
	if err := s.db.Where("user_id = ? AND challenge_id = ?", user.ID, challenge.ID).First(&progress).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		hasProgress = false
	}

	if hasProgress && progress.Completed {
		return &SubmissionResult{
			IsCorrect:       true,
			CorrectAnswer:   challenge.CorrectAnswer,
			HeartsRemaining: user.Hearts,
			CurrentStreak:   user.CurrentStreak,
			Message:         "Already completed!",
		}, nil
	}

	if isCorrect {
		return s.applyCorrect(&user, &challenge, &progress, hasProgress, now)
	}
	return s.applyWrong(&user, &challenge, hasProgress)
}

func (s *GamificationService) applyCorrect(user *models.User, challenge *models.Challenge, progress *models.ChallengeProgress, hasProgress bool, now time.Time) (*SubmissionResult, error) {
	xp := xpPerChallenge(challenge.Lesson)
	streakUpdated := s.UpdateStreak(user, now)
	s.AddXP(user, xp)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"total_xp":           user.TotalXP,
			"current_streak":     user.CurrentStreak,
			"longest_streak":     user.LongestStreak,
			"last_activity_date": user.LastActivityDate,
		}).Error; err != nil {
			return err
		}

		if hasProgress {
			return tx.Model(progress).Updates(map[string]interface{}{
				"completed":    true,
				"completed_at": now,
			}).Error
		}

		record := models.ChallengeProgress{
			UserID:      user.ID,
			ChallengeID: challenge.ID,
			Completed:   true,
			CompletedAt: &now,
		}
		if err := tx.Create(&record).Error; err != nil {
			// Concurrent insert for the same (user, challenge): the unique
			// constraint keeps the first writer's row, ignore ours.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SubmissionResult{
		IsCorrect:       true,
		CorrectAnswer:   challenge.CorrectAnswer,
		XPEarned:        xp,
		HeartsRemaining: user.Hearts,
		StreakUpdated:   streakUpdated,
		CurrentStreak:   user.CurrentStreak,
		Message:         "Correct! 🎉",
	}, nil
}

func (s *GamificationService) applyWrong(user *models.User, challenge *models.Challenge, hasProgress bool) (*SubmissionResult, error) {
	deducted := s.DeductHeart(user)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if deducted {
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
				Update("hearts", user.Hearts).Error; err != nil {
				return err
			}
		}

		// Record the attempt once; repeated wrong answers before the first
		// success neither re-insert nor update the row.
		if !hasProgress {
			record := models.ChallengeProgress{
				UserID:      user.ID,
				ChallengeID: challenge.ID,
				Completed:   false,
			}
			if err := tx.Create(&record).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return nil
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SubmissionResult{
		IsCorrect:       false,
		CorrectAnswer:   challenge.CorrectAnswer,
		HeartsRemaining: user.Hearts,
		HeartsDeducted:  deducted,
		CurrentStreak:   user.CurrentStreak,
		Message:         "Not quite. The correct answer is shown above.",
	}, nil
}

func anonymousResult(challenge *models.Challenge, isCorrect bool) *SubmissionResult {
	result := &SubmissionResult{
		IsCorrect:       isCorrect,
		CorrectAnswer:   challenge.CorrectAnswer,
		HeartsRemaining: demoHearts,
		HeartsDeducted:  !isCorrect,
		StreakUpdated:   isCorrect,
		Message:         "Not quite. Try again!",
	}
	if isCorrect {
		result.XPEarned = demoXPEarned
		result.CurrentStreak = 1
		result.Message = "Correct! 🎉"
	}
	return result
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// xpPerChallenge splits the lesson's XP reward evenly across its
// challenges, integer floor division.
func xpPerChallenge(lesson *models.Lesson) int {
	if lesson == nil {
		return 0
	}
	total := len(lesson.Challenges)
	if total < 1 {
		total = 1
	}
	return lesson.XPReward / total
}
