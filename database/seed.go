// database/seed.go - Starter content for an empty database
package database

import (
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pylingo/models"
)

// SeedCourses loads a starter course tree when the database holds no
// courses yet, so a fresh install has something to play with.
func SeedCourses() error {
	db := GetDB()

	var count int64
	if err := db.Model(&models.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("🌱 Seeding starter course...")

	return db.Transaction(func(tx *gorm.DB) error {
		course := models.Course{
			Title:       "Python Fundamentals",
			Description: "Learn Python from zero: syntax, variables, and control flow.",
			OrderIndex:  0,
			IsActive:    true,
		}
		if err := tx.Create(&course).Error; err != nil {
			return err
		}

		unit := models.Unit{
			CourseID:    course.ID,
			Title:       "Variables & Types",
			Description: "Names, values, and the types behind them.",
			OrderIndex:  0,
			Color:       "#58CC02",
		}
		if err := tx.Create(&unit).Error; err != nil {
			return err
		}

		lesson := models.Lesson{
			UnitID:     unit.ID,
			Title:      "Your First Variables",
			OrderIndex: 0,
			XPReward:   12,
		}
		if err := tx.Create(&lesson).Error; err != nil {
			return err
		}

		challenges := []models.Challenge{
			{
				LessonID:      lesson.ID,
				Type:          models.ChallengeSelect,
				Question:      "Which keyword prints text to the screen in Python?",
				Options:       datatypes.JSON(`[{"id":1,"text":"print"},{"id":2,"text":"echo"},{"id":3,"text":"printf"}]`),
				CorrectAnswer: "print",
				OrderIndex:    0,
			},
			{
				LessonID:      lesson.ID,
				Type:          models.ChallengeFillBlank,
				Question:      "Complete the assignment: x ___ 5",
				Options:       datatypes.JSON(`{"sentence":"x ___ 5","blank_index":1}`),
				CorrectAnswer: "=",
				OrderIndex:    1,
			},
			{
				LessonID:      lesson.ID,
				Type:          models.ChallengeSelect,
				Question:      "What is the type of the value 3.14?",
				Options:       datatypes.JSON(`[{"id":1,"text":"int"},{"id":2,"text":"float"},{"id":3,"text":"str"}]`),
				CorrectAnswer: "float",
				OrderIndex:    2,
			},
		}
		for i := range challenges {
			if err := tx.Create(&challenges[i]).Error; err != nil {
				return err
			}
		}

		log.Println("✅ Starter course seeded")
		return nil
	})
}
