// cmd/course-importer - Bulk-import course content JSON into the database
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pylingo/models"
)

// JSON shape of a content file: a list of courses with the full tree
// underneath. Answers live here because the importer runs server-side.
type jsonCourse struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	Units       []jsonUnit `json:"units"`
}

type jsonUnit struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       string       `json:"color"`
	Lessons     []jsonLesson `json:"lessons"`
}

type jsonLesson struct {
	Title      string          `json:"title"`
	XPReward   int             `json:"xp_reward"`
	Challenges []jsonChallenge `json:"challenges"`
}

type jsonChallenge struct {
	Type          string          `json:"type"`
	Question      string          `json:"question"`
	Options       json.RawMessage `json:"options"`
	CorrectAnswer string          `json:"correct_answer"`
}

func main() {
	contentPath := flag.String("content", "./content/courses.json", "path to the course content JSON file")
	sqlitePath := flag.String("sqlite", "./data/pylingo.db", "sqlite file to import into when DATABASE_URL is unset")
	flag.Parse()

	db, err := openDB(*sqlitePath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Course{},
		&models.Unit{},
		&models.Lesson{},
		&models.Challenge{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	data, err := os.ReadFile(*contentPath)
	if err != nil {
		log.Fatal("Failed to read content file:", err)
	}

	var courses []jsonCourse
	if err := json.Unmarshal(data, &courses); err != nil {
		log.Fatal("Failed to parse content JSON:", err)
	}

	fmt.Printf("Found %d courses\n\n", len(courses))

	imported := 0
	for ci, jc := range courses {
		fmt.Printf("Importing: %s\n", jc.Title)

		err := db.Transaction(func(tx *gorm.DB) error {
			course := models.Course{
				Title:       jc.Title,
				Description: jc.Description,
				ImageURL:    jc.ImageURL,
				OrderIndex:  ci,
				IsActive:    true,
			}
			if err := tx.Create(&course).Error; err != nil {
				return err
			}

			for ui, ju := range jc.Units {
				unit := models.Unit{
					CourseID:    course.ID,
					Title:       ju.Title,
					Description: ju.Description,
					OrderIndex:  ui,
				}
				if ju.Color != "" {
					unit.Color = ju.Color
				}
				if err := tx.Create(&unit).Error; err != nil {
					return err
				}

				for li, jl := range ju.Lessons {
					lesson := models.Lesson{
						UnitID:     unit.ID,
						Title:      jl.Title,
						OrderIndex: li,
						XPReward:   jl.XPReward,
					}
					if lesson.XPReward == 0 {
						lesson.XPReward = 10
					}
					if err := tx.Create(&lesson).Error; err != nil {
						return err
					}

					for xi, jx := range jl.Challenges {
						challenge := models.Challenge{
							LessonID:      lesson.ID,
							Type:          models.ChallengeType(jx.Type),
							Question:      jx.Question,
							Options:       datatypes.JSON(jx.Options),
							CorrectAnswer: jx.CorrectAnswer,
							OrderIndex:    xi,
						}
						if err := tx.Create(&challenge).Error; err != nil {
							return err
						}
						imported++
					}
				}
			}
			return nil
		})
		if err != nil {
			log.Fatalf("Failed to import course %q: %v", jc.Title, err)
		}
	}

	fmt.Printf("\nDone. Imported %d challenges across %d courses.\n", imported, len(courses))
}

func openDB(sqlitePath string) (*gorm.DB, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	}
	return gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{TranslateError: true})
}
