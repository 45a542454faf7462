// models/course.go - Course content hierarchy: Course -> Unit -> Lesson
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course is a top-level container (e.g. "Python Fundamentals").
type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null;size:100" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"size:500" json:"image_url,omitempty"`
	OrderIndex  int       `gorm:"default:0;index" json:"order_index"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`

	Units []Unit `gorm:"foreignKey:CourseID" json:"units,omitempty"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Unit groups related lessons inside a course and carries a color for the
// journey map.
type Unit struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Title       string    `gorm:"not null;size:100" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	OrderIndex  int       `gorm:"default:0;index" json:"order_index"`
	Color       string    `gorm:"size:7;default:'#58CC02'" json:"color"`
	CreatedAt   time.Time `json:"created_at"`

	Lessons []Lesson `gorm:"foreignKey:UnitID" json:"lessons,omitempty"`
}

func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Lesson holds an ordered list of challenges. Completing challenges earns a
// share of XPReward each: XPReward / max(len(Challenges), 1).
type Lesson struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UnitID     uuid.UUID `gorm:"type:uuid;not null;index" json:"unit_id"`
	Title      string    `gorm:"not null;size:100" json:"title"`
	OrderIndex int       `gorm:"default:0;index" json:"order_index"`
	XPReward   int       `gorm:"default:10" json:"xp_reward"`
	CreatedAt  time.Time `json:"created_at"`

	Challenges []Challenge `gorm:"foreignKey:LessonID" json:"challenges,omitempty"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
