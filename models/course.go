package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course level constants.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

var ValidLevels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced}

type Course struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title            string               `bson:"title" json:"title"`
	Subtitle         string               `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	Description      string               `bson:"description,omitempty" json:"description,omitempty"`
	Category         string               `bson:"category" json:"category"`
	Level            string               `bson:"level" json:"level"` // beginner, intermediate, advanced
	Price            float64              `bson:"price" json:"price"`
	Thumbnail        string               `bson:"thumbnail" json:"thumbnail"`
	EnrolledStudents []primitive.ObjectID `bson:"enrolledStudents" json:"enrolledStudents"`
	Lectures         []primitive.ObjectID `bson:"lectures" json:"lectures"`
	Instructor       primitive.ObjectID   `bson:"instructor" json:"instructor"`
	IsPublished      bool                 `bson:"isPublished" json:"isPublished"`
	TotalDuration    float64              `bson:"totalDuration" json:"totalDuration"`

	// TotalLectures is a write-time snapshot of len(Lectures). It is
	// refreshed on every save of this document, so it can go stale if
	// the lectures list is mutated without re-saving the course.
	TotalLectures int `bson:"totalLectures" json:"totalLectures"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Normalize applies the pure pre-save transforms: trimming, the level
// default, and the TotalLectures recompute. The recompute runs
// unconditionally, regardless of which fields changed.
func (c *Course) Normalize() {
	c.Title = strings.TrimSpace(c.Title)
	c.Subtitle = strings.TrimSpace(c.Subtitle)
	c.Description = strings.TrimSpace(c.Description)
	c.Category = strings.TrimSpace(c.Category)
	if c.Level == "" {
		c.Level = LevelBeginner
	}
	c.TotalLectures = len(c.Lectures)
}

// Validate returns nil when all field constraints pass.
func (c *Course) Validate() ValidationErrors {
	var errs ValidationErrors
	if c.Title == "" {
		errs = append(errs, FieldError{"title", "Course title is required"})
	} else if len(c.Title) > 100 {
		errs = append(errs, FieldError{"title", "Course title cannot exceed 100 characters"})
	}
	if len(c.Subtitle) > 300 {
		errs = append(errs, FieldError{"subtitle", "Course subtitle cannot exceed 300 characters"})
	}
	if c.Category == "" {
		errs = append(errs, FieldError{"category", "Course category is required"})
	}
	if !validLevel(c.Level) {
		errs = append(errs, FieldError{"level", "\"" + c.Level + "\" is not a valid course level"})
	}
	if c.Price < 0 {
		errs = append(errs, FieldError{"price", "Course price must be positive"})
	}
	if c.Thumbnail == "" {
		errs = append(errs, FieldError{"thumbnail", "Course thumbnail is required"})
	}
	if c.Instructor.IsZero() {
		errs = append(errs, FieldError{"instructor", "Course instructor is required"})
	}
	return errs
}

// AverageRating always reports 0: the rating subsystem is not
// implemented and this is a documented stub, not a bug.
func (c *Course) AverageRating() float64 {
	return 0
}

func validLevel(level string) bool {
	for _, l := range ValidLevels {
		if level == l {
			return true
		}
	}
	return false
}
