package models

import (
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Lecture struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	VideoURL    string             `bson:"videoUrl" json:"videoUrl"`
	Duration    float64            `bson:"duration" json:"duration"` // minutes, rounded to 2 decimals on save
	PublicID    string             `bson:"publicId" json:"publicId"` // asset-management key for the video
	IsPreview   bool               `bson:"isPreview" json:"isPreview"`
	Order       int                `bson:"order" json:"order"` // caller-supplied position within the course
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Normalize trims text fields and rounds a non-zero duration to 2
// decimal places, half up. Rounding happens only on the write path;
// a direct external mutation of the document bypasses it.
func (l *Lecture) Normalize() {
	l.Title = strings.TrimSpace(l.Title)
	l.Description = strings.TrimSpace(l.Description)
	if l.Duration != 0 {
		l.Duration = math.Floor(l.Duration*100+0.5) / 100
	}
}

// Validate returns nil when all field constraints pass. Order is only
// checked for presence; uniqueness and contiguity within a course are
// not enforced at this layer.
func (l *Lecture) Validate() ValidationErrors {
	var errs ValidationErrors
	if l.Title == "" {
		errs = append(errs, FieldError{"title", "Lecture title is required"})
	} else if len(l.Title) > 100 {
		errs = append(errs, FieldError{"title", "Lecture title cannot exceed 100 characters"})
	}
	if len(l.Description) > 400 {
		errs = append(errs, FieldError{"description", "Lecture description cannot exceed 400 characters"})
	}
	if l.VideoURL == "" {
		errs = append(errs, FieldError{"videoUrl", "Video url is required"})
	}
	if l.PublicID == "" {
		errs = append(errs, FieldError{"publicId", "Public ID is required for video management"})
	}
	if l.Order == 0 {
		errs = append(errs, FieldError{"order", "Lecture order is required"})
	}
	return errs
}
