package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validCourse() *Course {
	return &Course{
		Title:      "Intro to Go",
		Category:   "programming",
		Level:      LevelBeginner,
		Price:      49.99,
		Thumbnail:  "https://cdn.example.com/go.png",
		Instructor: primitive.NewObjectID(),
	}
}

func TestCourseValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Course)
		field   string
		message string
	}{
		{"missing title", func(c *Course) { c.Title = "" }, "title", "Course title is required"},
		{"title too long", func(c *Course) { c.Title = strings.Repeat("t", 101) }, "title", "Course title cannot exceed 100 characters"},
		{"subtitle too long", func(c *Course) { c.Subtitle = strings.Repeat("s", 301) }, "subtitle", "Course subtitle cannot exceed 300 characters"},
		{"missing category", func(c *Course) { c.Category = "" }, "category", "Course category is required"},
		{"invalid level", func(c *Course) { c.Level = "novice" }, "level", "\"novice\" is not a valid course level"},
		{"negative price", func(c *Course) { c.Price = -1 }, "price", "Course price must be positive"},
		{"missing thumbnail", func(c *Course) { c.Thumbnail = "" }, "thumbnail", "Course thumbnail is required"},
		{"missing instructor", func(c *Course) { c.Instructor = primitive.NilObjectID }, "instructor", "Course instructor is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCourse()
			tt.mutate(c)
			errs := c.Validate()
			require.NotEmpty(t, errs)
			assert.True(t, errs.Has(tt.field))
			assert.Contains(t, errs.Error(), tt.message)
		})
	}
}

func TestCourseValidateAccepts(t *testing.T) {
	c := validCourse()
	assert.Empty(t, c.Validate())

	// Free courses are fine.
	c.Price = 0
	assert.Empty(t, c.Validate())
}

func TestCourseNormalizeRecomputesTotalLectures(t *testing.T) {
	c := validCourse()
	c.Lectures = []primitive.ObjectID{
		primitive.NewObjectID(),
		primitive.NewObjectID(),
		primitive.NewObjectID(),
	}
	c.TotalLectures = 99 // stale snapshot
	c.Normalize()
	assert.Equal(t, 3, c.TotalLectures)

	c.Lectures = nil
	c.Normalize()
	assert.Equal(t, 0, c.TotalLectures)
}

func TestCourseNormalizeDefaultsLevel(t *testing.T) {
	c := validCourse()
	c.Level = ""
	c.Normalize()
	assert.Equal(t, LevelBeginner, c.Level)
}

func TestAverageRatingStub(t *testing.T) {
	c := validCourse()
	assert.Zero(t, c.AverageRating())
}
