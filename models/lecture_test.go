package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLecture() *Lecture {
	return &Lecture{
		Title:    "Goroutines",
		VideoURL: "https://videos.example.com/goroutines.mp4",
		PublicID: "lectures/goroutines",
		Order:    1,
	}
}

func TestLectureNormalizeRoundsDuration(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"round down", 12.3412, 12.34},
		{"round half up", 12.3456, 12.35},
		{"exact half up", 10.005, 10.01},
		{"already rounded", 7.25, 7.25},
		{"zero skipped", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLecture()
			l.Duration = tt.in
			l.Normalize()
			assert.InDelta(t, tt.want, l.Duration, 1e-9)
		})
	}
}

func TestLectureValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(l *Lecture)
		field   string
		message string
	}{
		{"missing title", func(l *Lecture) { l.Title = "" }, "title", "Lecture title is required"},
		{"title too long", func(l *Lecture) { l.Title = strings.Repeat("t", 101) }, "title", "Lecture title cannot exceed 100 characters"},
		{"description too long", func(l *Lecture) { l.Description = strings.Repeat("d", 401) }, "description", "Lecture description cannot exceed 400 characters"},
		{"missing video url", func(l *Lecture) { l.VideoURL = "" }, "videoUrl", "Video url is required"},
		{"missing public id", func(l *Lecture) { l.PublicID = "" }, "publicId", "Public ID is required for video management"},
		{"missing order", func(l *Lecture) { l.Order = 0 }, "order", "Lecture order is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLecture()
			tt.mutate(l)
			errs := l.Validate()
			require.NotEmpty(t, errs)
			assert.True(t, errs.Has(tt.field))
			assert.Contains(t, errs.Error(), tt.message)
		})
	}
}

func TestLectureValidateAccepts(t *testing.T) {
	l := validLecture()
	assert.Empty(t, l.Validate())

	// Duplicate or gapped order values are accepted; position bookkeeping
	// belongs to the caller.
	l.Order = 42
	assert.Empty(t, l.Validate())
}
