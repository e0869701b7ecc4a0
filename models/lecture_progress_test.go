package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLectureProgressDefaults(t *testing.T) {
	p := &LectureProgress{Lecture: primitive.NewObjectID()}
	p.Normalize()
	assert.False(t, p.IsCompleted)
	assert.Zero(t, p.WatchTime)
	assert.False(t, p.LastWatched.IsZero())
}

func TestLectureProgressNormalizeKeepsLastWatched(t *testing.T) {
	watched := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := &LectureProgress{Lecture: primitive.NewObjectID(), LastWatched: watched}
	p.Normalize()
	assert.Equal(t, watched, p.LastWatched)
}

func TestLectureProgressValidateIsSoft(t *testing.T) {
	// A zero lecture reference is not rejected here; the integrity
	// checker flags it instead.
	p := &LectureProgress{}
	assert.Empty(t, p.Validate())
}
