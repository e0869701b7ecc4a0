package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LectureProgress tracks one (user, lecture) pair's watch state. The
// user side of the pair is not a field here; callers key and scope
// records per user themselves.
type LectureProgress struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Lecture     primitive.ObjectID `bson:"lecture" json:"lecture"`
	IsCompleted bool               `bson:"isCompleted" json:"isCompleted"`
	WatchTime   float64            `bson:"watchTime" json:"watchTime"`
	LastWatched time.Time          `bson:"lastWatched" json:"lastWatched"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Normalize applies defaults; there is no derived-field logic here.
func (p *LectureProgress) Normalize() {
	if p.LastWatched.IsZero() {
		p.LastWatched = time.Now()
	}
}

// Validate always passes: a zero lecture reference makes the record
// meaningless but is not rejected. The integrity checker flags such
// records instead.
func (p *LectureProgress) Validate() ValidationErrors {
	return nil
}
