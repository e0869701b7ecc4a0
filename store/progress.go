package store

import (
	"context"
	"time"

	"github.com/courseforge/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateProgress records the first watch event for a lecture. Scoping
// the record to a user is the caller's concern; the document itself
// carries no user field.
func (db *DB) CreateProgress(ctx context.Context, p *models.LectureProgress) (primitive.ObjectID, error) {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Normalize()
	if errs := p.Validate(); len(errs) > 0 {
		return primitive.NilObjectID, errs
	}
	res, err := db.LectureProgress().InsertOne(ctx, p, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// RecordWatch updates an existing record with a subsequent watch event.
func (db *DB) RecordWatch(ctx context.Context, id primitive.ObjectID, watchTime float64, completed bool) error {
	now := time.Now()
	_, err := db.LectureProgress().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"watchTime":   watchTime,
			"isCompleted": completed,
			"lastWatched": now,
			"updatedAt":   now,
		},
	})
	return err
}

func (db *DB) ProgressByID(ctx context.Context, id primitive.ObjectID) (*models.LectureProgress, error) {
	var p models.LectureProgress
	err := db.LectureProgress().FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ProgressByLecture returns every watch record pointing at a lecture,
// across all users; callers needing a single user's record filter on
// their own scoping.
func (db *DB) ProgressByLecture(ctx context.Context, lectureID primitive.ObjectID) ([]models.LectureProgress, error) {
	cur, err := db.LectureProgress().Find(ctx, bson.M{"lecture": lectureID}, options.Find().SetSort(bson.M{"lastWatched": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []models.LectureProgress
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
