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

// prepareLecture runs the lecture pre-persist pipeline; Normalize
// rounds a non-zero duration to 2 decimals.
func prepareLecture(l *models.Lecture) error {
	l.Normalize()
	if errs := l.Validate(); len(errs) > 0 {
		return errs
	}
	return nil
}

func (db *DB) CreateLecture(ctx context.Context, l *models.Lecture) (primitive.ObjectID, error) {
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now
	if err := prepareLecture(l); err != nil {
		return primitive.NilObjectID, err
	}
	res, err := db.Lectures().InsertOne(ctx, l, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) UpdateLecture(ctx context.Context, l *models.Lecture) error {
	l.UpdatedAt = time.Now()
	if err := prepareLecture(l); err != nil {
		return err
	}
	_, err := db.Lectures().ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	return err
}

func (db *DB) LectureByID(ctx context.Context, id primitive.ObjectID) (*models.Lecture, error) {
	var l models.Lecture
	err := db.Lectures().FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// LecturesByIDs fetches the given lectures and returns them in the
// order of ids, which is how a course's lecture list is materialized.
// References with no backing document are skipped, not errors.
func (db *DB) LecturesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Lecture, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := db.Lectures().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var fetched []models.Lecture
	if err := cur.All(ctx, &fetched); err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Lecture, len(fetched))
	for _, l := range fetched {
		byID[l.ID] = l
	}
	ordered := make([]models.Lecture, 0, len(ids))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			ordered = append(ordered, l)
		}
	}
	return ordered, nil
}

func (db *DB) DeleteLecture(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.Lectures().DeleteOne(ctx, bson.M{"_id": id})
	return err
}
