package store

import (
	"context"
	"fmt"
	"time"

	"github.com/courseforge/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// prepareCourse runs the course pre-persist pipeline. Normalize
// refreshes the totalLectures snapshot on every call, regardless of
// which fields changed.
func prepareCourse(c *models.Course) error {
	c.Normalize()
	if errs := c.Validate(); len(errs) > 0 {
		return errs
	}
	return nil
}

func (db *DB) CreateCourse(ctx context.Context, c *models.Course) (primitive.ObjectID, error) {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := prepareCourse(c); err != nil {
		return primitive.NilObjectID, err
	}
	res, err := db.Courses().InsertOne(ctx, c, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// ReplaceCourse persists the whole document through the pipeline.
// Concurrent writers to the same course race on the lectures list and
// its snapshot; the last writer wins the whole document. Serializing
// writes per course is the caller's concern.
func (db *DB) ReplaceCourse(ctx context.Context, c *models.Course) error {
	c.UpdatedAt = time.Now()
	if err := prepareCourse(c); err != nil {
		return err
	}
	_, err := db.Courses().ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	return err
}

func (db *DB) CourseByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var c models.Course
	err := db.Courses().FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (db *DB) ListCourses(ctx context.Context) ([]models.Course, error) {
	cur, err := db.Courses().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var courses []models.Course
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (db *DB) CoursesByInstructor(ctx context.Context, instructorID primitive.ObjectID) ([]models.Course, error) {
	cur, err := db.Courses().Find(ctx, bson.M{"instructor": instructorID}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var courses []models.Course
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (db *DB) DeleteCourse(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.Courses().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// AddLectureToCourse appends a lecture reference and re-saves the
// course through the full pipeline so the totalLectures snapshot stays
// current. Creating the lecture document and appending its reference
// here are two separate writes with no transaction between them; a
// crash in between leaves a dangling reference or an orphan lecture for
// CheckIntegrity to find.
func (db *DB) AddLectureToCourse(ctx context.Context, courseID, lectureID primitive.ObjectID) (*models.Course, error) {
	course, err := db.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, fmt.Errorf("course %s not found", courseID.Hex())
	}
	course.Lectures = append(course.Lectures, lectureID)
	if err := db.ReplaceCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// EnrollStudent appends a student reference to the course. No dedup:
// enrolling twice records the student twice.
func (db *DB) EnrollStudent(ctx context.Context, courseID, studentID primitive.ObjectID) error {
	_, err := db.Courses().UpdateOne(ctx, bson.M{"_id": courseID}, bson.M{
		"$push": bson.M{"enrolledStudents": studentID},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	return err
}

func (db *DB) PublishCourse(ctx context.Context, id primitive.ObjectID, published bool) error {
	_, err := db.Courses().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"isPublished": published, "updatedAt": time.Now()},
	})
	return err
}
